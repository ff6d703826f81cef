// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	c, err := NewWithConfig(Config{BaseURL: ts.URL, Registerer: reg})
	require.NoError(t, err)

	assert.NoError(t, c.InvokeNoContent(NewRequest(http.MethodGet, "/")))
	assert.NoError(t, c.InvokeNoContent(NewRequest(http.MethodGet, "/")))
	assert.Error(t, c.InvokeNoContent(NewRequest(http.MethodDelete, "/missing")))

	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.requests.WithLabelValues("DELETE", "404")))

	count, err := testutil.GatherAndCount(reg, "hsds_client_requests_total")
	if assert.NoError(t, err) {
		assert.Equal(t, 2, count)
	}
}

func TestMetricsSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c1, err := NewWithConfig(Config{BaseURL: "http://localhost/", Registerer: reg})
	require.NoError(t, err)
	c2, err := NewWithConfig(Config{BaseURL: "http://localhost/", Registerer: reg})
	require.NoError(t, err)
	assert.Same(t, c1.metrics.requests, c2.metrics.requests)
	assert.Same(t, c1.metrics.duration, c2.metrics.duration)
}

func TestMetricsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewWithConfig(Config{BaseURL: url, Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	assert.Error(t, c.InvokeNoContent(NewRequest(http.MethodGet, "/")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "error")))
}
