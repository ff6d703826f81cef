// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsfake"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// newRouter serves metrics at /metrics and everything else from the
// fake server.
func newRouter(server *hsdsfake.Server) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.PathPrefix("/").Handler(server)
	return r
}

// ServeHTTP runs an HTTP server on the specified local address.  This
// serves connections forever.  Exits the process if the listener
// fails.
func ServeHTTP(server *hsdsfake.Server, laddr string) {
	err := http.ListenAndServe(laddr, newRouter(server))
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server stopped")
}
