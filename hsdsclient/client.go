// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package hsdsclient provides an HTTP REST client for the HSDS
// scientific data service.
//
// Call New() with the base URL of the service; for instance,
//
//     c, err := hsdsclient.New("http://localhost:5101/")
//     scope := hsdsclient.Scope{Domain: "/home/test_user1/test.h5"}
//     domain, err := c.Domain.Get(ctx, scope)
//
// Every endpoint method builds a relative URL, sends exactly one
// request, and returns either the decoded response or an error.
// Nothing is retried.  Failures the server reports come back as
// *Error with a Code of "H00.<status>"; successful responses that
// cannot be decoded come back as *Error with Code "H01".
//
// Lower-level access is available through Do, DoNoContent and DoRaw,
// and their non-cancellable counterparts Invoke, InvokeNoContent and
// InvokeRaw.
package hsdsclient

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

// Client talks to one HSDS service.  It is safe for concurrent use.
type Client struct {
	config  Config
	base    *url.URL
	http    *http.Client
	codec   *hsdsdata.Codec
	urls    URLBuilder
	log     logrus.FieldLogger
	clock   clock.Clock
	metrics *metrics

	// lock protects raw.
	lock sync.Mutex
	raw  map[*RawResponse]struct{}

	Domain    *DomainService
	Group     *GroupService
	Link      *LinkService
	Dataset   *DatasetService
	Datatype  *DatatypeService
	Attribute *AttributeService
	ACL       *ACLService
}

// New creates a client for the service at baseURL with default
// settings.
func New(baseURL string) (*Client, error) {
	return NewWithConfig(Config{BaseURL: baseURL})
}

// NewWithConfig creates a client.  An invalid configuration fails
// here, before any request is made.
func NewWithConfig(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	cfg.Headers = headers

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	c := &Client{
		config: cfg,
		base:   base,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		codec:   cfg.Codec,
		urls:    URLBuilder{OmitAbsent: cfg.OmitAbsentQuery},
		log:     cfg.Logger.WithField("component", "hsdsclient"),
		clock:   cfg.Clock,
		metrics: m,
		raw:     make(map[*RawResponse]struct{}),
	}
	c.Domain = &DomainService{client: c}
	c.Group = &GroupService{client: c}
	c.Link = &LinkService{client: c}
	c.Dataset = &DatasetService{client: c}
	c.Datatype = &DatatypeService{client: c}
	c.Attribute = &AttributeService{client: c}
	c.ACL = &ACLService{client: c}
	return c, nil
}

// BaseURL returns the address requests are resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Close releases every raw response the caller has not closed and
// any idle connections.
func (c *Client) Close() error {
	c.lock.Lock()
	pending := make([]*RawResponse, 0, len(c.raw))
	for raw := range c.raw {
		pending = append(pending, raw)
	}
	c.lock.Unlock()

	var err error
	for _, raw := range pending {
		err = firstError(err, raw.Close())
	}
	c.http.CloseIdleConnections()
	return err
}

// Scope names the domain, and optionally the storage bucket, an
// operation applies to.  Empty fields are absent.
type Scope struct {
	Domain string
	Bucket string
}

func (s Scope) params() []QueryParam {
	return []QueryParam{
		Param("domain", optional(s.Domain)),
		Param("bucket", optional(s.Bucket)),
	}
}

// optional treats the empty string as absent.
func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Int returns a pointer to n, for optional integer parameters.
func Int(n int) *int {
	return &n
}

// endpoint describes one API call made by a service method.
type endpoint struct {
	method   string
	template string
	vars     map[string]interface{}
	query    []QueryParam
	body     interface{}
}

func (c *Client) request(e endpoint) (*Request, error) {
	path, err := c.urls.Build(e.template, e.vars, e.query...)
	if err != nil {
		return nil, err
	}
	if e.body == nil {
		return NewRequest(e.method, path), nil
	}
	return c.NewJSONRequest(e.method, path, e.body)
}

// fetch performs e and decodes the response into out.
func (c *Client) fetch(ctx context.Context, e endpoint, out interface{}) error {
	req, err := c.request(e)
	if err != nil {
		return err
	}
	return c.Do(ctx, req, out)
}

// exec performs e and ignores the response body.
func (c *Client) exec(ctx context.Context, e endpoint) error {
	req, err := c.request(e)
	if err != nil {
		return err
	}
	return c.DoNoContent(ctx, req)
}
