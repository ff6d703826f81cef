// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package hsdsfake provides an in-memory stand-in for an HSDS server.
// It implements enough of the REST API to exercise every call in
// hsdsclient: domains, groups, links, datasets with JSON and binary
// values, committed datatypes, attributes and ACLs.  Nothing is
// persisted and permissions are recorded but not enforced.
//
// Serve it with net/http or net/http/httptest:
//
//     server := hsdsfake.New(hsdsfake.Options{})
//     ts := httptest.NewServer(server)
//     defer ts.Close()
//
// To place the API under a subpath, create a mux.Router and call
// PopulateRouter instead.
package hsdsfake

import (
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// Options configures a Server.  The zero value is usable.
type Options struct {
	// Clock stamps creation and modification times.
	Clock clock.Clock

	// Logger receives request and panic logging.  Defaults to the
	// logrus standard logger.
	Logger logrus.FieldLogger

	// Codec encodes responses and decodes request bodies.
	Codec *hsdsdata.Codec
}

// Server is an http.Handler serving the HSDS API from a Store.
type Server struct {
	store   *Store
	codec   *hsdsdata.Codec
	log     logrus.FieldLogger
	clock   clock.Clock
	handler http.Handler
}

// New creates a server with an empty store.
func New(opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Codec == nil {
		opts.Codec = hsdsdata.NewCodec()
	}
	s := &Server{
		store: NewStore(opts.Clock),
		codec: opts.Codec,
		log:   opts.Logger.WithField("component", "hsdsfake"),
		clock: opts.Clock,
	}

	r := mux.NewRouter()
	s.PopulateRouter(r)

	recovery := negroni.NewRecovery()
	recovery.Logger = s.log
	recovery.PrintStack = false

	n := negroni.New()
	n.Use(recovery)
	n.Use(negroni.HandlerFunc(s.logRequest))
	n.UseHandler(r)
	s.handler = n
	return s
}

// Store returns the server's backing store.
func (s *Server) Store() *Store {
	return s.store
}

// PopulateRouter adds every HSDS route to an existing router.  The
// routes share this server's store.
func (s *Server) PopulateRouter(r *mux.Router) {
	api := &restAPI{store: s.store, server: s}
	api.PopulateRouter(r)
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	s.handler.ServeHTTP(resp, req)
}

// logRequest is negroni middleware that logs each request at debug
// level once it completes.
func (s *Server) logRequest(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := s.clock.Now()
	next(rw, req)
	fields := logrus.Fields{
		"method":  req.Method,
		"path":    req.URL.Path,
		"elapsed": s.clock.Now().Sub(start),
	}
	if res, ok := rw.(negroni.ResponseWriter); ok {
		fields["status"] = res.Status()
	}
	s.log.WithFields(fields).Debug("request")
}
