// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// DomainService manages domains and folders.
type DomainService struct {
	client *Client
}

// Get returns the domain named by scope.
func (s *DomainService) Get(ctx context.Context, scope Scope) (*hsdsdata.Domain, error) {
	var out hsdsdata.Domain
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put creates the domain named by scope.  body may be nil.
func (s *DomainService) Put(ctx context.Context, scope Scope, body *hsdsdata.PutDomainRequest) (*hsdsdata.Domain, error) {
	e := endpoint{
		method:   http.MethodPut,
		template: "/",
		query:    scope.params(),
	}
	if body != nil {
		e.body = body
	}
	var out hsdsdata.Domain
	if err := s.client.fetch(ctx, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes the domain named by scope.
func (s *DomainService) Delete(ctx context.Context, scope Scope) (*hsdsdata.DeleteDomainResponse, error) {
	var out hsdsdata.DeleteDomainResponse
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodDelete,
		template: "/",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDomainsOptions narrows a folder listing.
type ListDomainsOptions struct {
	// Pattern is a glob matched against domain names.
	Pattern string

	// Limit caps the number of results; nil is unlimited.
	Limit *int

	// Marker resumes a listing after the named domain.
	Marker string

	// Verbose asks for per-domain details.
	Verbose bool
}

// List lists the domains in the folder named by scope.
func (s *DomainService) List(ctx context.Context, scope Scope, opts ListDomainsOptions) (*hsdsdata.DomainList, error) {
	var verbose interface{}
	if opts.Verbose {
		verbose = 1
	}
	var out hsdsdata.DomainList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/domains",
		query: append(scope.params(),
			Param("pattern", optional(opts.Pattern)),
			Param("limit", opts.Limit),
			Param("marker", optional(opts.Marker)),
			Param("verbose", verbose),
		),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
