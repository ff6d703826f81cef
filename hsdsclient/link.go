// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// LinkService manages the links held by groups.
type LinkService struct {
	client *Client
}

// ListOptions pages through a listing.
type ListOptions struct {
	// Limit caps the number of results; nil is unlimited.
	Limit *int

	// Marker resumes a listing after the named entry.
	Marker string
}

func (o ListOptions) params() []QueryParam {
	return []QueryParam{
		Param("Limit", o.Limit),
		Param("Marker", optional(o.Marker)),
	}
}

// List returns the links in a group.
func (s *LinkService) List(ctx context.Context, scope Scope, groupID string, opts ListOptions) (*hsdsdata.LinkList, error) {
	var out hsdsdata.LinkList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/groups/{id}/links",
		vars:     map[string]interface{}{"id": groupID},
		query:    append(scope.params(), opts.params()...),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one link.
func (s *LinkService) Get(ctx context.Context, scope Scope, groupID, name string) (*hsdsdata.LinkResponse, error) {
	var out hsdsdata.LinkResponse
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/groups/{id}/links/{name}",
		vars:     map[string]interface{}{"id": groupID, "name": name},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put creates a link.
func (s *LinkService) Put(ctx context.Context, scope Scope, groupID, name string, body hsdsdata.PutLinkRequest) error {
	return s.client.exec(ctx, endpoint{
		method:   http.MethodPut,
		template: "/groups/{id}/links/{name}",
		vars:     map[string]interface{}{"id": groupID, "name": name},
		query:    scope.params(),
		body:     body,
	})
}

// Delete removes a link.  The object it pointed at is not deleted.
func (s *LinkService) Delete(ctx context.Context, scope Scope, groupID, name string) error {
	return s.client.exec(ctx, endpoint{
		method:   http.MethodDelete,
		template: "/groups/{id}/links/{name}",
		vars:     map[string]interface{}{"id": groupID, "name": name},
		query:    scope.params(),
	})
}
