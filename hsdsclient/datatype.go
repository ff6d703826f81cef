// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// DatatypeService manages committed datatypes.
type DatatypeService struct {
	client *Client
}

// Create commits a datatype, optionally linking it into a group.
func (s *DatatypeService) Create(ctx context.Context, scope Scope, body hsdsdata.CreateDatatypeRequest) (*hsdsdata.Datatype, error) {
	var out hsdsdata.Datatype
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodPost,
		template: "/datatypes",
		query:    scope.params(),
		body:     body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the identifiers of every committed datatype in the
// domain.
func (s *DatatypeService) List(ctx context.Context, scope Scope) (*hsdsdata.DatatypeList, error) {
	var out hsdsdata.DatatypeList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/datatypes",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one committed datatype.
func (s *DatatypeService) Get(ctx context.Context, scope Scope, id string) (*hsdsdata.Datatype, error) {
	var out hsdsdata.Datatype
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/datatypes/{id}",
		vars:     map[string]interface{}{"id": id},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes one committed datatype.
func (s *DatatypeService) Delete(ctx context.Context, scope Scope, id string) error {
	return s.client.exec(ctx, endpoint{
		method:   http.MethodDelete,
		template: "/datatypes/{id}",
		vars:     map[string]interface{}{"id": id},
		query:    scope.params(),
	})
}
