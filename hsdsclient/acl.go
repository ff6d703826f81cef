// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// ACLService reads and changes access-control lists.
type ACLService struct {
	client *Client
}

// List returns every ACL on the domain.
func (s *ACLService) List(ctx context.Context, scope Scope) (*hsdsdata.ACLList, error) {
	var out hsdsdata.ACLList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/acls",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one user's ACL on the domain.
func (s *ACLService) Get(ctx context.Context, scope Scope, user string) (*hsdsdata.ACLResponse, error) {
	var out hsdsdata.ACLResponse
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/acls/{user}",
		vars:     map[string]interface{}{"user": user},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put changes one user's ACL on the domain.
func (s *ACLService) Put(ctx context.Context, scope Scope, user string, body hsdsdata.ACLUpdate) (*hsdsdata.ACLResponse, error) {
	var out hsdsdata.ACLResponse
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodPut,
		template: "/acls/{user}",
		vars:     map[string]interface{}{"user": user},
		query:    scope.params(),
		body:     body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListObject returns every ACL on an object.
func (s *ACLService) ListObject(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID string) (*hsdsdata.ACLList, error) {
	var out hsdsdata.ACLList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/{collection}/{id}/acls",
		vars:     map[string]interface{}{"collection": collection, "id": objID},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetObject returns one user's ACL on an object.
func (s *ACLService) GetObject(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID, user string) (*hsdsdata.ACLResponse, error) {
	var out hsdsdata.ACLResponse
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/{collection}/{id}/acls/{user}",
		vars:     map[string]interface{}{"collection": collection, "id": objID, "user": user},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
