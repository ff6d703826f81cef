// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// AttributeService manages the attributes of groups, datasets and
// committed datatypes.
type AttributeService struct {
	client *Client
}

// List returns the attributes of an object.
func (s *AttributeService) List(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID string, opts ListOptions) (*hsdsdata.AttributeList, error) {
	var out hsdsdata.AttributeList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/{collection}/{id}/attributes",
		vars:     map[string]interface{}{"collection": collection, "id": objID},
		query:    append(scope.params(), opts.params()...),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one attribute, including its value.
func (s *AttributeService) Get(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID, name string) (*hsdsdata.Attribute, error) {
	var out hsdsdata.Attribute
	err := s.client.fetch(ctx, s.at(http.MethodGet, "/{collection}/{id}/attributes/{name}", scope, collection, objID, name), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put creates an attribute.
func (s *AttributeService) Put(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID, name string, body hsdsdata.PutAttributeRequest) error {
	e := s.at(http.MethodPut, "/{collection}/{id}/attributes/{name}", scope, collection, objID, name)
	e.body = body
	return s.client.exec(ctx, e)
}

// Delete removes an attribute.
func (s *AttributeService) Delete(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID, name string) error {
	return s.client.exec(ctx, s.at(http.MethodDelete, "/{collection}/{id}/attributes/{name}", scope, collection, objID, name))
}

// GetValue returns only an attribute's value.
func (s *AttributeService) GetValue(ctx context.Context, scope Scope, collection hsdsdata.Collection, objID, name string) (*hsdsdata.ValueResponse, error) {
	var out hsdsdata.ValueResponse
	err := s.client.fetch(ctx, s.at(http.MethodGet, "/{collection}/{id}/attributes/{name}/value", scope, collection, objID, name), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AttributeService) at(method, template string, scope Scope, collection hsdsdata.Collection, objID, name string) endpoint {
	return endpoint{
		method:   method,
		template: template,
		vars: map[string]interface{}{
			"collection": collection,
			"id":         objID,
			"name":       name,
		},
		query: scope.params(),
	}
}
