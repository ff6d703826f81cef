// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"io"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// DatasetService manages datasets and their values.
type DatasetService struct {
	client *Client
}

// Create creates a dataset, optionally linking it into a group.
func (s *DatasetService) Create(ctx context.Context, scope Scope, body hsdsdata.CreateDatasetRequest) (*hsdsdata.Dataset, error) {
	var out hsdsdata.Dataset
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodPost,
		template: "/datasets",
		query:    scope.params(),
		body:     body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the identifiers of every dataset in the domain.
func (s *DatasetService) List(ctx context.Context, scope Scope) (*hsdsdata.DatasetList, error) {
	var out hsdsdata.DatasetList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/datasets",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one dataset.
func (s *DatasetService) Get(ctx context.Context, scope Scope, id string) (*hsdsdata.Dataset, error) {
	var out hsdsdata.Dataset
	err := s.client.fetch(ctx, s.at(http.MethodGet, "/datasets/{id}", scope, id), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes one dataset.
func (s *DatasetService) Delete(ctx context.Context, scope Scope, id string) error {
	return s.client.exec(ctx, s.at(http.MethodDelete, "/datasets/{id}", scope, id))
}

// GetShape returns a dataset's shape.
func (s *DatasetService) GetShape(ctx context.Context, scope Scope, id string) (*hsdsdata.ShapeResponse, error) {
	var out hsdsdata.ShapeResponse
	err := s.client.fetch(ctx, s.at(http.MethodGet, "/datasets/{id}/shape", scope, id), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PutShape resizes an extensible dataset.
func (s *DatasetService) PutShape(ctx context.Context, scope Scope, id string, dims []uint64) error {
	e := s.at(http.MethodPut, "/datasets/{id}/shape", scope, id)
	e.body = hsdsdata.PutShapeRequest{Shape: dims}
	return s.client.exec(ctx, e)
}

// GetType returns a dataset's datatype.
func (s *DatasetService) GetType(ctx context.Context, scope Scope, id string) (*hsdsdata.TypeResponse, error) {
	var out hsdsdata.TypeResponse
	err := s.client.fetch(ctx, s.at(http.MethodGet, "/datasets/{id}/type", scope, id), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValueOptions selects part of a dataset.
type ValueOptions struct {
	// Select is a hyperslab selection such as "[0:4,2]".
	Select string

	// Query is a condition on compound fields.
	Query string

	// Limit caps the number of query matches; nil is unlimited.
	Limit *int
}

func (o ValueOptions) params() []QueryParam {
	return []QueryParam{
		Param("select", optional(o.Select)),
		Param("query", optional(o.Query)),
		Param("Limit", o.Limit),
	}
}

func (s *DatasetService) valueEndpoint(method string, scope Scope, id string, opts ValueOptions) endpoint {
	e := s.at(method, "/datasets/{id}/value", scope, id)
	e.query = append(e.query, opts.params()...)
	return e
}

// GetValues reads values as JSON.
func (s *DatasetService) GetValues(ctx context.Context, scope Scope, id string, opts ValueOptions) (*hsdsdata.ValueResponse, error) {
	var out hsdsdata.ValueResponse
	err := s.client.fetch(ctx, s.valueEndpoint(http.MethodGet, scope, id, opts), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetValuesRaw reads values in their binary form.  The caller must
// close the returned response.
func (s *DatasetService) GetValuesRaw(ctx context.Context, scope Scope, id string, opts ValueOptions) (*RawResponse, error) {
	req, err := s.client.request(s.valueEndpoint(http.MethodGet, scope, id, opts))
	if err != nil {
		return nil, err
	}
	req.Accept = hsdsdata.OctetStreamMediaType
	return s.client.DoRaw(ctx, req)
}

// PutValues writes values given as JSON.
func (s *DatasetService) PutValues(ctx context.Context, scope Scope, id string, body hsdsdata.PutValueRequest) error {
	e := s.at(http.MethodPut, "/datasets/{id}/value", scope, id)
	e.body = body
	return s.client.exec(ctx, e)
}

// PutValuesRaw writes values in their binary form to the selection
// in opts.
func (s *DatasetService) PutValuesRaw(ctx context.Context, scope Scope, id string, opts ValueOptions, data io.Reader) error {
	req, err := s.client.request(s.valueEndpoint(http.MethodPut, scope, id, opts))
	if err != nil {
		return err
	}
	req.Body = data
	req.ContentType = hsdsdata.OctetStreamMediaType
	return s.client.DoNoContent(ctx, req)
}

// at describes a call on one dataset.
func (s *DatasetService) at(method, template string, scope Scope, id string) endpoint {
	return endpoint{
		method:   method,
		template: template,
		vars:     map[string]interface{}{"id": id},
		query:    scope.params(),
	}
}
