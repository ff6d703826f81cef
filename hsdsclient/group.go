// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"context"
	"net/http"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// GroupService manages groups.
type GroupService struct {
	client *Client
}

// Create creates a group, optionally linking it into a parent.
func (s *GroupService) Create(ctx context.Context, scope Scope, body hsdsdata.CreateGroupRequest) (*hsdsdata.Group, error) {
	var out hsdsdata.Group
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodPost,
		template: "/groups",
		query:    scope.params(),
		body:     body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the identifiers of every group in the domain.
func (s *GroupService) List(ctx context.Context, scope Scope) (*hsdsdata.GroupList, error) {
	var out hsdsdata.GroupList
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/groups",
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one group.
func (s *GroupService) Get(ctx context.Context, scope Scope, id string) (*hsdsdata.Group, error) {
	var out hsdsdata.Group
	err := s.client.fetch(ctx, endpoint{
		method:   http.MethodGet,
		template: "/groups/{id}",
		vars:     map[string]interface{}{"id": id},
		query:    scope.params(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes one group.  Links to it are not removed.
func (s *GroupService) Delete(ctx context.Context, scope Scope, id string) error {
	return s.client.exec(ctx, endpoint{
		method:   http.MethodDelete,
		template: "/groups/{id}",
		vars:     map[string]interface{}{"id": id},
		query:    scope.params(),
	})
}
