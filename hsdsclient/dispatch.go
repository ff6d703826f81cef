// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

// This file provides the request dispatcher every endpoint goes
// through.

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/sirupsen/logrus"
)

// Expect selects what the dispatcher does with a successful response.
type Expect int

const (
	// ExpectJSON decodes the body into a caller-supplied value.
	ExpectJSON Expect = iota

	// ExpectNothing discards the response without reading it.
	ExpectNothing

	// ExpectRaw hands the unread response to the caller.
	ExpectRaw
)

func (e Expect) String() string {
	switch e {
	case ExpectJSON:
		return "json"
	case ExpectNothing:
		return "nothing"
	case ExpectRaw:
		return "raw"
	default:
		return "Expect(" + strconv.Itoa(int(e)) + ")"
	}
}

// Request is one HTTP request to send.  The dispatcher never modifies
// it, but Body can only be sent once.
type Request struct {
	// Method is the HTTP verb, passed through as is.
	Method string

	// Path is relative to the client's base URL and may include
	// a query string.
	Path string

	// Body, if non-nil, is sent as the request body.
	Body io.Reader

	// ContentType labels Body.  It is ignored when Body is nil.
	ContentType string

	// Accept, if set, is sent as the Accept header.
	Accept string
}

// NewRequest creates a bodiless request that accepts JSON.
func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path, Accept: hsdsdata.JSONMediaType}
}

// NewJSONRequest creates a request whose body is the JSON encoding of
// body, using the client's codec.
func (c *Client) NewJSONRequest(method, path string, body interface{}) (*Request, error) {
	data, err := c.codec.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:      method,
		Path:        path,
		Body:        bytes.NewReader(data),
		ContentType: hsdsdata.JSONMediaType,
		Accept:      hsdsdata.JSONMediaType,
	}, nil
}

// RawResponse is a successful response whose body has not been read.
// The caller owns it and must Close it.  Closing the client closes
// any raw responses still open.
type RawResponse struct {
	// StatusCode is the HTTP status.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	resp   *http.Response
	client *Client
	once   sync.Once
	err    error
}

// Read reads from the response body.
func (r *RawResponse) Read(p []byte) (int, error) {
	return r.resp.Body.Read(p)
}

// Close releases the response.  It is safe to call more than once.
func (r *RawResponse) Close() error {
	r.once.Do(func() {
		r.err = r.resp.Body.Close()
		r.client.release(r)
	})
	return r.err
}

// Response returns the underlying HTTP response.  Its body is the
// same stream Read consumes.
func (r *RawResponse) Response() *http.Response {
	return r.resp
}

// Do sends req and decodes a successful JSON response into out, which
// must be a non-nil pointer.  Cancelling ctx aborts the request.
func (c *Client) Do(ctx context.Context, req *Request, out interface{}) error {
	_, err := c.invoke(ctx, req, ExpectJSON, out)
	return err
}

// DoNoContent sends req and discards a successful response without
// reading its body.
func (c *Client) DoNoContent(ctx context.Context, req *Request) error {
	_, err := c.invoke(ctx, req, ExpectNothing, nil)
	return err
}

// DoRaw sends req and returns a successful response unread.  The
// caller must close it.
func (c *Client) DoRaw(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.invoke(ctx, req, ExpectRaw, nil)
}

// Invoke is Do without cancellation; it blocks until the response
// arrives or the client timeout expires.
func (c *Client) Invoke(req *Request, out interface{}) error {
	return c.Do(context.Background(), req, out)
}

// InvokeNoContent is DoNoContent without cancellation.
func (c *Client) InvokeNoContent(req *Request) error {
	return c.DoNoContent(context.Background(), req)
}

// InvokeRaw is DoRaw without cancellation.
func (c *Client) InvokeRaw(req *Request) (*RawResponse, error) {
	return c.DoRaw(context.Background(), req)
}

// resolve turns a relative request path into an absolute URL beneath
// the base URL.
func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, ErrAbsoluteURL
	}
	// Drop the leading slash so the base path is kept
	for len(ref.Path) > 0 && ref.Path[0] == '/' {
		ref.Path = ref.Path[1:]
		if ref.RawPath != "" {
			ref.RawPath = ref.RawPath[1:]
		}
	}
	return c.base.ResolveReference(ref), nil
}

// invoke performs one request/response cycle.  The response is closed
// before returning unless it is handed back as a RawResponse.
func (c *Client) invoke(ctx context.Context, req *Request, expect Expect, out interface{}) (raw *RawResponse, err error) {
	target, err := c.resolve(req.Path)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), req.Body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Body != nil && req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}

	log := c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    target.String(),
	})

	start := c.clock.Now()
	resp, err := c.http.Do(httpReq)
	elapsed := c.clock.Now().Sub(start)
	if err != nil {
		c.metrics.observe(req.Method, "error", elapsed)
		log.WithFields(logrus.Fields{
			"err":     err,
			"elapsed": elapsed,
		}).Warn("HSDS request failed")
		return nil, err
	}
	c.metrics.observe(req.Method, strconv.Itoa(resp.StatusCode), elapsed)
	log = log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": elapsed,
	})

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if success && expect == ExpectRaw {
		log.Debug("HSDS request returned raw response")
		return c.track(resp), nil
	}

	defer func() {
		err = firstError(err, resp.Body.Close())
	}()

	if !success {
		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		statusErr := newStatusError(resp.StatusCode, string(body))
		log.WithField("code", statusErr.Code).Warn("HSDS request rejected")
		return nil, statusErr
	}

	switch expect {
	case ExpectNothing:
		log.Debug("HSDS request")
		return nil, nil
	case ExpectJSON:
		if err := c.codec.Decode(resp.Body, out); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("hsdsclient: reading response: %w", ctxErr)
			}
			decodeErr := newDecodeError(resp.StatusCode, err)
			log.WithField("err", err).Warn("HSDS response could not be decoded")
			return nil, decodeErr
		}
		log.Debug("HSDS request")
		return nil, nil
	default:
		return nil, fmt.Errorf("hsdsclient: unknown response handling %v", expect)
	}
}

// track registers a raw response so Close can release it.
func (c *Client) track(resp *http.Response) *RawResponse {
	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		resp:       resp,
		client:     c,
	}
	c.lock.Lock()
	c.raw[raw] = struct{}{}
	c.lock.Unlock()
	return raw
}

func (c *Client) release(raw *RawResponse) {
	c.lock.Lock()
	delete(c.raw, raw)
	c.lock.Unlock()
}
