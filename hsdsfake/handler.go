// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

// This file contains the REST skeleton every route goes through.
//
// Request bodies are decoded into a copy of the handler's
// Representation; results are encoded as JSON unless the handler
// returns raw bytes.  Errors are sent as plain text with the status
// their type names, which is how HSDS reports them.

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// context holds everything extracted from one request.
type context struct {
	Request *http.Request
	Vars    map[string]string
	Domain  string
	User    string
}

func newContext(req *http.Request) *context {
	ctx := &context{
		Request: req,
		Vars:    mux.Vars(req),
		Domain:  req.URL.Query().Get("domain"),
		User:    DefaultUser,
	}
	if user, _, ok := req.BasicAuth(); ok && user != "" {
		ctx.User = user
	}
	return ctx
}

// Collection returns the {collection} route variable.
func (ctx *context) Collection() hsdsdata.Collection {
	return hsdsdata.Collection(ctx.Vars["collection"])
}

// IntParam returns a non-negative integer query parameter, or 0 if it
// is absent or empty.
func (ctx *context) IntParam(name string) (int, error) {
	value := ctx.Request.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errBadRequest{fmt.Sprintf("Invalid %s", name)}
	}
	return n, nil
}

// Accepts reports whether the request's Accept header names
// mediaType.
func (ctx *context) Accepts(mediaType string) bool {
	for _, part := range strings.Split(ctx.Request.Header.Get("Accept"), ",") {
		if i := strings.Index(part, ";"); i >= 0 {
			part = part[:i]
		}
		if strings.TrimSpace(part) == mediaType {
			return true
		}
	}
	return false
}

// rawBody is returned from handler functions to send bytes as is.
type rawBody struct {
	ContentType string
	Data        []byte
}

// responseCreated is returned from handler functions that created a
// resource.
type responseCreated struct {
	Body interface{}
}

type resourceHandler struct {
	// Representation is the type of PUT and POST bodies.  If nil,
	// the body is left for the handler to read.
	Representation interface{}

	// Get, if non-nil, returns a representation of the resource.
	Get func(*context) (interface{}, error)

	// Put, if non-nil, updates the resource.  The interface
	// parameter has the same type as Representation.
	Put func(*context, interface{}) (interface{}, error)

	// Post, if non-nil, creates a subordinate resource.
	Post func(*context, interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the resource.
	Delete func(*context) (interface{}, error)
}

// handler binds resource handlers to one server's codec and logger.
type handler struct {
	codec *hsdsdata.Codec
	log   logrus.FieldLogger
	res   *resourceHandler
}

func (h *handler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var in, out interface{}
	var err error
	status := http.StatusOK
	ctx := newContext(req)

	if (req.Method == http.MethodPut || req.Method == http.MethodPost) && h.res.Representation != nil {
		in, err = h.decodeBody(req)
	}

	if err == nil {
		err = errMethodNotAllowed{Method: req.Method}
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.res.Get != nil {
				out, err = h.res.Get(ctx)
			}
		case http.MethodPut:
			if h.res.Put != nil {
				out, err = h.res.Put(ctx, in)
			}
		case http.MethodPost:
			if h.res.Post != nil {
				out, err = h.res.Post(ctx, in)
			}
		case http.MethodDelete:
			if h.res.Delete != nil {
				out, err = h.res.Delete(ctx)
			}
		}
	}

	if err != nil {
		status = statusOf(err)
		h.log.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": status,
			"err":    err,
		}).Debug("request failed")
		resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
		resp.WriteHeader(status)
		fmt.Fprint(resp, err.Error())
		return
	}

	if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		out = created.Body
	}
	if out == nil {
		resp.WriteHeader(status)
		return
	}
	if raw, isRaw := out.(rawBody); isRaw {
		resp.Header().Set("Content-Type", raw.ContentType)
		resp.WriteHeader(status)
		if req.Method != http.MethodHead {
			_, _ = resp.Write(raw.Data)
		}
		return
	}

	// Encode first, so an encoding failure can still be reported
	var buf bytes.Buffer
	if err := h.codec.Encode(&buf, out); err != nil {
		h.log.WithField("err", err).Error("could not encode response")
		resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
		resp.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(resp, err.Error())
		return
	}
	resp.Header().Set("Content-Type", hsdsdata.JSONMediaType)
	resp.WriteHeader(status)
	if req.Method != http.MethodHead {
		_, _ = resp.Write(buf.Bytes())
	}
}

// decodeBody decodes a JSON request body into a new value of the
// representation's type.  An empty body is the zero value.
func (h *handler) decodeBody(req *http.Request) (interface{}, error) {
	typ := reflect.TypeOf(h.res.Representation)
	ptr := reflect.New(typ)
	if req.ContentLength == 0 {
		return ptr.Elem().Interface(), nil
	}
	contentType := req.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if contentType != "" && strings.TrimSpace(contentType) != hsdsdata.JSONMediaType {
		return nil, errUnsupportedMediaType{Type: contentType}
	}
	if err := h.codec.Decode(req.Body, ptr.Interface()); err != nil {
		return nil, errBadRequest{"Invalid request body: " + err.Error()}
	}
	return ptr.Elem().Interface(), nil
}

// errUnsupportedMediaType is returned if a request body has a type
// the resource does not accept.
type errUnsupportedMediaType struct {
	Type string
}

func (e errUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

func (e errUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}
