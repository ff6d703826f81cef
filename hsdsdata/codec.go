// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsdata

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/ugorji/go/codec"
)

// ErrNotPointer is returned from Codec.Decode if the output is not a
// non-nil pointer.
var ErrNotPointer = errors.New("decode target must be a non-nil pointer")

// ErrNotJSON is returned from Codec.Decode if the input is not
// exactly one JSON value, optionally surrounded by whitespace.
var ErrNotJSON = errors.New("input is not a single JSON value")

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Codec is the JSON configuration used for request and response
// bodies.  A Codec is immutable once created and safe for concurrent
// use; create one with NewCodec.
//
// Decoding is done in two passes: the body is first parsed into a
// generic tree, which is then mapped onto the target.  The second
// pass matches property names case-insensitively and converts
// strings into any type implementing encoding.TextUnmarshaler, which
// is how the enumerated types in this package accept their HDF5
// names.
type Codec struct {
	handle *codec.JsonHandle
}

// NewCodec creates the standard codec.
func NewCodec() *Codec {
	handle := &codec.JsonHandle{}
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))
	handle.SliceType = reflect.TypeOf([]interface{}(nil))
	return &Codec{handle: handle}
}

// Encode writes the JSON encoding of v to w.
func (c *Codec) Encode(w io.Writer, v interface{}) error {
	return codec.NewEncoder(w, c.handle).Encode(v)
}

// Marshal returns the JSON encoding of v.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads all of r, which must hold exactly one JSON value, and
// stores it in out, which must be a non-nil pointer.  out is only
// modified if the whole value decodes successfully.
func (c *Codec) Decode(r io.Reader, out interface{}) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return ErrNotPointer
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	// ugorji stops after the first value and ignores the rest
	if !json.Valid(data) {
		return ErrNotJSON
	}
	var tree interface{}
	if err := codec.NewDecoderBytes(data, c.handle).Decode(&tree); err != nil {
		return err
	}

	fresh := reflect.New(target.Elem().Type())
	if err := c.mapInto(tree, fresh.Interface()); err != nil {
		return err
	}
	target.Elem().Set(fresh.Elem())
	return nil
}

// Unmarshal is Decode over a byte slice.
func (c *Codec) Unmarshal(data []byte, out interface{}) error {
	return c.Decode(bytes.NewReader(data), out)
}

// mapInto copies a generic decoded tree onto a typed result.
func (c *Codec) mapInto(tree interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(textUnmarshalHook, integralHook),
		TagName:    "json",
		Result:     result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(tree)
}

// textUnmarshalHook converts strings into types that know how to
// parse themselves.
func textUnmarshalHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() == reflect.Interface {
		return data, nil
	}
	if !reflect.PtrTo(to).Implements(textUnmarshalerType) {
		return data, nil
	}
	value := reflect.New(to)
	text := reflect.ValueOf(data).String()
	if err := value.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return nil, err
	}
	return value.Elem().Interface(), nil
}

// integralHook refuses to truncate a fractional number into an
// integer field.
func integralHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("cannot store %v in a %s", f, to)
	}
	return data, nil
}
