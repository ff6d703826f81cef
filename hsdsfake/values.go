// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

// This file holds dataset values: shapes, hyperslab selections, and
// the binary transfer format.
//
// Values are kept as the nested []interface{} trees JSON produces,
// one level of nesting per dimension.  Scalars are bare values.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// slab selects start, start+step, ... up to but excluding stop in
// one dimension.
type slab struct {
	start, stop, step uint64
}

// count is the number of indices selected.  It assumes start < stop.
func (s slab) count() int {
	return int((s.stop-s.start-1)/s.step + 1)
}

// index is the dataset index of the k'th selected element.
func (s slab) index(k int) uint64 {
	return s.start + uint64(k)*s.step
}

func fullSelection(dims []uint64) []slab {
	slabs := make([]slab, len(dims))
	for i, n := range dims {
		slabs[i] = slab{start: 0, stop: n, step: 1}
	}
	return slabs
}

func checkSlab(s slab, dim uint64) error {
	if s.step == 0 || s.start >= s.stop || s.stop > dim {
		return errBadRequest{"Selection is out of range"}
	}
	return nil
}

// parseSelection parses a selection such as "[0:4,2]" or
// "[1:10:3]".  An empty selection is the whole dataset.
func parseSelection(sel string, dims []uint64) ([]slab, error) {
	if sel == "" {
		return fullSelection(dims), nil
	}
	if !strings.HasPrefix(sel, "[") || !strings.HasSuffix(sel, "]") {
		return nil, errBadRequest{"Invalid selection"}
	}
	parts := strings.Split(sel[1:len(sel)-1], ",")
	if len(parts) != len(dims) {
		return nil, errBadRequest{"Selection has the wrong rank"}
	}
	slabs := make([]slab, len(dims))
	for i, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) > 3 {
			return nil, errBadRequest{"Invalid selection"}
		}
		s := slab{start: 0, stop: dims[i], step: 1}
		bounds := []*uint64{&s.start, &s.stop, &s.step}
		for j, field := range fields {
			if field == "" {
				continue
			}
			n, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return nil, errBadRequest{"Invalid selection"}
			}
			*bounds[j] = n
		}
		if len(fields) == 1 {
			if fields[0] == "" {
				return nil, errBadRequest{"Invalid selection"}
			}
			s.stop = s.start + 1
		}
		if err := checkSlab(s, dims[i]); err != nil {
			return nil, err
		}
		slabs[i] = s
	}
	return slabs, nil
}

// rangeSelection builds a selection from explicit bounds, as in a
// JSON value write.  All nil is the whole dataset.
func rangeSelection(start, stop, step []uint64, dims []uint64) ([]slab, error) {
	if start == nil && stop == nil && step == nil {
		return fullSelection(dims), nil
	}
	slabs := fullSelection(dims)
	for _, bound := range [][]uint64{start, stop, step} {
		if bound != nil && len(bound) != len(dims) {
			return nil, errBadRequest{"Selection has the wrong rank"}
		}
	}
	for i := range slabs {
		if start != nil {
			slabs[i].start = start[i]
		}
		if stop != nil {
			slabs[i].stop = stop[i]
		}
		if step != nil {
			slabs[i].step = step[i]
		}
		if err := checkSlab(slabs[i], dims[i]); err != nil {
			return nil, err
		}
	}
	return slabs, nil
}

func slabCounts(slabs []slab) []int {
	counts := make([]int, len(slabs))
	for i, s := range slabs {
		counts[i] = s.count()
	}
	return counts
}

func readSlabs(value interface{}, slabs []slab) interface{} {
	if len(slabs) == 0 {
		return value
	}
	values, _ := value.([]interface{})
	n := slabs[0].count()
	out := make([]interface{}, 0, n)
	for k := 0; k < n; k++ {
		i := slabs[0].index(k)
		if i >= uint64(len(values)) {
			break
		}
		out = append(out, readSlabs(values[i], slabs[1:]))
	}
	return out
}

// writeSlabs stores src into the selected part of dst and returns the
// updated value.  src must have the selection's shape.  dst is changed
// in place, even when an error is returned partway through; callers
// that must not see partial writes pass a copyValue of it.
func writeSlabs(dst interface{}, slabs []slab, src interface{}) (interface{}, error) {
	if len(slabs) == 0 {
		return src, nil
	}
	dsts, _ := dst.([]interface{})
	srcs, ok := src.([]interface{})
	if !ok || len(srcs) != slabs[0].count() {
		return nil, errBadRequest{"Value does not match the selection"}
	}
	for k := range srcs {
		i := slabs[0].index(k)
		if i >= uint64(len(dsts)) {
			return nil, errBadRequest{"Selection is out of range"}
		}
		updated, err := writeSlabs(dsts[i], slabs[1:], srcs[k])
		if err != nil {
			return nil, err
		}
		dsts[i] = updated
	}
	return dsts, nil
}

// copyValue makes a copy of a value tree that shares no slices with
// the original.
func copyValue(value interface{}) interface{} {
	values, ok := value.([]interface{})
	if !ok {
		return value
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = copyValue(v)
	}
	return out
}

// maxElements bounds the number of elements a dataset may hold, since
// every value lives in memory.
const maxElements = 1 << 24

// checkElements fails if a dataset with dims would hold more than
// maxElements values.
func checkElements(dims []uint64) error {
	total := uint64(1)
	for _, n := range dims {
		if n != 0 && total > maxElements/n {
			return errBadRequest{"Dataset is too large"}
		}
		total *= n
	}
	return nil
}

// newShape describes a dataspace.  No dimensions is a scalar.
func newShape(dims, maxDims []uint64) (hsdsdata.Shape, error) {
	if err := checkElements(dims); err != nil {
		return hsdsdata.Shape{}, err
	}
	if len(dims) == 0 {
		if len(maxDims) != 0 {
			return hsdsdata.Shape{}, errBadRequest{"A scalar cannot have maximum dimensions"}
		}
		return hsdsdata.Shape{Class: hsdsdata.ScalarShape}, nil
	}
	if maxDims != nil {
		if len(maxDims) != len(dims) {
			return hsdsdata.Shape{}, errBadRequest{"Maximum dimensions have the wrong rank"}
		}
		for i, limit := range maxDims {
			if limit != 0 && limit < dims[i] {
				return hsdsdata.Shape{}, errBadRequest{"Maximum dimensions are smaller than the shape"}
			}
		}
		maxDims = append([]uint64(nil), maxDims...)
	}
	return hsdsdata.Shape{
		Class:   hsdsdata.SimpleShape,
		Dims:    append([]uint64(nil), dims...),
		MaxDims: maxDims,
	}, nil
}

// zeroValue is the fill value for a type.
func zeroValue(t hsdsdata.Type) interface{} {
	switch t.Class {
	case hsdsdata.StringType:
		return ""
	case hsdsdata.FloatType:
		return float64(0)
	case hsdsdata.CompoundType:
		fields := make([]interface{}, len(t.Fields))
		for i, field := range t.Fields {
			fields[i] = zeroValue(field.Type)
		}
		return fields
	default:
		return int64(0)
	}
}

// fill builds a value of the given dimensions with every element
// set to zero.
func fill(dims []uint64, zero interface{}) interface{} {
	if len(dims) == 0 {
		return zero
	}
	values := make([]interface{}, dims[0])
	for i := range values {
		values[i] = fill(dims[1:], zero)
	}
	return values
}

// resize grows a value to new dimensions, filling new elements with
// zero.
func resize(value interface{}, dims []uint64, zero interface{}) interface{} {
	if len(dims) == 0 {
		return value
	}
	old, _ := value.([]interface{})
	values := make([]interface{}, dims[0])
	for i := range values {
		if i < len(old) {
			values[i] = resize(old[i], dims[1:], zero)
		} else {
			values[i] = fill(dims[1:], zero)
		}
	}
	return values
}

// binaryFormat describes how one element of a numeric type is laid
// out.
type binaryFormat struct {
	order binary.ByteOrder
	kind  byte
	bits  int
}

func formatOf(t hsdsdata.Type) (binaryFormat, error) {
	var f binaryFormat
	var rest string
	switch {
	case t.Class == hsdsdata.IntegerType && strings.HasPrefix(t.Base, "H5T_STD_I"):
		f.kind, rest = 'i', strings.TrimPrefix(t.Base, "H5T_STD_I")
	case t.Class == hsdsdata.IntegerType && strings.HasPrefix(t.Base, "H5T_STD_U"):
		f.kind, rest = 'u', strings.TrimPrefix(t.Base, "H5T_STD_U")
	case t.Class == hsdsdata.FloatType && strings.HasPrefix(t.Base, "H5T_IEEE_F"):
		f.kind, rest = 'f', strings.TrimPrefix(t.Base, "H5T_IEEE_F")
	default:
		return f, errNotImplemented{"Binary transfer is only supported for numeric types"}
	}
	switch {
	case strings.HasSuffix(rest, "LE"):
		f.order = binary.LittleEndian
	case strings.HasSuffix(rest, "BE"):
		f.order = binary.BigEndian
	default:
		return f, errBadRequest{"Invalid base type " + t.Base}
	}
	bits, err := strconv.Atoi(rest[:len(rest)-2])
	if err != nil {
		return f, errBadRequest{"Invalid base type " + t.Base}
	}
	switch {
	case bits == 8 && f.kind != 'f', bits == 16 && f.kind != 'f', bits == 32, bits == 64:
		f.bits = bits
	default:
		return f, errBadRequest{"Invalid base type " + t.Base}
	}
	return f, nil
}

// encodeBinary flattens a value into packed elements.
func encodeBinary(t hsdsdata.Type, value interface{}) ([]byte, error) {
	f, err := formatOf(t)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var walk func(v interface{}) error
	walk = func(v interface{}) error {
		if values, ok := v.([]interface{}); ok {
			for _, child := range values {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}
		return f.write(&buf, v)
	}
	if err := walk(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f binaryFormat) write(buf *bytes.Buffer, v interface{}) error {
	rv := reflect.ValueOf(v)
	var i int64
	var u uint64
	var x float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, u, x = rv.Int(), uint64(rv.Int()), float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, u, x = int64(rv.Uint()), rv.Uint(), float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		i, u, x = int64(rv.Float()), uint64(rv.Float()), rv.Float()
	default:
		return errBadRequest{fmt.Sprintf("Value %v is not a number", v)}
	}

	var out interface{}
	switch {
	case f.kind == 'i' && f.bits == 8:
		out = int8(i)
	case f.kind == 'i' && f.bits == 16:
		out = int16(i)
	case f.kind == 'i' && f.bits == 32:
		out = int32(i)
	case f.kind == 'i':
		out = i
	case f.kind == 'u' && f.bits == 8:
		out = uint8(u)
	case f.kind == 'u' && f.bits == 16:
		out = uint16(u)
	case f.kind == 'u' && f.bits == 32:
		out = uint32(u)
	case f.kind == 'u':
		out = u
	case f.bits == 32:
		out = float32(x)
	default:
		out = x
	}
	return binary.Write(buf, f.order, out)
}

func (f binaryFormat) read(r *bytes.Reader) (interface{}, error) {
	var err error
	switch f.kind {
	case 'i':
		switch f.bits {
		case 8:
			var n int8
			err = binary.Read(r, f.order, &n)
			return int64(n), err
		case 16:
			var n int16
			err = binary.Read(r, f.order, &n)
			return int64(n), err
		case 32:
			var n int32
			err = binary.Read(r, f.order, &n)
			return int64(n), err
		default:
			var n int64
			err = binary.Read(r, f.order, &n)
			return n, err
		}
	case 'u':
		switch f.bits {
		case 8:
			var n uint8
			err = binary.Read(r, f.order, &n)
			return uint64(n), err
		case 16:
			var n uint16
			err = binary.Read(r, f.order, &n)
			return uint64(n), err
		case 32:
			var n uint32
			err = binary.Read(r, f.order, &n)
			return uint64(n), err
		default:
			var n uint64
			err = binary.Read(r, f.order, &n)
			return n, err
		}
	default:
		if f.bits == 32 {
			var x float32
			err = binary.Read(r, f.order, &x)
			return float64(x), err
		}
		var x float64
		err = binary.Read(r, f.order, &x)
		return x, err
	}
}

// decodeBinary unpacks data into a value with the given extent in
// each dimension.
func decodeBinary(t hsdsdata.Type, counts []int, data []byte) (interface{}, error) {
	f, err := formatOf(t)
	if err != nil {
		return nil, err
	}
	total := 1
	for _, n := range counts {
		total *= n
	}
	if len(data) != total*f.bits/8 {
		return nil, errBadRequest{"Binary value has the wrong length"}
	}
	r := bytes.NewReader(data)
	var build func(counts []int) (interface{}, error)
	build = func(counts []int) (interface{}, error) {
		if len(counts) == 0 {
			return f.read(r)
		}
		values := make([]interface{}, counts[0])
		for i := range values {
			v, err := build(counts[1:])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}
	return build(counts)
}
