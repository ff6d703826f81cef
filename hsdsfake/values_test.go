// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"math"
	"testing"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		sel   string
		dims  []uint64
		slabs []slab
		ok    bool
	}{
		{"", []uint64{4}, []slab{{0, 4, 1}}, true},
		{"[1:3]", []uint64{4}, []slab{{1, 3, 1}}, true},
		{"[2]", []uint64{4}, []slab{{2, 3, 1}}, true},
		{"[:]", []uint64{4}, []slab{{0, 4, 1}}, true},
		{"[0:4:2, 1]", []uint64{4, 2}, []slab{{0, 4, 2}, {1, 2, 1}}, true},
		{"[0:5]", []uint64{4}, nil, false},
		{"[3:1]", []uint64{4}, nil, false},
		{"[0:4:0]", []uint64{4}, nil, false},
		{"[1]", []uint64{4, 4}, nil, false},
		{"1:2", []uint64{4}, nil, false},
		{"[a]", []uint64{4}, nil, false},
		{"[]", []uint64{4}, nil, false},
	}
	for _, test := range tests {
		slabs, err := parseSelection(test.sel, test.dims)
		if test.ok {
			if assert.NoError(t, err, test.sel) {
				assert.Equal(t, test.slabs, slabs, test.sel)
			}
		} else {
			assert.IsType(t, errBadRequest{}, err, test.sel)
		}
	}
}

func TestSlabCount(t *testing.T) {
	tests := []struct {
		s     slab
		count int
	}{
		{slab{0, 4, 1}, 4},
		{slab{0, 4, 2}, 2},
		{slab{0, 5, 2}, 3},
		{slab{3, 4, 7}, 1},
		{slab{0, 5, math.MaxUint64}, 1},
		{slab{1, 5, math.MaxUint64 - 1}, 1},
		{slab{2, 9, 1 << 63}, 1},
	}
	for _, test := range tests {
		if got := test.s.count(); got != test.count {
			t.Errorf("%+v.count() = %d, want %d", test.s, got, test.count)
		}
	}
}

func TestHugeStep(t *testing.T) {
	slabs, err := parseSelection("[0:5:18446744073709551615]", []uint64{5})
	if !assert.NoError(t, err) {
		return
	}
	value := []interface{}{int64(1), int64(2), int64(3), int64(4), int64(5)}
	assert.Equal(t, []interface{}{int64(1)}, readSlabs(value, slabs))

	updated, err := writeSlabs(value, slabs, []interface{}{int64(9)})
	if assert.NoError(t, err) {
		assert.Equal(t, []interface{}{int64(9), int64(2), int64(3), int64(4), int64(5)}, updated)
	}

	_, err = writeSlabs(value, slabs, []interface{}{int64(9), int64(9)})
	assert.IsType(t, errBadRequest{}, err)
}

func TestCheckElements(t *testing.T) {
	assert.NoError(t, checkElements(nil))
	assert.NoError(t, checkElements([]uint64{0, 1 << 40}))
	assert.NoError(t, checkElements([]uint64{1 << 12, 1 << 12}))
	assert.IsType(t, errBadRequest{}, checkElements([]uint64{1 << 34}))
	assert.IsType(t, errBadRequest{}, checkElements([]uint64{1 << 12, 1 << 12, 2}))
	assert.IsType(t, errBadRequest{}, checkElements([]uint64{1 << 32, 1 << 32, 1 << 32}))
}

func TestCopyValue(t *testing.T) {
	value := []interface{}{[]interface{}{int64(1), int64(2)}, "x"}
	copied := copyValue(value).([]interface{})
	copied[0].([]interface{})[0] = int64(7)
	copied[1] = "y"
	assert.Equal(t, []interface{}{[]interface{}{int64(1), int64(2)}, "x"}, value)
	assert.Equal(t, int64(5), copyValue(int64(5)))
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		base  string
		class hsdsdata.TypeClass
		value interface{}
		data  []byte
	}{
		{
			"H5T_STD_I16LE", hsdsdata.IntegerType,
			[]interface{}{int64(1), int64(-2)},
			[]byte{0x01, 0x00, 0xfe, 0xff},
		},
		{
			"H5T_STD_U16BE", hsdsdata.IntegerType,
			[]interface{}{uint64(1), uint64(258)},
			[]byte{0x00, 0x01, 0x01, 0x02},
		},
		{
			"H5T_STD_U8LE", hsdsdata.IntegerType,
			[]interface{}{[]interface{}{uint64(1), uint64(2)}, []interface{}{uint64(3), uint64(4)}},
			[]byte{1, 2, 3, 4},
		},
		{
			"H5T_IEEE_F32BE", hsdsdata.FloatType,
			[]interface{}{float64(1)},
			[]byte{0x3f, 0x80, 0x00, 0x00},
		},
	}
	for _, test := range tests {
		dtype := hsdsdata.Type{Class: test.class, Base: test.base}
		data, err := encodeBinary(dtype, test.value)
		if assert.NoError(t, err, test.base) {
			assert.Equal(t, test.data, data, test.base)
		}

		var counts []int
		for v := test.value; ; {
			values, ok := v.([]interface{})
			if !ok {
				break
			}
			counts = append(counts, len(values))
			v = values[0]
		}
		value, err := decodeBinary(dtype, counts, test.data)
		if assert.NoError(t, err, test.base) {
			assert.Equal(t, test.value, value, test.base)
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	_, err := encodeBinary(hsdsdata.Type{Class: hsdsdata.StringType}, "x")
	assert.IsType(t, errNotImplemented{}, err)

	_, err = encodeBinary(hsdsdata.Type{Class: hsdsdata.IntegerType, Base: "H5T_STD_I32LE"}, "x")
	assert.IsType(t, errBadRequest{}, err)

	_, err = decodeBinary(hsdsdata.Type{Class: hsdsdata.IntegerType, Base: "H5T_STD_I32LE"}, []int{2}, []byte{1, 2, 3})
	assert.IsType(t, errBadRequest{}, err)

	_, err = formatOf(hsdsdata.Type{Class: hsdsdata.FloatType, Base: "H5T_IEEE_F8LE"})
	assert.IsType(t, errBadRequest{}, err)
}
