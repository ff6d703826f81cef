// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDomain(t *testing.T) {
	c := NewCodec()
	body := `{"root":"g-1","owner":"bob","class":"domain","created":1.0,"lastModified":2.0,"hrefs":[]}`
	var domain Domain
	err := c.Decode(strings.NewReader(body), &domain)
	require.NoError(t, err)
	assert.Equal(t, "g-1", domain.Root)
	assert.Equal(t, "bob", domain.Owner)
	assert.Equal(t, "domain", domain.Class)
	assert.Equal(t, 1.0, domain.Created)
	assert.Equal(t, 2.0, domain.LastModified)
	assert.Empty(t, domain.Hrefs)
}

func TestDecodeIgnoresCase(t *testing.T) {
	c := NewCodec()
	body := `{"ROOT":"g-1","Owner":"bob","LASTMODIFIED":3}`
	var domain Domain
	err := c.Decode(strings.NewReader(body), &domain)
	require.NoError(t, err)
	assert.Equal(t, "g-1", domain.Root)
	assert.Equal(t, "bob", domain.Owner)
	assert.Equal(t, 3.0, domain.LastModified)
}

func TestDecodeEnumsAsStrings(t *testing.T) {
	c := NewCodec()
	body := `{
		"id": "d-1",
		"type": {"class": "H5T_INTEGER", "base": "H5T_STD_I32LE"},
		"shape": {"class": "H5S_SIMPLE", "dims": [4, 5], "maxdims": [0, 5]}
	}`
	var dataset Dataset
	err := c.Decode(strings.NewReader(body), &dataset)
	require.NoError(t, err)
	assert.Equal(t, IntegerType, dataset.Type.Class)
	assert.Equal(t, "H5T_STD_I32LE", dataset.Type.Base)
	assert.Equal(t, SimpleShape, dataset.Shape.Class)
	assert.Equal(t, []uint64{4, 5}, dataset.Shape.Dims)
	assert.Equal(t, []uint64{0, 5}, dataset.Shape.MaxDims)
}

func TestDecodeEnumsAsNumbers(t *testing.T) {
	c := NewCodec()
	var link Link
	err := c.Decode(strings.NewReader(`{"class": 1, "title": "x", "h5path": "/a"}`), &link)
	require.NoError(t, err)
	assert.Equal(t, SoftLink, link.Class)
	assert.Equal(t, "/a", link.H5Path)
}

func TestDecodeBadEnum(t *testing.T) {
	c := NewCodec()
	var shape Shape
	err := c.Decode(strings.NewReader(`{"class": "H5S_BOGUS"}`), &shape)
	assert.Error(t, err)
}

func TestDecodeIsAllOrNothing(t *testing.T) {
	c := NewCodec()
	tests := []string{
		`{"root":"g-2","owner":`,
		`{"root":"g-2","created":"yesterday"}`,
		``,
		`not json`,
	}
	for _, body := range tests {
		domain := Domain{Root: "g-1"}
		err := c.Decode(strings.NewReader(body), &domain)
		if assert.Error(t, err, "decoding %q", body) {
			assert.Equal(t, "g-1", domain.Root, "decoding %q", body)
		}
	}
}

func TestDecodeTrailingData(t *testing.T) {
	c := NewCodec()
	tests := []string{
		`{"owner": "bob", "root": "g-2"}}} not json`,
		`{"owner": "bob"} {"owner": "alice"}`,
		`{"owner": "bob"},`,
	}
	for _, body := range tests {
		domain := Domain{Root: "g-1"}
		err := c.Decode(strings.NewReader(body), &domain)
		assert.Equal(t, ErrNotJSON, err, "decoding %q", body)
		assert.Equal(t, "g-1", domain.Root, "decoding %q", body)
	}

	var domain Domain
	err := c.Decode(strings.NewReader("\n {\"owner\": \"bob\"}\r\n\t "), &domain)
	if assert.NoError(t, err) {
		assert.Equal(t, "bob", domain.Owner)
	}
}

func TestDecodeFractionalInteger(t *testing.T) {
	c := NewCodec()
	var out struct {
		N int
		U uint64
		P *int
	}
	for _, body := range []string{`{"n": 1.75}`, `{"u": 0.5}`, `{"p": -2.25}`} {
		assert.Error(t, c.Unmarshal([]byte(body), &out), "decoding %q", body)
	}

	var group Group
	err := c.Unmarshal([]byte(`{"linkCount": 2.0, "created": 1.5}`), &group)
	if assert.NoError(t, err) {
		assert.Equal(t, 2, group.LinkCount)
		assert.Equal(t, 1.5, group.Created)
	}
}

func TestDecodeNotPointer(t *testing.T) {
	c := NewCodec()
	var domain Domain
	assert.Equal(t, ErrNotPointer, c.Decode(strings.NewReader("{}"), domain))
	assert.Equal(t, ErrNotPointer, c.Decode(strings.NewReader("{}"), nil))
}

func TestDecodeGenericValue(t *testing.T) {
	c := NewCodec()
	var value ValueResponse
	err := c.Unmarshal([]byte(`{"value": [[1, 2], [3, 4]], "hrefs": []}`), &value)
	require.NoError(t, err)
	rows, ok := value.Value.([]interface{})
	if assert.True(t, ok) {
		assert.Len(t, rows, 2)
	}
}

func TestEncodeEnumsAsStrings(t *testing.T) {
	c := NewCodec()
	req := CreateDatasetRequest{
		Type:  Type{Class: FloatType, Base: "H5T_IEEE_F64LE"},
		Shape: []uint64{10},
		Link:  &LinkRequest{ID: "g-1", Name: "dset"},
	}
	data, err := c.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": {"class": "H5T_FLOAT", "base": "H5T_IEEE_F64LE"},
		"shape": [10],
		"link": {"id": "g-1", "name": "dset"}
	}`, string(data))
}

func TestEncodeACLUpdateOmitsUnset(t *testing.T) {
	c := NewCodec()
	data, err := c.Marshal(ACLUpdate{Create: Bool(true), Read: Bool(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"create":true,"read":true}`, string(data))
}

func TestRoundTripAttribute(t *testing.T) {
	c := NewCodec()
	in := Attribute{
		Name:  "units",
		Type:  Type{Class: StringType, Length: "H5T_VARIABLE", CharSet: "H5T_CSET_UTF8"},
		Shape: Shape{Class: ScalarShape},
		Value: "meters",
	}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out Attribute
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, StringType, out.Type.Class)
	assert.Equal(t, "H5T_VARIABLE", out.Type.Length)
	assert.Equal(t, ScalarShape, out.Shape.Class)
	assert.Equal(t, "meters", out.Value)
}
