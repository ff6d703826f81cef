// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsdata

import (
	"fmt"
)

// ShapeClass is the class of a dataspace.
type ShapeClass int

const (
	// NullShape is a dataspace with no elements.
	NullShape ShapeClass = iota

	// ScalarShape is a dataspace with exactly one element.
	ScalarShape

	// SimpleShape is an n-dimensional array.
	SimpleShape
)

// MarshalText returns the HDF5 name of a shape class.
func (class ShapeClass) MarshalText() ([]byte, error) {
	switch class {
	case NullShape:
		return []byte("H5S_NULL"), nil
	case ScalarShape:
		return []byte("H5S_SCALAR"), nil
	case SimpleShape:
		return []byte("H5S_SIMPLE"), nil
	default:
		return nil, fmt.Errorf("invalid shape class (marshal, %+v)", int(class))
	}
}

// UnmarshalText populates a shape class from its HDF5 name.
func (class *ShapeClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "H5S_NULL":
		*class = NullShape
	case "H5S_SCALAR":
		*class = ScalarShape
	case "H5S_SIMPLE":
		*class = SimpleShape
	default:
		return fmt.Errorf("invalid shape class (unmarshal, %+v)", string(text))
	}
	return nil
}

func (class ShapeClass) String() string {
	text, err := class.MarshalText()
	if err != nil {
		return fmt.Sprintf("ShapeClass(%d)", int(class))
	}
	return string(text)
}

// TypeClass is the class of an HDF5 datatype.
type TypeClass int

const (
	IntegerType TypeClass = iota
	FloatType
	StringType
	CompoundType
	ArrayType
	EnumType
	ReferenceType
	OpaqueType
	VLenType
	BitfieldType
	TimeType
)

var typeClassNames = []string{
	IntegerType:   "H5T_INTEGER",
	FloatType:     "H5T_FLOAT",
	StringType:    "H5T_STRING",
	CompoundType:  "H5T_COMPOUND",
	ArrayType:     "H5T_ARRAY",
	EnumType:      "H5T_ENUM",
	ReferenceType: "H5T_REFERENCE",
	OpaqueType:    "H5T_OPAQUE",
	VLenType:      "H5T_VLEN",
	BitfieldType:  "H5T_BITFIELD",
	TimeType:      "H5T_TIME",
}

// MarshalText returns the HDF5 name of a type class.
func (class TypeClass) MarshalText() ([]byte, error) {
	if class < 0 || int(class) >= len(typeClassNames) {
		return nil, fmt.Errorf("invalid type class (marshal, %+v)", int(class))
	}
	return []byte(typeClassNames[class]), nil
}

// UnmarshalText populates a type class from its HDF5 name.
func (class *TypeClass) UnmarshalText(text []byte) error {
	for i, name := range typeClassNames {
		if name == string(text) {
			*class = TypeClass(i)
			return nil
		}
	}
	return fmt.Errorf("invalid type class (unmarshal, %+v)", string(text))
}

func (class TypeClass) String() string {
	text, err := class.MarshalText()
	if err != nil {
		return fmt.Sprintf("TypeClass(%d)", int(class))
	}
	return string(text)
}

// LinkClass distinguishes hard, soft and external links.
type LinkClass int

const (
	// HardLink points at an object by identifier.
	HardLink LinkClass = iota

	// SoftLink points at a path in the same domain.
	SoftLink

	// ExternalLink points at a path in another domain.
	ExternalLink
)

// MarshalText returns the HDF5 name of a link class.
func (class LinkClass) MarshalText() ([]byte, error) {
	switch class {
	case HardLink:
		return []byte("H5L_TYPE_HARD"), nil
	case SoftLink:
		return []byte("H5L_TYPE_SOFT"), nil
	case ExternalLink:
		return []byte("H5L_TYPE_EXTERNAL"), nil
	default:
		return nil, fmt.Errorf("invalid link class (marshal, %+v)", int(class))
	}
}

// UnmarshalText populates a link class from its HDF5 name.
func (class *LinkClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "H5L_TYPE_HARD":
		*class = HardLink
	case "H5L_TYPE_SOFT":
		*class = SoftLink
	case "H5L_TYPE_EXTERNAL":
		*class = ExternalLink
	default:
		return fmt.Errorf("invalid link class (unmarshal, %+v)", string(text))
	}
	return nil
}

func (class LinkClass) String() string {
	text, err := class.MarshalText()
	if err != nil {
		return fmt.Sprintf("LinkClass(%d)", int(class))
	}
	return string(text)
}

// Collection names the kind of object an identifier refers to, as it
// appears in URL paths.
type Collection string

const (
	Groups    Collection = "groups"
	Datasets  Collection = "datasets"
	Datatypes Collection = "datatypes"
)

// CollectionOf guesses the collection of an object from the prefix of
// its identifier.  HSDS identifiers start with "g-", "d-" or "t-".
func CollectionOf(id string) (Collection, error) {
	if len(id) >= 2 && id[1] == '-' {
		switch id[0] {
		case 'g':
			return Groups, nil
		case 'd':
			return Datasets, nil
		case 't':
			return Datatypes, nil
		}
	}
	return "", fmt.Errorf("cannot determine collection of %q", id)
}

// Prefix returns the identifier prefix of objects in c, or "" if c is
// not a known collection.
func (c Collection) Prefix() string {
	switch c {
	case Groups:
		return "g-"
	case Datasets:
		return "d-"
	case Datatypes:
		return "t-"
	default:
		return ""
	}
}
