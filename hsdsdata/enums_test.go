// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsdata

import (
	"testing"
)

func TestTypeClassText(t *testing.T) {
	for i, name := range typeClassNames {
		class := TypeClass(i)
		text, err := class.MarshalText()
		if err != nil {
			t.Errorf("MarshalText(%d) => error %v", i, err)
		} else if string(text) != name {
			t.Errorf("MarshalText(%d) => %q, want %q", i, text, name)
		}

		var back TypeClass
		err = back.UnmarshalText([]byte(name))
		if err != nil {
			t.Errorf("UnmarshalText(%q) => error %v", name, err)
		} else if back != class {
			t.Errorf("UnmarshalText(%q) => %v, want %v", name, back, class)
		}
	}

	if _, err := TypeClass(99).MarshalText(); err == nil {
		t.Error("MarshalText(99) succeeded")
	}
	if s := TypeClass(-1).String(); s != "TypeClass(-1)" {
		t.Errorf("String(-1) => %q", s)
	}
}

func TestShapeAndLinkClassText(t *testing.T) {
	tests := []struct {
		text  string
		class interface {
			MarshalText() ([]byte, error)
		}
	}{
		{"H5S_NULL", NullShape},
		{"H5S_SCALAR", ScalarShape},
		{"H5S_SIMPLE", SimpleShape},
		{"H5L_TYPE_HARD", HardLink},
		{"H5L_TYPE_SOFT", SoftLink},
		{"H5L_TYPE_EXTERNAL", ExternalLink},
	}
	for _, test := range tests {
		text, err := test.class.MarshalText()
		if err != nil {
			t.Errorf("MarshalText(%v) => error %v", test.class, err)
		} else if string(text) != test.text {
			t.Errorf("MarshalText(%v) => %q, want %q", test.class, text, test.text)
		}
	}

	var shape ShapeClass
	if err := shape.UnmarshalText([]byte("H5S_SCALAR")); err != nil || shape != ScalarShape {
		t.Errorf("UnmarshalText(H5S_SCALAR) => %v, %v", shape, err)
	}
	var link LinkClass
	if err := link.UnmarshalText([]byte("hard")); err == nil {
		t.Errorf("UnmarshalText(hard) => %v, want error", link)
	}
}

func TestCollectionOf(t *testing.T) {
	tests := []struct {
		id         string
		collection Collection
		ok         bool
	}{
		{"g-1234", Groups, true},
		{"d-1234", Datasets, true},
		{"t-1234", Datatypes, true},
		{"x-1234", "", false},
		{"g", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		collection, err := CollectionOf(test.id)
		if test.ok && err != nil {
			t.Errorf("CollectionOf(%q) => error %v", test.id, err)
		} else if !test.ok && err == nil {
			t.Errorf("CollectionOf(%q) => %q, want error", test.id, collection)
		} else if collection != test.collection {
			t.Errorf("CollectionOf(%q) => %q, want %q", test.id, collection, test.collection)
		}
	}
}

func TestACLUpdateApply(t *testing.T) {
	acl := ACL{UserName: "bob", Read: true, Delete: true}
	ACLUpdate{Create: Bool(true), Delete: Bool(false)}.Apply(&acl)
	want := ACL{UserName: "bob", Create: true, Read: true}
	if acl != want {
		t.Errorf("Apply => %+v, want %+v", acl, want)
	}
}
