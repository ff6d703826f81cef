// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package hsdsdata defines the data structures exchanged with an HSDS
// server, shared between the hsdsclient and hsdsfake packages.
// Generally these are passed across the wire as application/json.
//
// API Usage
//
// HSDS addresses every object relative to a domain, which is passed
// as the "domain" query parameter (and optionally a "bucket").  The
// domain itself lives at /; its objects live under /groups,
// /datasets and /datatypes, named by server-assigned identifiers
// such as "g-1d3c...".  Groups hold named links to other objects.
// Any object may carry attributes, and the domain and each object
// carry access-control lists.
//
// Encoding Considerations
//
// Property names are matched case-insensitively when decoding, so
// "lastModified" and "LastModified" both populate the LastModified
// field.  Enumerated values (shape classes, type classes, link
// classes) travel as their HDF5 constant names, "H5S_SIMPLE" and so
// on, and are also accepted as their numeric values.
//
// Timestamps are seconds since the Unix epoch, as floating-point
// numbers.  Dataset and attribute values are arbitrary JSON and are
// left as interface{} trees.
//
// Errors
//
// The server reports failures as non-2xx statuses whose body, if any,
// is free text.  There is no structured error document.
package hsdsdata

// JSONMediaType is the media type of every structured request and
// response body.
const JSONMediaType = "application/json"

// OctetStreamMediaType requests raw binary dataset values.
const OctetStreamMediaType = "application/octet-stream"

// Href is one hypermedia link included in most responses.
type Href struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

// Domain is returned by GET / and PUT /.
type Domain struct {
	// Root is the identifier of the domain's root group.  It is
	// empty for folders.
	Root         string  `json:"root,omitempty"`
	Owner        string  `json:"owner"`
	Class        string  `json:"class"`
	Created      float64 `json:"created"`
	LastModified float64 `json:"lastModified"`
	Hrefs        []Href  `json:"hrefs"`
}

// PutDomainRequest is the optional body of PUT /.
type PutDomainRequest struct {
	// Folder creates a folder rather than a domain with a root
	// group.
	Folder bool `json:"folder,omitempty"`

	// Owner sets the owner; only administrators may set this.
	Owner string `json:"owner,omitempty"`
}

// DeleteDomainResponse is returned by DELETE /.
type DeleteDomainResponse struct {
	Domain string `json:"domain"`
}

// DomainSummary is one entry in a folder listing.
type DomainSummary struct {
	Name         string  `json:"name"`
	Owner        string  `json:"owner"`
	Class        string  `json:"class"`
	Root         string  `json:"root,omitempty"`
	Created      float64 `json:"created"`
	LastModified float64 `json:"lastModified"`
}

// DomainList is returned by GET /domains.
type DomainList struct {
	Domains []DomainSummary `json:"domains"`
	Hrefs   []Href          `json:"hrefs"`
}

// LinkRequest asks for a newly created object to be linked into an
// existing group.
type LinkRequest struct {
	// ID is the identifier of the parent group.
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Link *LinkRequest `json:"link,omitempty"`
}

// Group is returned by POST /groups and GET /groups/{id}.
type Group struct {
	ID             string  `json:"id"`
	Root           string  `json:"root"`
	Domain         string  `json:"domain,omitempty"`
	Created        float64 `json:"created"`
	LastModified   float64 `json:"lastModified"`
	LinkCount      int     `json:"linkCount"`
	AttributeCount int     `json:"attributeCount"`
	Hrefs          []Href  `json:"hrefs"`
}

// GroupList is returned by GET /groups.
type GroupList struct {
	Groups []string `json:"groups"`
	Hrefs  []Href   `json:"hrefs"`
}

// Link is a named edge from a group to another object, a path in the
// same domain, or a path in another domain.
type Link struct {
	Class      LinkClass `json:"class"`
	Title      string    `json:"title"`
	Collection string    `json:"collection,omitempty"`
	ID         string    `json:"id,omitempty"`
	H5Path     string    `json:"h5path,omitempty"`
	H5Domain   string    `json:"h5domain,omitempty"`
	Target     string    `json:"target,omitempty"`
	Created    float64   `json:"created,omitempty"`
}

// LinkList is returned by GET /groups/{id}/links.
type LinkList struct {
	Links []Link `json:"links"`
	Hrefs []Href `json:"hrefs"`
}

// LinkResponse is returned by GET /groups/{id}/links/{name}.
type LinkResponse struct {
	Link         Link    `json:"link"`
	Created      float64 `json:"created"`
	LastModified float64 `json:"lastModified"`
	Hrefs        []Href  `json:"hrefs"`
}

// PutLinkRequest is the body of PUT /groups/{id}/links/{name}.
// Exactly one form should be used: ID for a hard link, H5Path for a
// soft link, H5Path and H5Domain for an external link.
type PutLinkRequest struct {
	ID       string `json:"id,omitempty"`
	H5Path   string `json:"h5path,omitempty"`
	H5Domain string `json:"h5domain,omitempty"`
}

// Shape describes the dataspace of a dataset or attribute.
type Shape struct {
	Class ShapeClass `json:"class"`
	Dims  []uint64   `json:"dims,omitempty"`
	// MaxDims uses 0 for an unlimited dimension.
	MaxDims []uint64 `json:"maxdims,omitempty"`
}

// Type describes an HDF5 datatype.
type Type struct {
	Class TypeClass `json:"class"`
	// Base is a predefined type name such as "H5T_STD_I32LE".
	Base string `json:"base,omitempty"`
	// Length is either a number of characters or "H5T_VARIABLE".
	Length  interface{} `json:"length,omitempty"`
	CharSet string      `json:"charSet,omitempty"`
	StrPad  string      `json:"strPad,omitempty"`
	Fields  []TypeField `json:"fields,omitempty"`
	Dims    []uint64    `json:"dims,omitempty"`
}

// TypeField is one member of a compound type.
type TypeField struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// CreateDatasetRequest is the body of POST /datasets.  A nil Shape
// creates a scalar dataset.
type CreateDatasetRequest struct {
	Type    Type         `json:"type"`
	Shape   []uint64     `json:"shape,omitempty"`
	MaxDims []uint64     `json:"maxdims,omitempty"`
	Link    *LinkRequest `json:"link,omitempty"`
}

// Dataset is returned by POST /datasets and GET /datasets/{id}.
type Dataset struct {
	ID             string  `json:"id"`
	Root           string  `json:"root"`
	Domain         string  `json:"domain,omitempty"`
	Type           Type    `json:"type"`
	Shape          Shape   `json:"shape"`
	Created        float64 `json:"created"`
	LastModified   float64 `json:"lastModified"`
	AttributeCount int     `json:"attributeCount"`
	Hrefs          []Href  `json:"hrefs"`
}

// DatasetList is returned by GET /datasets.
type DatasetList struct {
	Datasets []string `json:"datasets"`
	Hrefs    []Href   `json:"hrefs"`
}

// ShapeResponse is returned by GET /datasets/{id}/shape.
type ShapeResponse struct {
	Shape        Shape   `json:"shape"`
	Created      float64 `json:"created"`
	LastModified float64 `json:"lastModified"`
	Hrefs        []Href  `json:"hrefs"`
}

// PutShapeRequest is the body of PUT /datasets/{id}/shape, which
// extends a resizable dataset.
type PutShapeRequest struct {
	Shape []uint64 `json:"shape"`
}

// TypeResponse is returned by GET /datasets/{id}/type.
type TypeResponse struct {
	Type  Type   `json:"type"`
	Hrefs []Href `json:"hrefs"`
}

// ValueResponse is returned by value reads requested as JSON.
type ValueResponse struct {
	Value interface{} `json:"value"`
	Hrefs []Href      `json:"hrefs"`
}

// PutValueRequest is the body of PUT /datasets/{id}/value.  Start,
// Stop and Step select a hyperslab; when all are nil the whole
// dataset is written.
type PutValueRequest struct {
	Value interface{} `json:"value"`
	Start []uint64    `json:"start,omitempty"`
	Stop  []uint64    `json:"stop,omitempty"`
	Step  []uint64    `json:"step,omitempty"`
}

// CreateDatatypeRequest is the body of POST /datatypes.
type CreateDatatypeRequest struct {
	Type Type         `json:"type"`
	Link *LinkRequest `json:"link,omitempty"`
}

// Datatype is a committed datatype, returned by POST /datatypes and
// GET /datatypes/{id}.
type Datatype struct {
	ID             string  `json:"id"`
	Root           string  `json:"root"`
	Domain         string  `json:"domain,omitempty"`
	Type           Type    `json:"type"`
	Created        float64 `json:"created"`
	LastModified   float64 `json:"lastModified"`
	AttributeCount int     `json:"attributeCount"`
	Hrefs          []Href  `json:"hrefs"`
}

// DatatypeList is returned by GET /datatypes.
type DatatypeList struct {
	Datatypes []string `json:"datatypes"`
	Hrefs     []Href   `json:"hrefs"`
}

// Attribute is a small named value attached to an object.
type Attribute struct {
	Name         string      `json:"name"`
	Type         Type        `json:"type"`
	Shape        Shape       `json:"shape"`
	Value        interface{} `json:"value,omitempty"`
	Created      float64     `json:"created"`
	LastModified float64     `json:"lastModified,omitempty"`
	Hrefs        []Href      `json:"hrefs,omitempty"`
}

// AttributeList is returned by GET /{collection}/{id}/attributes.
type AttributeList struct {
	Attributes []Attribute `json:"attributes"`
	Hrefs      []Href      `json:"hrefs"`
}

// PutAttributeRequest is the body of PUT
// /{collection}/{id}/attributes/{name}.  A nil Shape creates a
// scalar attribute.
type PutAttributeRequest struct {
	Type  Type        `json:"type"`
	Shape []uint64    `json:"shape,omitempty"`
	Value interface{} `json:"value"`
}

// ACL holds one user's permissions on a domain or object.
type ACL struct {
	UserName  string `json:"userName,omitempty"`
	Create    bool   `json:"create"`
	Read      bool   `json:"read"`
	Update    bool   `json:"update"`
	Delete    bool   `json:"delete"`
	ReadACL   bool   `json:"readACL"`
	UpdateACL bool   `json:"updateACL"`
}

// ACLList is returned by GET /acls.
type ACLList struct {
	ACLs  []ACL  `json:"acls"`
	Hrefs []Href `json:"hrefs"`
}

// ACLResponse is returned by GET and PUT /acls/{user}.
type ACLResponse struct {
	ACL   ACL    `json:"acl"`
	Hrefs []Href `json:"hrefs"`
}

// ACLUpdate is the body of PUT /acls/{user}.  Nil fields are left
// unchanged by the server.
type ACLUpdate struct {
	Create    *bool `json:"create,omitempty"`
	Read      *bool `json:"read,omitempty"`
	Update    *bool `json:"update,omitempty"`
	Delete    *bool `json:"delete,omitempty"`
	ReadACL   *bool `json:"readACL,omitempty"`
	UpdateACL *bool `json:"updateACL,omitempty"`
}

// Apply copies every non-nil permission in u onto acl.
func (u ACLUpdate) Apply(acl *ACL) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&acl.Create, u.Create)
	set(&acl.Read, u.Read)
	set(&acl.Update, u.Update)
	set(&acl.Delete, u.Delete)
	set(&acl.ReadACL, u.ReadACL)
	set(&acl.UpdateACL, u.UpdateACL)
}

// Bool returns a pointer to b, for building ACLUpdate values.
func Bool(b bool) *bool {
	return &b
}
