// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"io/ioutil"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/gorilla/mux"
)

// collectionPattern matches the collections that carry attributes
// and ACLs.
const collectionPattern = "{collection:groups|datasets|datatypes}"

// restAPI holds the state behind every route.
type restAPI struct {
	store  *Store
	server *Server
}

// PopulateRouter adds every route to r.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	handle := func(path string, res *resourceHandler) {
		r.Path(path).Handler(&handler{
			codec: api.server.codec,
			log:   api.server.log,
			res:   res,
		})
	}

	handle("/", &resourceHandler{
		Representation: hsdsdata.PutDomainRequest{},
		Get:            api.GetDomain,
		Put:            api.PutDomain,
		Delete:         api.DeleteDomain,
	})
	handle("/domains", &resourceHandler{
		Get: api.ListDomains,
	})

	handle("/groups", &resourceHandler{
		Representation: hsdsdata.CreateGroupRequest{},
		Get:            api.lister(hsdsdata.Groups),
		Post:           api.CreateGroup,
	})
	handle("/groups/{id}", &resourceHandler{
		Get:    api.GetGroup,
		Delete: api.deleter(hsdsdata.Groups),
	})
	handle("/groups/{id}/links", &resourceHandler{
		Get: api.ListLinks,
	})
	handle("/groups/{id}/links/{name}", &resourceHandler{
		Representation: hsdsdata.PutLinkRequest{},
		Get:            api.GetLink,
		Put:            api.PutLink,
		Delete:         api.DeleteLink,
	})

	handle("/datasets", &resourceHandler{
		Representation: hsdsdata.CreateDatasetRequest{},
		Get:            api.lister(hsdsdata.Datasets),
		Post:           api.CreateDataset,
	})
	handle("/datasets/{id}", &resourceHandler{
		Get:    api.GetDataset,
		Delete: api.deleter(hsdsdata.Datasets),
	})
	handle("/datasets/{id}/shape", &resourceHandler{
		Representation: hsdsdata.PutShapeRequest{},
		Get:            api.GetShape,
		Put:            api.PutShape,
	})
	handle("/datasets/{id}/type", &resourceHandler{
		Get: api.GetType,
	})
	handle("/datasets/{id}/value", &resourceHandler{
		Get: api.GetValue,
		Put: api.PutValue,
	})

	handle("/datatypes", &resourceHandler{
		Representation: hsdsdata.CreateDatatypeRequest{},
		Get:            api.lister(hsdsdata.Datatypes),
		Post:           api.CreateDatatype,
	})
	handle("/datatypes/{id}", &resourceHandler{
		Get:    api.GetDatatype,
		Delete: api.deleter(hsdsdata.Datatypes),
	})

	handle("/"+collectionPattern+"/{id}/attributes", &resourceHandler{
		Get: api.ListAttributes,
	})
	handle("/"+collectionPattern+"/{id}/attributes/{name}", &resourceHandler{
		Representation: hsdsdata.PutAttributeRequest{},
		Get:            api.GetAttribute,
		Put:            api.PutAttribute,
		Delete:         api.DeleteAttribute,
	})
	handle("/"+collectionPattern+"/{id}/attributes/{name}/value", &resourceHandler{
		Get: api.GetAttributeValue,
	})

	handle("/acls", &resourceHandler{
		Get: api.ListACLs,
	})
	handle("/acls/{user}", &resourceHandler{
		Representation: hsdsdata.ACLUpdate{},
		Get:            api.GetACL,
		Put:            api.PutACL,
	})
	handle("/"+collectionPattern+"/{id}/acls", &resourceHandler{
		Get: api.ListACLs,
	})
	handle("/"+collectionPattern+"/{id}/acls/{user}", &resourceHandler{
		Get: api.GetACL,
	})
}

// self is the hypermedia link back to the requested resource.
func self(ctx *context) []hsdsdata.Href {
	return []hsdsdata.Href{{Href: ctx.Request.URL.RequestURI(), Rel: "self"}}
}

func (api *restAPI) GetDomain(ctx *context) (interface{}, error) {
	result, err := api.store.GetDomain(ctx.Domain)
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) PutDomain(ctx *context, in interface{}) (interface{}, error) {
	result, err := api.store.PutDomain(ctx.Domain, ctx.User, in.(hsdsdata.PutDomainRequest))
	if err != nil {
		return nil, err
	}
	result.Hrefs = self(ctx)
	return responseCreated{Body: result}, nil
}

func (api *restAPI) DeleteDomain(ctx *context) (interface{}, error) {
	if err := api.store.DeleteDomain(ctx.Domain); err != nil {
		return nil, err
	}
	return hsdsdata.DeleteDomainResponse{Domain: ctx.Domain}, nil
}

func (api *restAPI) ListDomains(ctx *context) (interface{}, error) {
	limit, err := ctx.IntParam("limit")
	if err != nil {
		return nil, err
	}
	query := ctx.Request.URL.Query()
	folder := ctx.Domain
	if folder == "" {
		folder = "/"
	}
	domains, err := api.store.ListDomains(DomainQuery{
		Folder:  folder,
		Pattern: query.Get("pattern"),
		Marker:  query.Get("marker"),
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return hsdsdata.DomainList{Domains: domains, Hrefs: self(ctx)}, nil
}

// lister lists the identifiers in a collection.
func (api *restAPI) lister(collection hsdsdata.Collection) func(*context) (interface{}, error) {
	return func(ctx *context) (interface{}, error) {
		ids, err := api.store.ListObjects(ctx.Domain, collection)
		if err != nil {
			return nil, err
		}
		switch collection {
		case hsdsdata.Groups:
			return hsdsdata.GroupList{Groups: ids, Hrefs: self(ctx)}, nil
		case hsdsdata.Datasets:
			return hsdsdata.DatasetList{Datasets: ids, Hrefs: self(ctx)}, nil
		default:
			return hsdsdata.DatatypeList{Datatypes: ids, Hrefs: self(ctx)}, nil
		}
	}
}

// deleter deletes one object in a collection.
func (api *restAPI) deleter(collection hsdsdata.Collection) func(*context) (interface{}, error) {
	return func(ctx *context) (interface{}, error) {
		return nil, api.store.DeleteObject(ctx.Domain, collection, ctx.Vars["id"])
	}
}

func (api *restAPI) CreateGroup(ctx *context, in interface{}) (interface{}, error) {
	result, err := api.store.CreateGroup(ctx.Domain, in.(hsdsdata.CreateGroupRequest))
	if err != nil {
		return nil, err
	}
	return responseCreated{Body: result}, nil
}

func (api *restAPI) GetGroup(ctx *context) (interface{}, error) {
	result, err := api.store.GetGroup(ctx.Domain, ctx.Vars["id"])
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) ListLinks(ctx *context) (interface{}, error) {
	limit, err := ctx.IntParam("Limit")
	if err != nil {
		return nil, err
	}
	marker := ctx.Request.URL.Query().Get("Marker")
	links, err := api.store.ListLinks(ctx.Domain, ctx.Vars["id"], limit, marker)
	if err != nil {
		return nil, err
	}
	return hsdsdata.LinkList{Links: links, Hrefs: self(ctx)}, nil
}

func (api *restAPI) GetLink(ctx *context) (interface{}, error) {
	result, err := api.store.GetLink(ctx.Domain, ctx.Vars["id"], ctx.Vars["name"])
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) PutLink(ctx *context, in interface{}) (interface{}, error) {
	err := api.store.PutLink(ctx.Domain, ctx.Vars["id"], ctx.Vars["name"], in.(hsdsdata.PutLinkRequest))
	if err != nil {
		return nil, err
	}
	return responseCreated{}, nil
}

func (api *restAPI) DeleteLink(ctx *context) (interface{}, error) {
	return nil, api.store.DeleteLink(ctx.Domain, ctx.Vars["id"], ctx.Vars["name"])
}

func (api *restAPI) CreateDataset(ctx *context, in interface{}) (interface{}, error) {
	result, err := api.store.CreateDataset(ctx.Domain, in.(hsdsdata.CreateDatasetRequest))
	if err != nil {
		return nil, err
	}
	return responseCreated{Body: result}, nil
}

func (api *restAPI) GetDataset(ctx *context) (interface{}, error) {
	result, err := api.store.GetDataset(ctx.Domain, ctx.Vars["id"])
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) GetShape(ctx *context) (interface{}, error) {
	dataset, err := api.store.GetDataset(ctx.Domain, ctx.Vars["id"])
	if err != nil {
		return nil, err
	}
	return hsdsdata.ShapeResponse{
		Shape:        dataset.Shape,
		Created:      dataset.Created,
		LastModified: dataset.LastModified,
		Hrefs:        self(ctx),
	}, nil
}

func (api *restAPI) PutShape(ctx *context, in interface{}) (interface{}, error) {
	req := in.(hsdsdata.PutShapeRequest)
	return nil, api.store.ResizeDataset(ctx.Domain, ctx.Vars["id"], req.Shape)
}

func (api *restAPI) GetType(ctx *context) (interface{}, error) {
	dataset, err := api.store.GetDataset(ctx.Domain, ctx.Vars["id"])
	if err != nil {
		return nil, err
	}
	return hsdsdata.TypeResponse{Type: dataset.Type, Hrefs: self(ctx)}, nil
}

func (api *restAPI) GetValue(ctx *context) (interface{}, error) {
	query := ctx.Request.URL.Query()
	if query.Get("query") != "" {
		return nil, errNotImplemented{"Queries are not supported"}
	}
	dtype, value, err := api.store.ReadValues(ctx.Domain, ctx.Vars["id"], query.Get("select"))
	if err != nil {
		return nil, err
	}
	if ctx.Accepts(hsdsdata.OctetStreamMediaType) {
		data, err := encodeBinary(dtype, value)
		if err != nil {
			return nil, err
		}
		return rawBody{ContentType: hsdsdata.OctetStreamMediaType, Data: data}, nil
	}
	return hsdsdata.ValueResponse{Value: value, Hrefs: self(ctx)}, nil
}

// PutValue accepts either a JSON PutValueRequest or, with an
// application/octet-stream body, packed binary values for the
// selection in the "select" parameter.
func (api *restAPI) PutValue(ctx *context, _ interface{}) (interface{}, error) {
	req := ctx.Request
	if req.Header.Get("Content-Type") == hsdsdata.OctetStreamMediaType {
		data, err := ioutil.ReadAll(req.Body)
		if err != nil {
			return nil, errBadRequest{err.Error()}
		}
		selection := req.URL.Query().Get("select")
		return nil, api.store.WriteRawValues(ctx.Domain, ctx.Vars["id"], selection, data)
	}

	var body hsdsdata.PutValueRequest
	if err := api.server.codec.Decode(req.Body, &body); err != nil {
		return nil, errBadRequest{"Invalid request body: " + err.Error()}
	}
	return nil, api.store.WriteValues(ctx.Domain, ctx.Vars["id"], body)
}

func (api *restAPI) CreateDatatype(ctx *context, in interface{}) (interface{}, error) {
	result, err := api.store.CreateDatatype(ctx.Domain, in.(hsdsdata.CreateDatatypeRequest))
	if err != nil {
		return nil, err
	}
	return responseCreated{Body: result}, nil
}

func (api *restAPI) GetDatatype(ctx *context) (interface{}, error) {
	result, err := api.store.GetDatatype(ctx.Domain, ctx.Vars["id"])
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) ListAttributes(ctx *context) (interface{}, error) {
	limit, err := ctx.IntParam("Limit")
	if err != nil {
		return nil, err
	}
	marker := ctx.Request.URL.Query().Get("Marker")
	attrs, err := api.store.ListAttributes(ctx.Domain, ctx.Collection(), ctx.Vars["id"], limit, marker)
	if err != nil {
		return nil, err
	}
	return hsdsdata.AttributeList{Attributes: attrs, Hrefs: self(ctx)}, nil
}

func (api *restAPI) GetAttribute(ctx *context) (interface{}, error) {
	result, err := api.store.GetAttribute(ctx.Domain, ctx.Collection(), ctx.Vars["id"], ctx.Vars["name"])
	result.Hrefs = self(ctx)
	return result, err
}

func (api *restAPI) PutAttribute(ctx *context, in interface{}) (interface{}, error) {
	err := api.store.PutAttribute(ctx.Domain, ctx.Collection(), ctx.Vars["id"], ctx.Vars["name"], in.(hsdsdata.PutAttributeRequest))
	if err != nil {
		return nil, err
	}
	return responseCreated{}, nil
}

func (api *restAPI) DeleteAttribute(ctx *context) (interface{}, error) {
	return nil, api.store.DeleteAttribute(ctx.Domain, ctx.Collection(), ctx.Vars["id"], ctx.Vars["name"])
}

func (api *restAPI) GetAttributeValue(ctx *context) (interface{}, error) {
	attr, err := api.store.GetAttribute(ctx.Domain, ctx.Collection(), ctx.Vars["id"], ctx.Vars["name"])
	if err != nil {
		return nil, err
	}
	return hsdsdata.ValueResponse{Value: attr.Value, Hrefs: self(ctx)}, nil
}

// ListACLs serves both the domain's ACLs and those of an object,
// which are the same.
func (api *restAPI) ListACLs(ctx *context) (interface{}, error) {
	acls, err := api.store.ListACLs(ctx.Domain, ctx.Collection(), ctx.Vars["id"])
	if err != nil {
		return nil, err
	}
	return hsdsdata.ACLList{ACLs: acls, Hrefs: self(ctx)}, nil
}

func (api *restAPI) GetACL(ctx *context) (interface{}, error) {
	acl, err := api.store.GetACL(ctx.Domain, ctx.Collection(), ctx.Vars["id"], ctx.Vars["user"])
	if err != nil {
		return nil, err
	}
	return hsdsdata.ACLResponse{ACL: acl, Hrefs: self(ctx)}, nil
}

func (api *restAPI) PutACL(ctx *context, in interface{}) (interface{}, error) {
	acl, err := api.store.PutACL(ctx.Domain, ctx.Vars["user"], in.(hsdsdata.ACLUpdate))
	if err != nil {
		return nil, err
	}
	return hsdsdata.ACLResponse{ACL: acl, Hrefs: self(ctx)}, nil
}
