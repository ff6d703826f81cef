// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"sort"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
)

// nouns names each collection's members in error messages.
var nouns = map[hsdsdata.Collection]string{
	hsdsdata.Groups:    "group",
	hsdsdata.Datasets:  "dataset",
	hsdsdata.Datatypes: "datatype",
}

func (d *domain) newObject(collection hsdsdata.Collection, now float64) *object {
	obj := &object{
		id:           newID(collection),
		collection:   collection,
		created:      now,
		lastModified: now,
		attrs:        make(map[string]*hsdsdata.Attribute),
	}
	if collection == hsdsdata.Groups {
		obj.links = make(map[string]hsdsdata.Link)
	}
	d.objects[obj.id] = obj
	return obj
}

// object finds an object of a specific collection.
func (d *domain) object(collection hsdsdata.Collection, id string) (*object, error) {
	noun, known := nouns[collection]
	if !known {
		return nil, errNotFound{"collection"}
	}
	obj, present := d.objects[id]
	if !present || obj.collection != collection {
		return nil, errNotFound{noun}
	}
	return obj, nil
}

// checkLink verifies that a new object could be linked as req asks.
func (d *domain) checkLink(req *hsdsdata.LinkRequest) (*object, error) {
	if req == nil {
		return nil, nil
	}
	parent, err := d.object(hsdsdata.Groups, req.ID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, errBadRequest{"Link name is required"}
	}
	if _, exists := parent.links[req.Name]; exists {
		return nil, errConflict{"Link already exists"}
	}
	return parent, nil
}

func hardLink(name string, target *object, now float64) hsdsdata.Link {
	return hsdsdata.Link{
		Class:      hsdsdata.HardLink,
		Title:      name,
		Collection: string(target.collection),
		ID:         target.id,
		Created:    now,
	}
}

// create makes a new object and links it into its parent group, if
// one is requested.
func (s *Store) create(domainName string, collection hsdsdata.Collection, link *hsdsdata.LinkRequest, init func(obj *object) error) (obj *object, d *domain, err error) {
	err = s.withDomain(domainName, func(dom *domain) error {
		parent, err := dom.checkLink(link)
		if err != nil {
			return err
		}
		now := s.now()
		candidate := &object{}
		if init != nil {
			if err := init(candidate); err != nil {
				return err
			}
		}
		obj = dom.newObject(collection, now)
		obj.dtype = candidate.dtype
		obj.shape = candidate.shape
		obj.value = candidate.value
		if parent != nil {
			parent.links[link.Name] = hardLink(link.Name, obj, now)
			parent.lastModified = now
		}
		dom.touch(now)
		d = dom
		return nil
	})
	return
}

func (obj *object) group(d *domain) hsdsdata.Group {
	return hsdsdata.Group{
		ID:             obj.id,
		Root:           d.root,
		Domain:         d.name,
		Created:        obj.created,
		LastModified:   obj.lastModified,
		LinkCount:      len(obj.links),
		AttributeCount: len(obj.attrs),
	}
}

func (obj *object) dataset(d *domain) hsdsdata.Dataset {
	return hsdsdata.Dataset{
		ID:             obj.id,
		Root:           d.root,
		Domain:         d.name,
		Type:           obj.dtype,
		Shape:          obj.shape,
		Created:        obj.created,
		LastModified:   obj.lastModified,
		AttributeCount: len(obj.attrs),
	}
}

func (obj *object) datatype(d *domain) hsdsdata.Datatype {
	return hsdsdata.Datatype{
		ID:             obj.id,
		Root:           d.root,
		Domain:         d.name,
		Type:           obj.dtype,
		Created:        obj.created,
		LastModified:   obj.lastModified,
		AttributeCount: len(obj.attrs),
	}
}

// ListObjects returns the identifiers of every object in a
// collection, sorted.
func (s *Store) ListObjects(domainName string, collection hsdsdata.Collection) (ids []string, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		ids = []string{}
		for id, obj := range d.objects {
			if obj.collection == collection {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		return nil
	})
	return
}

// DeleteObject deletes a group, dataset or datatype.  Links pointing
// at it are left dangling, as HSDS does.
func (s *Store) DeleteObject(domainName string, collection hsdsdata.Collection, id string) error {
	return s.withDomain(domainName, func(d *domain) error {
		if _, err := d.object(collection, id); err != nil {
			return err
		}
		if id == d.root {
			return errBadRequest{"Cannot delete the root group"}
		}
		delete(d.objects, id)
		d.touch(s.now())
		return nil
	})
}

// CreateGroup creates a group.
func (s *Store) CreateGroup(domainName string, req hsdsdata.CreateGroupRequest) (result hsdsdata.Group, err error) {
	obj, d, err := s.create(domainName, hsdsdata.Groups, req.Link, nil)
	if err != nil {
		return
	}
	err = s.do(func() error {
		result = obj.group(d)
		return nil
	})
	return
}

// GetGroup describes one group.
func (s *Store) GetGroup(domainName, id string) (result hsdsdata.Group, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Groups, id)
		if err == nil {
			result = obj.group(d)
		}
		return err
	})
	return
}

// ListLinks returns the links in a group, sorted by name, starting
// after marker and returning at most limit (if positive) links.
func (s *Store) ListLinks(domainName, groupID string, limit int, marker string) (result []hsdsdata.Link, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		group, err := d.object(hsdsdata.Groups, groupID)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(group.links))
		for name := range group.links {
			if marker == "" || name > marker {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		if limit > 0 && len(names) > limit {
			names = names[:limit]
		}
		result = make([]hsdsdata.Link, len(names))
		for i, name := range names {
			result[i] = group.links[name]
		}
		return nil
	})
	return
}

// GetLink returns one link.
func (s *Store) GetLink(domainName, groupID, name string) (result hsdsdata.LinkResponse, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		group, err := d.object(hsdsdata.Groups, groupID)
		if err != nil {
			return err
		}
		link, present := group.links[name]
		if !present {
			return errNotFound{"link"}
		}
		result = hsdsdata.LinkResponse{
			Link:         link,
			Created:      link.Created,
			LastModified: link.Created,
		}
		return nil
	})
	return
}

// PutLink creates a hard, soft or external link.
func (s *Store) PutLink(domainName, groupID, name string, req hsdsdata.PutLinkRequest) error {
	return s.withDomain(domainName, func(d *domain) error {
		group, err := d.object(hsdsdata.Groups, groupID)
		if err != nil {
			return err
		}
		if _, exists := group.links[name]; exists {
			return errConflict{"Link already exists"}
		}
		now := s.now()
		var link hsdsdata.Link
		switch {
		case req.ID != "":
			collection, err := hsdsdata.CollectionOf(req.ID)
			if err != nil {
				return errBadRequest{err.Error()}
			}
			target, err := d.object(collection, req.ID)
			if err != nil {
				return err
			}
			link = hardLink(name, target, now)
		case req.H5Path != "" && req.H5Domain != "":
			link = hsdsdata.Link{
				Class:    hsdsdata.ExternalLink,
				Title:    name,
				H5Path:   req.H5Path,
				H5Domain: req.H5Domain,
				Created:  now,
			}
		case req.H5Path != "":
			link = hsdsdata.Link{
				Class:   hsdsdata.SoftLink,
				Title:   name,
				H5Path:  req.H5Path,
				Created: now,
			}
		default:
			return errBadRequest{"Link target is required"}
		}
		group.links[name] = link
		group.lastModified = now
		d.touch(now)
		return nil
	})
}

// DeleteLink removes a link but not its target.
func (s *Store) DeleteLink(domainName, groupID, name string) error {
	return s.withDomain(domainName, func(d *domain) error {
		group, err := d.object(hsdsdata.Groups, groupID)
		if err != nil {
			return err
		}
		if _, present := group.links[name]; !present {
			return errNotFound{"link"}
		}
		delete(group.links, name)
		now := s.now()
		group.lastModified = now
		d.touch(now)
		return nil
	})
}

// CreateDataset creates a dataset filled with zero values.
func (s *Store) CreateDataset(domainName string, req hsdsdata.CreateDatasetRequest) (result hsdsdata.Dataset, err error) {
	obj, d, err := s.create(domainName, hsdsdata.Datasets, req.Link, func(obj *object) error {
		shape, err := newShape(req.Shape, req.MaxDims)
		if err != nil {
			return err
		}
		obj.dtype = req.Type
		obj.shape = shape
		obj.value = fill(shape.Dims, zeroValue(req.Type))
		return nil
	})
	if err != nil {
		return
	}
	err = s.do(func() error {
		result = obj.dataset(d)
		return nil
	})
	return
}

// GetDataset describes one dataset.
func (s *Store) GetDataset(domainName, id string) (result hsdsdata.Dataset, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datasets, id)
		if err == nil {
			result = obj.dataset(d)
		}
		return err
	})
	return
}

// ResizeDataset changes the extent of an extensible dataset.
// Dimensions may only grow, and only up to their maximums.
func (s *Store) ResizeDataset(domainName, id string, dims []uint64) error {
	return s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datasets, id)
		if err != nil {
			return err
		}
		if len(dims) != len(obj.shape.Dims) {
			return errBadRequest{"Shape has the wrong rank"}
		}
		for i, n := range dims {
			if n < obj.shape.Dims[i] {
				return errBadRequest{"Dataset shape cannot shrink"}
			}
			if i >= len(obj.shape.MaxDims) {
				if n != obj.shape.Dims[i] {
					return errConflict{"Dataset is not extensible"}
				}
				continue
			}
			if limit := obj.shape.MaxDims[i]; limit != 0 && n > limit {
				return errConflict{"Shape exceeds maximum dimensions"}
			}
		}
		if err := checkElements(dims); err != nil {
			return err
		}
		obj.value = resize(obj.value, dims, zeroValue(obj.dtype))
		obj.shape.Dims = append([]uint64(nil), dims...)
		now := s.now()
		obj.lastModified = now
		d.touch(now)
		return nil
	})
}

// ReadValues returns a dataset's type and the values in a selection.
func (s *Store) ReadValues(domainName, id, selection string) (dtype hsdsdata.Type, value interface{}, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datasets, id)
		if err != nil {
			return err
		}
		slabs, err := parseSelection(selection, obj.shape.Dims)
		if err != nil {
			return err
		}
		dtype = obj.dtype
		value = readSlabs(obj.value, slabs)
		return nil
	})
	return
}

// WriteValues replaces the values in a selection.
func (s *Store) WriteValues(domainName, id string, req hsdsdata.PutValueRequest) error {
	return s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datasets, id)
		if err != nil {
			return err
		}
		slabs, err := rangeSelection(req.Start, req.Stop, req.Step, obj.shape.Dims)
		if err != nil {
			return err
		}
		return obj.write(d, slabs, req.Value, s.now())
	})
}

// WriteRawValues replaces the values in a selection with values
// decoded from their binary form.
func (s *Store) WriteRawValues(domainName, id, selection string, data []byte) error {
	return s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datasets, id)
		if err != nil {
			return err
		}
		slabs, err := parseSelection(selection, obj.shape.Dims)
		if err != nil {
			return err
		}
		value, err := decodeBinary(obj.dtype, slabCounts(slabs), data)
		if err != nil {
			return err
		}
		return obj.write(d, slabs, value, s.now())
	})
}

func (obj *object) write(d *domain, slabs []slab, value interface{}, now float64) error {
	updated, err := writeSlabs(copyValue(obj.value), slabs, value)
	if err != nil {
		return err
	}
	obj.value = updated
	obj.lastModified = now
	d.touch(now)
	return nil
}

// CreateDatatype commits a datatype.
func (s *Store) CreateDatatype(domainName string, req hsdsdata.CreateDatatypeRequest) (result hsdsdata.Datatype, err error) {
	obj, d, err := s.create(domainName, hsdsdata.Datatypes, req.Link, func(obj *object) error {
		obj.dtype = req.Type
		return nil
	})
	if err != nil {
		return
	}
	err = s.do(func() error {
		result = obj.datatype(d)
		return nil
	})
	return
}

// GetDatatype describes one committed datatype.
func (s *Store) GetDatatype(domainName, id string) (result hsdsdata.Datatype, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(hsdsdata.Datatypes, id)
		if err == nil {
			result = obj.datatype(d)
		}
		return err
	})
	return
}

// ListAttributes returns an object's attributes, sorted by name.
func (s *Store) ListAttributes(domainName string, collection hsdsdata.Collection, id string, limit int, marker string) (result []hsdsdata.Attribute, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(collection, id)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(obj.attrs))
		for name := range obj.attrs {
			if marker == "" || name > marker {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		if limit > 0 && len(names) > limit {
			names = names[:limit]
		}
		result = make([]hsdsdata.Attribute, len(names))
		for i, name := range names {
			attr := *obj.attrs[name]
			attr.Value = nil
			result[i] = attr
		}
		return nil
	})
	return
}

// GetAttribute returns one attribute with its value.
func (s *Store) GetAttribute(domainName string, collection hsdsdata.Collection, id, name string) (result hsdsdata.Attribute, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(collection, id)
		if err != nil {
			return err
		}
		attr, present := obj.attrs[name]
		if !present {
			return errNotFound{"attribute"}
		}
		result = *attr
		return nil
	})
	return
}

// PutAttribute creates an attribute.
func (s *Store) PutAttribute(domainName string, collection hsdsdata.Collection, id, name string, req hsdsdata.PutAttributeRequest) error {
	return s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(collection, id)
		if err != nil {
			return err
		}
		if _, exists := obj.attrs[name]; exists {
			return errConflict{"Attribute already exists"}
		}
		shape, err := newShape(req.Shape, nil)
		if err != nil {
			return err
		}
		now := s.now()
		obj.attrs[name] = &hsdsdata.Attribute{
			Name:         name,
			Type:         req.Type,
			Shape:        shape,
			Value:        req.Value,
			Created:      now,
			LastModified: now,
		}
		obj.lastModified = now
		d.touch(now)
		return nil
	})
}

// DeleteAttribute removes an attribute.
func (s *Store) DeleteAttribute(domainName string, collection hsdsdata.Collection, id, name string) error {
	return s.withDomain(domainName, func(d *domain) error {
		obj, err := d.object(collection, id)
		if err != nil {
			return err
		}
		if _, present := obj.attrs[name]; !present {
			return errNotFound{"attribute"}
		}
		delete(obj.attrs, name)
		now := s.now()
		obj.lastModified = now
		d.touch(now)
		return nil
	})
}

// ListACLs returns every ACL on a domain, sorted by user.  If
// collection is not empty, the named object must also exist; objects
// share their domain's ACLs.
func (s *Store) ListACLs(domainName string, collection hsdsdata.Collection, id string) (result []hsdsdata.ACL, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		if collection != "" {
			if _, err := d.object(collection, id); err != nil {
				return err
			}
		}
		users := make([]string, 0, len(d.acls))
		for user := range d.acls {
			users = append(users, user)
		}
		sort.Strings(users)
		result = make([]hsdsdata.ACL, len(users))
		for i, user := range users {
			result[i] = d.acls[user]
		}
		return nil
	})
	return
}

// GetACL returns one user's ACL, with the same object check as
// ListACLs.
func (s *Store) GetACL(domainName string, collection hsdsdata.Collection, id, user string) (result hsdsdata.ACL, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		if collection != "" {
			if _, err := d.object(collection, id); err != nil {
				return err
			}
		}
		acl, present := d.acls[user]
		if !present {
			return errNotFound{"ACL"}
		}
		result = acl
		return nil
	})
	return
}

// PutACL changes the permissions named in update, creating the ACL
// if the user has none.
func (s *Store) PutACL(domainName, user string, update hsdsdata.ACLUpdate) (result hsdsdata.ACL, err error) {
	err = s.withDomain(domainName, func(d *domain) error {
		acl, present := d.acls[user]
		if !present {
			acl = hsdsdata.ACL{UserName: user}
		}
		update.Apply(&acl)
		d.acls[user] = acl
		d.touch(s.now())
		result = acl
		return nil
	})
	return
}
