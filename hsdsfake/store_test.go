// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"strings"
	"testing"
	"time"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *clock.Mock, string) {
	clk := clock.NewMock()
	clk.Add(1000 * time.Second)
	store := NewStore(clk)
	domain, err := store.PutDomain("/home/test/a.h5", "test", hsdsdata.PutDomainRequest{})
	require.NoError(t, err)
	return store, clk, domain.Root
}

func TestPutDomain(t *testing.T) {
	store, _, root := newTestStore(t)
	assert.True(t, strings.HasPrefix(root, "g-"))

	domain, err := store.GetDomain("/home/test/a.h5")
	if assert.NoError(t, err) {
		assert.Equal(t, "test", domain.Owner)
		assert.Equal(t, "domain", domain.Class)
		assert.Equal(t, float64(1000), domain.Created)
	}

	_, err = store.PutDomain("/home/test/a.h5", "test", hsdsdata.PutDomainRequest{})
	assert.IsType(t, errConflict{}, err)

	_, err = store.GetDomain("/home/test/missing.h5")
	assert.Equal(t, errNotFound{"domain"}, err)
	assert.EqualError(t, err, "No such domain")

	_, err = store.GetDomain("")
	assert.IsType(t, errBadRequest{}, err)
}

func TestListDomains(t *testing.T) {
	store := NewStore(clock.NewMock())
	for _, name := range []string{"/home/test/c.h5", "/home/test/a.h5", "/home/test/b.txt", "/home/other/d.h5"} {
		_, err := store.PutDomain(name, "test", hsdsdata.PutDomainRequest{})
		require.NoError(t, err)
	}
	names := func(q DomainQuery) []string {
		domains, err := store.ListDomains(q)
		require.NoError(t, err)
		result := make([]string, len(domains))
		for i, d := range domains {
			result[i] = d.Name
		}
		return result
	}

	assert.Equal(t, []string{"/home/test/a.h5", "/home/test/b.txt", "/home/test/c.h5"},
		names(DomainQuery{Folder: "/home/test/"}))
	assert.Equal(t, []string{"/home/test/a.h5", "/home/test/c.h5"},
		names(DomainQuery{Folder: "/home/test", Pattern: "*.h5"}))
	assert.Equal(t, []string{"/home/test/b.txt"},
		names(DomainQuery{Folder: "/home/test", Marker: "/home/test/a.h5", Limit: 1}))
}

func TestFolderHasNoRoot(t *testing.T) {
	store := NewStore(nil)
	folder, err := store.PutDomain("/home/test", "test", hsdsdata.PutDomainRequest{Folder: true})
	if assert.NoError(t, err) {
		assert.Equal(t, "folder", folder.Class)
		assert.Empty(t, folder.Root)
	}
}

func TestLinks(t *testing.T) {
	store, _, root := newTestStore(t)
	const domain = "/home/test/a.h5"

	child, err := store.CreateGroup(domain, hsdsdata.CreateGroupRequest{
		Link: &hsdsdata.LinkRequest{ID: root, Name: "child"},
	})
	require.NoError(t, err)

	_, err = store.CreateGroup(domain, hsdsdata.CreateGroupRequest{
		Link: &hsdsdata.LinkRequest{ID: root, Name: "child"},
	})
	assert.IsType(t, errConflict{}, err)

	err = store.PutLink(domain, root, "soft", hsdsdata.PutLinkRequest{H5Path: "/child"})
	require.NoError(t, err)
	err = store.PutLink(domain, root, "ext", hsdsdata.PutLinkRequest{H5Path: "/x", H5Domain: "/home/test/b.h5"})
	require.NoError(t, err)

	links, err := store.ListLinks(domain, root, 0, "")
	if assert.NoError(t, err) && assert.Len(t, links, 3) {
		assert.Equal(t, "child", links[0].Title)
		assert.Equal(t, hsdsdata.HardLink, links[0].Class)
		assert.Equal(t, child.ID, links[0].ID)
		assert.Equal(t, "ext", links[1].Title)
		assert.Equal(t, hsdsdata.ExternalLink, links[1].Class)
		assert.Equal(t, "soft", links[2].Title)
		assert.Equal(t, hsdsdata.SoftLink, links[2].Class)
	}

	links, err = store.ListLinks(domain, root, 1, "child")
	if assert.NoError(t, err) && assert.Len(t, links, 1) {
		assert.Equal(t, "ext", links[0].Title)
	}

	assert.NoError(t, store.DeleteLink(domain, root, "child"))
	assert.Equal(t, errNotFound{"link"}, store.DeleteLink(domain, root, "child"))

	// The target of a deleted link survives
	_, err = store.GetGroup(domain, child.ID)
	assert.NoError(t, err)
}

func TestDeleteRootGroup(t *testing.T) {
	store, _, root := newTestStore(t)
	err := store.DeleteObject("/home/test/a.h5", hsdsdata.Groups, root)
	assert.IsType(t, errBadRequest{}, err)
}

func TestWrongCollection(t *testing.T) {
	store, _, root := newTestStore(t)
	_, err := store.GetDataset("/home/test/a.h5", root)
	assert.Equal(t, errNotFound{"dataset"}, err)
}

func TestDatasetValues(t *testing.T) {
	store, _, _ := newTestStore(t)
	const domain = "/home/test/a.h5"

	dataset, err := store.CreateDataset(domain, hsdsdata.CreateDatasetRequest{
		Type:    hsdsdata.Type{Class: hsdsdata.IntegerType, Base: "H5T_STD_I32LE"},
		Shape:   []uint64{2, 3},
		MaxDims: []uint64{0, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, hsdsdata.SimpleShape, dataset.Shape.Class)

	_, value, err := store.ReadValues(domain, dataset.ID, "")
	if assert.NoError(t, err) {
		assert.Equal(t, []interface{}{
			[]interface{}{int64(0), int64(0), int64(0)},
			[]interface{}{int64(0), int64(0), int64(0)},
		}, value)
	}

	err = store.WriteValues(domain, dataset.ID, hsdsdata.PutValueRequest{
		Value: []interface{}{[]interface{}{1, 2, 3}},
		Start: []uint64{1, 0},
		Stop:  []uint64{2, 3},
	})
	require.NoError(t, err)

	_, value, err = store.ReadValues(domain, dataset.ID, "[1,0:3:2]")
	if assert.NoError(t, err) {
		assert.Equal(t, []interface{}{[]interface{}{1, 3}}, value)
	}

	// Grow the unlimited dimension; the fixed one cannot change
	assert.NoError(t, store.ResizeDataset(domain, dataset.ID, []uint64{4, 3}))
	assert.IsType(t, errConflict{}, store.ResizeDataset(domain, dataset.ID, []uint64{4, 4}))
	assert.IsType(t, errBadRequest{}, store.ResizeDataset(domain, dataset.ID, []uint64{3, 3}))

	_, value, err = store.ReadValues(domain, dataset.ID, "[3:4,:]")
	if assert.NoError(t, err) {
		assert.Equal(t, []interface{}{[]interface{}{int64(0), int64(0), int64(0)}}, value)
	}

	_, _, err = store.ReadValues(domain, dataset.ID, "[0:9,:]")
	assert.IsType(t, errBadRequest{}, err)
}

func TestFailedWriteChangesNothing(t *testing.T) {
	store, clk, _ := newTestStore(t)
	const domain = "/home/test/a.h5"

	dataset, err := store.CreateDataset(domain, hsdsdata.CreateDatasetRequest{
		Type:  hsdsdata.Type{Class: hsdsdata.IntegerType, Base: "H5T_STD_I32LE"},
		Shape: []uint64{2, 2},
	})
	require.NoError(t, err)
	before, err := store.GetDataset(domain, dataset.ID)
	require.NoError(t, err)
	clk.Add(time.Second)

	// The second row is short, after the first would have been stored
	err = store.WriteValues(domain, dataset.ID, hsdsdata.PutValueRequest{
		Value: []interface{}{[]interface{}{7, 8}, []interface{}{9}},
	})
	assert.IsType(t, errBadRequest{}, err)

	_, value, err := store.ReadValues(domain, dataset.ID, "")
	if assert.NoError(t, err) {
		assert.Equal(t, []interface{}{
			[]interface{}{int64(0), int64(0)},
			[]interface{}{int64(0), int64(0)},
		}, value)
	}
	after, err := store.GetDataset(domain, dataset.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, before.LastModified, after.LastModified)
	}
}

func TestDatasetTooLarge(t *testing.T) {
	store, _, _ := newTestStore(t)
	const domain = "/home/test/a.h5"
	dtype := hsdsdata.Type{Class: hsdsdata.IntegerType, Base: "H5T_STD_U8LE"}

	_, err := store.CreateDataset(domain, hsdsdata.CreateDatasetRequest{
		Type:  dtype,
		Shape: []uint64{1 << 34},
	})
	assert.IsType(t, errBadRequest{}, err)

	dataset, err := store.CreateDataset(domain, hsdsdata.CreateDatasetRequest{
		Type:    dtype,
		Shape:   []uint64{4},
		MaxDims: []uint64{0},
	})
	require.NoError(t, err)
	err = store.ResizeDataset(domain, dataset.ID, []uint64{1 << 34})
	assert.IsType(t, errBadRequest{}, err)

	got, err := store.GetDataset(domain, dataset.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, []uint64{4}, got.Shape.Dims)
	}
}

func TestAttributes(t *testing.T) {
	store, clk, root := newTestStore(t)
	const domain = "/home/test/a.h5"

	clk.Add(5 * time.Second)
	err := store.PutAttribute(domain, hsdsdata.Groups, root, "units", hsdsdata.PutAttributeRequest{
		Type:  hsdsdata.Type{Class: hsdsdata.StringType, Length: "H5T_VARIABLE"},
		Value: "meters",
	})
	require.NoError(t, err)

	err = store.PutAttribute(domain, hsdsdata.Groups, root, "units", hsdsdata.PutAttributeRequest{})
	assert.IsType(t, errConflict{}, err)

	attr, err := store.GetAttribute(domain, hsdsdata.Groups, root, "units")
	if assert.NoError(t, err) {
		assert.Equal(t, "meters", attr.Value)
		assert.Equal(t, hsdsdata.ScalarShape, attr.Shape.Class)
		assert.Equal(t, float64(1005), attr.Created)
	}

	attrs, err := store.ListAttributes(domain, hsdsdata.Groups, root, 0, "")
	if assert.NoError(t, err) && assert.Len(t, attrs, 1) {
		assert.Nil(t, attrs[0].Value)
	}

	group, err := store.GetGroup(domain, root)
	if assert.NoError(t, err) {
		assert.Equal(t, 1, group.AttributeCount)
		assert.Equal(t, float64(1005), group.LastModified)
	}

	assert.NoError(t, store.DeleteAttribute(domain, hsdsdata.Groups, root, "units"))
	_, err = store.GetAttribute(domain, hsdsdata.Groups, root, "units")
	assert.Equal(t, errNotFound{"attribute"}, err)
}

func TestACLs(t *testing.T) {
	store, _, root := newTestStore(t)
	const domain = "/home/test/a.h5"

	acl, err := store.GetACL(domain, "", "", "test")
	if assert.NoError(t, err) {
		assert.True(t, acl.UpdateACL)
	}

	acl, err = store.PutACL(domain, "reader", hsdsdata.ACLUpdate{Read: hsdsdata.Bool(true)})
	if assert.NoError(t, err) {
		assert.Equal(t, hsdsdata.ACL{UserName: "reader", Read: true}, acl)
	}

	acls, err := store.ListACLs(domain, hsdsdata.Groups, root)
	if assert.NoError(t, err) {
		users := make([]string, len(acls))
		for i, a := range acls {
			users[i] = a.UserName
		}
		assert.Equal(t, []string{"default", "reader", "test"}, users)
	}

	_, err = store.ListACLs(domain, hsdsdata.Datasets, root)
	assert.Equal(t, errNotFound{"dataset"}, err)

	_, err = store.GetACL(domain, "", "", "nobody")
	assert.Equal(t, errNotFound{"ACL"}, err)
}

func TestCounts(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.CreateDatatype("/home/test/a.h5", hsdsdata.CreateDatatypeRequest{
		Type: hsdsdata.Type{Class: hsdsdata.FloatType, Base: "H5T_IEEE_F64LE"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"domains":   1,
		"groups":    1,
		"datasets":  0,
		"datatypes": 1,
	}, store.Counts())
}
