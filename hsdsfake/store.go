// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/benbjohnson/clock"
	uuid "github.com/satori/go.uuid"
)

// DefaultUser owns domains created by requests that carry no
// credentials.
const DefaultUser = "admin"

// Store holds every domain in memory.  All access goes through a
// single lock; this favors correctness over throughput.
type Store struct {
	clock   clock.Clock
	lock    sync.Mutex
	domains map[string]*domain
}

// NewStore creates an empty store.  A nil clock uses wall time.
func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.New()
	}
	return &Store{
		clock:   clk,
		domains: make(map[string]*domain),
	}
}

// domain is a domain or folder and everything in it.
type domain struct {
	name         string
	owner        string
	folder       bool
	root         string
	created      float64
	lastModified float64
	objects      map[string]*object
	acls         map[string]hsdsdata.ACL
}

// object is a group, dataset or committed datatype.
type object struct {
	id           string
	collection   hsdsdata.Collection
	created      float64
	lastModified float64

	// links is only used by groups.
	links map[string]hsdsdata.Link

	// dtype is used by datasets and datatypes; shape and value
	// only by datasets.
	dtype hsdsdata.Type
	shape hsdsdata.Shape
	value interface{}

	attrs map[string]*hsdsdata.Attribute
}

// now returns the current time as HSDS timestamps it.
func (s *Store) now() float64 {
	return timestamp(s.clock.Now())
}

func timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// newID creates an object identifier with the prefix HSDS uses for
// the collection.
func newID(collection hsdsdata.Collection) string {
	return collection.Prefix() + uuid.NewV4().String()
}

// do runs f under the store lock.
func (s *Store) do(f func() error) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return f()
}

// withDomain runs f on the named domain under the store lock.
func (s *Store) withDomain(name string, f func(d *domain) error) error {
	return s.do(func() error {
		if name == "" {
			return errBadRequest{"No domain given"}
		}
		d, present := s.domains[name]
		if !present {
			return errNotFound{"domain"}
		}
		return f(d)
	})
}

func (d *domain) describe() hsdsdata.Domain {
	class := "domain"
	if d.folder {
		class = "folder"
	}
	return hsdsdata.Domain{
		Root:         d.root,
		Owner:        d.owner,
		Class:        class,
		Created:      d.created,
		LastModified: d.lastModified,
	}
}

func (d *domain) summarize() hsdsdata.DomainSummary {
	desc := d.describe()
	return hsdsdata.DomainSummary{
		Name:         d.name,
		Owner:        desc.Owner,
		Class:        desc.Class,
		Root:         desc.Root,
		Created:      desc.Created,
		LastModified: desc.LastModified,
	}
}

// GetDomain describes one domain.
func (s *Store) GetDomain(name string) (result hsdsdata.Domain, err error) {
	err = s.withDomain(name, func(d *domain) error {
		result = d.describe()
		return nil
	})
	return
}

// PutDomain creates a domain owned by user.  Unless req asks for a
// folder, the domain gets a new root group.
func (s *Store) PutDomain(name, user string, req hsdsdata.PutDomainRequest) (result hsdsdata.Domain, err error) {
	err = s.do(func() error {
		if name == "" || !strings.HasPrefix(name, "/") {
			return errBadRequest{"Invalid domain name"}
		}
		if _, exists := s.domains[name]; exists {
			return errConflict{"Domain already exists"}
		}
		owner := user
		if req.Owner != "" {
			owner = req.Owner
		}
		now := s.now()
		d := &domain{
			name:         name,
			owner:        owner,
			folder:       req.Folder,
			created:      now,
			lastModified: now,
			objects:      make(map[string]*object),
			acls: map[string]hsdsdata.ACL{
				owner: {
					UserName:  owner,
					Create:    true,
					Read:      true,
					Update:    true,
					Delete:    true,
					ReadACL:   true,
					UpdateACL: true,
				},
				"default": {UserName: "default", Read: true},
			},
		}
		if !req.Folder {
			root := d.newObject(hsdsdata.Groups, now)
			d.root = root.id
		}
		s.domains[name] = d
		result = d.describe()
		return nil
	})
	return
}

// DeleteDomain removes a domain and everything in it.
func (s *Store) DeleteDomain(name string) error {
	return s.withDomain(name, func(d *domain) error {
		delete(s.domains, name)
		return nil
	})
}

// DomainQuery selects domains in one folder.
type DomainQuery struct {
	// Folder names the containing folder.
	Folder string

	// Pattern, if set, is a glob matched against each domain's
	// last path component.
	Pattern string

	// Marker, if set, skips domains up to and including it.
	Marker string

	// Limit, if positive, caps the number of results.
	Limit int
}

// ListDomains returns the domains directly inside a folder, in name
// order.
func (s *Store) ListDomains(q DomainQuery) (result []hsdsdata.DomainSummary, err error) {
	err = s.do(func() error {
		folder := "/" + strings.Trim(q.Folder, "/")
		names := make([]string, 0, len(s.domains))
		for name := range s.domains {
			if path.Dir(name) != folder || name == folder {
				continue
			}
			if q.Pattern != "" {
				matched, err := path.Match(q.Pattern, path.Base(name))
				if err != nil {
					return errBadRequest{"Invalid pattern"}
				}
				if !matched {
					continue
				}
			}
			if q.Marker != "" && name <= q.Marker {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)
		if q.Limit > 0 && len(names) > q.Limit {
			names = names[:q.Limit]
		}
		result = make([]hsdsdata.DomainSummary, len(names))
		for i, name := range names {
			result[i] = s.domains[name].summarize()
		}
		return nil
	})
	return
}

// Counts returns the number of domains and of objects in each
// collection.
func (s *Store) Counts() map[string]int {
	counts := map[string]int{"domains": 0}
	for _, c := range []hsdsdata.Collection{hsdsdata.Groups, hsdsdata.Datasets, hsdsdata.Datatypes} {
		counts[string(c)] = 0
	}
	_ = s.do(func() error {
		for _, d := range s.domains {
			counts["domains"]++
			for _, obj := range d.objects {
				counts[string(obj.collection)]++
			}
		}
		return nil
	})
	return counts
}

// touch marks the domain modified.
func (d *domain) touch(now float64) {
	d.lastModified = now
}
