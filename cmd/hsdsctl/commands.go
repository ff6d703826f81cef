// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsclient"
	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/urfave/cli"
)

// needArgs fails unless exactly n positional arguments were given.
func needArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s: expected %d argument(s): %s", c.Command.FullName(), n, c.Command.ArgsUsage)
	}
	return nil
}

// limit returns the value of an optional --limit flag.
func limit(c *cli.Context) *int {
	if !c.IsSet("limit") {
		return nil
	}
	return hsdsclient.Int(c.Int("limit"))
}

var listFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "limit",
		Usage: "return at most this many entries",
	},
	cli.StringFlag{
		Name:  "marker",
		Usage: "start after this entry",
	},
}

func domainCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "domain",
		Usage: "manage the domain named by --domain",
		Subcommands: []cli.Command{
			{
				Name:  "get",
				Usage: "describe the domain",
				Action: func(c *cli.Context) error {
					domain, err := s.client.Domain.Get(s.ctx(), s.scope)
					if err != nil {
						return err
					}
					return s.emit(domain)
				},
			},
			{
				Name:  "put",
				Usage: "create the domain",
				Flags: []cli.Flag{
					cli.BoolFlag{
						Name:  "folder",
						Usage: "create a folder instead of a domain",
					},
					cli.StringFlag{
						Name:  "owner",
						Usage: "owner of the new domain",
					},
				},
				Action: func(c *cli.Context) error {
					var body *hsdsdata.PutDomainRequest
					if c.Bool("folder") || c.String("owner") != "" {
						body = &hsdsdata.PutDomainRequest{
							Folder: c.Bool("folder"),
							Owner:  c.String("owner"),
						}
					}
					domain, err := s.client.Domain.Put(s.ctx(), s.scope, body)
					if err != nil {
						return err
					}
					return s.emit(domain)
				},
			},
			{
				Name:  "delete",
				Usage: "delete the domain and everything in it",
				Action: func(c *cli.Context) error {
					result, err := s.client.Domain.Delete(s.ctx(), s.scope)
					if err != nil {
						return err
					}
					return s.emit(result)
				},
			},
			{
				Name:  "list",
				Usage: "list the domains in the folder named by --domain",
				Flags: append([]cli.Flag{
					cli.StringFlag{
						Name:  "pattern",
						Usage: "only list domains matching this glob",
					},
				}, listFlags...),
				Action: func(c *cli.Context) error {
					list, err := s.client.Domain.List(s.ctx(), s.scope, hsdsclient.ListDomainsOptions{
						Pattern: c.String("pattern"),
						Limit:   limit(c),
						Marker:  c.String("marker"),
					})
					if err != nil {
						return err
					}
					return s.emit(list)
				},
			},
		},
	}
}

func groupCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "group",
		Usage: "manage groups",
		Subcommands: []cli.Command{
			{
				Name:  "list",
				Usage: "list every group in the domain",
				Action: func(c *cli.Context) error {
					list, err := s.client.Group.List(s.ctx(), s.scope)
					if err != nil {
						return err
					}
					return s.emit(list)
				},
			},
			{
				Name:      "get",
				Usage:     "describe a group",
				ArgsUsage: "GROUP-ID",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					group, err := s.client.Group.Get(s.ctx(), s.scope, c.Args().First())
					if err != nil {
						return err
					}
					return s.emit(group)
				},
			},
			{
				Name:      "create",
				Usage:     "create a group, optionally linked from a parent",
				ArgsUsage: "[PARENT-ID NAME]",
				Action: func(c *cli.Context) error {
					var req hsdsdata.CreateGroupRequest
					switch c.NArg() {
					case 0:
					case 2:
						req.Link = &hsdsdata.LinkRequest{ID: c.Args().Get(0), Name: c.Args().Get(1)}
					default:
						return needArgs(c, 2)
					}
					group, err := s.client.Group.Create(s.ctx(), s.scope, req)
					if err != nil {
						return err
					}
					return s.emit(group)
				},
			},
		},
	}
}

func linkCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "link",
		Usage: "manage links between groups and objects",
		Subcommands: []cli.Command{
			{
				Name:      "list",
				Usage:     "list the links in a group",
				ArgsUsage: "GROUP-ID",
				Flags:     listFlags,
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					list, err := s.client.Link.List(s.ctx(), s.scope, c.Args().First(), hsdsclient.ListOptions{
						Limit:  limit(c),
						Marker: c.String("marker"),
					})
					if err != nil {
						return err
					}
					return s.emit(list)
				},
			},
			{
				Name:      "put",
				Usage:     "create a hard, soft or external link",
				ArgsUsage: "GROUP-ID NAME",
				Flags: []cli.Flag{
					cli.StringFlag{Name: "id", Usage: "target object for a hard link"},
					cli.StringFlag{Name: "h5path", Usage: "target path for a soft or external link"},
					cli.StringFlag{Name: "h5domain", Usage: "target domain for an external link"},
				},
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 2); err != nil {
						return err
					}
					return s.client.Link.Put(s.ctx(), s.scope, c.Args().Get(0), c.Args().Get(1), hsdsdata.PutLinkRequest{
						ID:       c.String("id"),
						H5Path:   c.String("h5path"),
						H5Domain: c.String("h5domain"),
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a link",
				ArgsUsage: "GROUP-ID NAME",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 2); err != nil {
						return err
					}
					return s.client.Link.Delete(s.ctx(), s.scope, c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}
}

func datasetCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "dataset",
		Usage: "inspect datasets",
		Subcommands: []cli.Command{
			{
				Name:  "list",
				Usage: "list every dataset in the domain",
				Action: func(c *cli.Context) error {
					list, err := s.client.Dataset.List(s.ctx(), s.scope)
					if err != nil {
						return err
					}
					return s.emit(list)
				},
			},
			{
				Name:      "get",
				Usage:     "describe a dataset",
				ArgsUsage: "DATASET-ID",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					dataset, err := s.client.Dataset.Get(s.ctx(), s.scope, c.Args().First())
					if err != nil {
						return err
					}
					return s.emit(dataset)
				},
			},
			{
				Name:      "values",
				Usage:     "print values from a dataset",
				ArgsUsage: "DATASET-ID",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  "select",
						Usage: "hyperslab selection, such as [0:10,2]",
					},
					cli.BoolFlag{
						Name:  "raw",
						Usage: "write packed binary values instead of JSON",
					},
				},
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					opts := hsdsclient.ValueOptions{Select: c.String("select")}
					if !c.Bool("raw") {
						values, err := s.client.Dataset.GetValues(s.ctx(), s.scope, c.Args().First(), opts)
						if err != nil {
							return err
						}
						return s.emit(values.Value)
					}
					raw, err := s.client.Dataset.GetValuesRaw(s.ctx(), s.scope, c.Args().First(), opts)
					if err != nil {
						return err
					}
					defer raw.Close()
					_, err = io.Copy(s.out, raw)
					return err
				},
			},
		},
	}
}

// permissions maps permission names to their fields in an update.
var permissions = map[string]func(*hsdsdata.ACLUpdate, *bool){
	"create":    func(u *hsdsdata.ACLUpdate, b *bool) { u.Create = b },
	"read":      func(u *hsdsdata.ACLUpdate, b *bool) { u.Read = b },
	"update":    func(u *hsdsdata.ACLUpdate, b *bool) { u.Update = b },
	"delete":    func(u *hsdsdata.ACLUpdate, b *bool) { u.Delete = b },
	"readacl":   func(u *hsdsdata.ACLUpdate, b *bool) { u.ReadACL = b },
	"updateacl": func(u *hsdsdata.ACLUpdate, b *bool) { u.UpdateACL = b },
}

// aclUpdate builds an update that grants and revokes the named
// permissions.
func aclUpdate(grant, revoke []string) (hsdsdata.ACLUpdate, error) {
	var update hsdsdata.ACLUpdate
	for _, change := range []struct {
		names []string
		value bool
	}{{grant, true}, {revoke, false}} {
		for _, name := range change.names {
			set, ok := permissions[strings.ToLower(name)]
			if !ok {
				return update, fmt.Errorf("unknown permission %q", name)
			}
			set(&update, hsdsdata.Bool(change.value))
		}
	}
	return update, nil
}

func aclCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "acl",
		Usage: "manage access control lists",
		Subcommands: []cli.Command{
			{
				Name:  "list",
				Usage: "list every ACL on the domain",
				Action: func(c *cli.Context) error {
					list, err := s.client.ACL.List(s.ctx(), s.scope)
					if err != nil {
						return err
					}
					return s.emit(list)
				},
			},
			{
				Name:      "get",
				Usage:     "show one user's permissions",
				ArgsUsage: "USER",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					acl, err := s.client.ACL.Get(s.ctx(), s.scope, c.Args().First())
					if err != nil {
						return err
					}
					return s.emit(acl)
				},
			},
			{
				Name:      "put",
				Usage:     "change one user's permissions",
				ArgsUsage: "USER",
				Flags: []cli.Flag{
					cli.StringSliceFlag{
						Name:  "grant",
						Usage: "permission to grant (create, read, update, delete, readACL, updateACL)",
					},
					cli.StringSliceFlag{
						Name:  "revoke",
						Usage: "permission to revoke",
					},
				},
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					update, err := aclUpdate(c.StringSlice("grant"), c.StringSlice("revoke"))
					if err != nil {
						return err
					}
					acl, err := s.client.ACL.Put(s.ctx(), s.scope, c.Args().First(), update)
					if err != nil {
						return err
					}
					return s.emit(acl)
				},
			},
		},
	}
}
