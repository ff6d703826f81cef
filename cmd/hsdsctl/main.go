// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package hsdsctl provides a command-line client for HSDS.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsclient"
	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// session is the state shared by every command.
type session struct {
	client *hsdsclient.Client
	scope  hsdsclient.Scope
	codec  *hsdsdata.Codec
	out    io.Writer
}

// emit writes one response to the output as JSON.
func (s *session) emit(v interface{}) error {
	if err := s.codec.Encode(s.out, v); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.out)
	return err
}

func (s *session) ctx() context.Context {
	return context.Background()
}

// connect builds the client from the global flags.
func (s *session) connect(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	var cfg hsdsclient.Config
	if filename := c.String("config"); filename != "" {
		cfg, err = hsdsclient.LoadConfig(filename)
		if err != nil {
			return err
		}
	}
	if c.IsSet("endpoint") || cfg.BaseURL == "" {
		cfg.BaseURL = c.String("endpoint")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if user := c.String("user"); user != "" {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		credentials := user + ":" + c.String("password")
		cfg.Headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
	}

	s.client, err = hsdsclient.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	s.scope = hsdsclient.Scope{
		Domain: c.String("domain"),
		Bucket: c.String("bucket"),
	}
	return nil
}

func newApp(out io.Writer) *cli.App {
	s := &session{codec: hsdsdata.NewCodec(), out: out}

	app := cli.NewApp()
	app.Name = "hsdsctl"
	app.Usage = "inspect and change data in an HSDS service"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "endpoint",
			Value:  "http://localhost:5101",
			Usage:  "base URL of the HSDS service",
			EnvVar: "HS_ENDPOINT",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: hsdsclient.DefaultTimeout,
			Usage: "give up on a request after this long",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "client configuration YAML file",
		},
		cli.StringFlag{
			Name:  "domain",
			Usage: "domain path, such as /home/user/file.h5",
		},
		cli.StringFlag{
			Name:  "bucket",
			Usage: "storage bucket holding the domain",
		},
		cli.StringFlag{
			Name:   "user",
			Usage:  "user name for basic authentication",
			EnvVar: "HS_USERNAME",
		},
		cli.StringFlag{
			Name:   "password",
			Usage:  "password for basic authentication",
			EnvVar: "HS_PASSWORD",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "warning",
			Usage: "minimum level of log messages",
		},
	}
	app.Commands = []cli.Command{
		domainCommand(s),
		groupCommand(s),
		linkCommand(s),
		datasetCommand(s),
		aclCommand(s),
	}
	app.Before = s.connect
	app.After = func(c *cli.Context) error {
		if s.client == nil {
			return nil
		}
		return s.client.Close()
	}
	return app
}

func main() {
	app := newApp(os.Stdout)
	app.RunAndExitOnError()
}
