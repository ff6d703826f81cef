// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package hsdsfaked runs the in-memory HSDS stand-in as a standalone
// HTTP server, for exercising HSDS clients without a real service.
package main

import (
	"flag"
	"io/ioutil"
	"time"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/Apollo3zehn/hsds-api-sub001/hsdsfake"
	"github.com/benbjohnson/clock"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// daemonConfig is the optional YAML configuration file.
type daemonConfig struct {
	// Owner owns the seeded domains.
	Owner string `mapstructure:"owner"`

	// Domains are created at startup.  A name ending in "/" is
	// created as a folder.
	Domains []string `mapstructure:"domains"`

	// MetricsInterval is how often object counts are refreshed.
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
}

func main() {
	var err error

	httpBind := flag.String("http", ":5101",
		"[ip]:port for HTTP REST interface")
	config := flag.String("config", "", "configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	cfg := daemonConfig{
		Owner:           hsdsfake.DefaultUser,
		MetricsInterval: 15 * time.Second,
	}
	if *config != "" {
		var raw map[string]interface{}
		raw, err = loadConfigYaml(*config)
		if err == nil {
			err = decodeConfig(raw, &cfg)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}
	}

	var reqLogger *logrus.Logger
	if *logRequests {
		stdlog := logrus.StandardLogger()
		reqLogger = &logrus.Logger{
			Out:       stdlog.Out,
			Formatter: stdlog.Formatter,
			Hooks:     stdlog.Hooks,
			Level:     logrus.DebugLevel,
		}
	}

	clk := clock.New()
	server := newServer(clk, reqLogger)
	if err = seed(server.Store(), cfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not create configured domains")
		return
	}

	if cfg.MetricsInterval > 0 {
		go observe(server.Store(), clk, cfg.MetricsInterval)
	}
	logrus.WithField("http", *httpBind).Info("Serving HSDS API")
	ServeHTTP(server, *httpBind)
}

// newServer creates the fake server.  Request logging goes to
// reqLogger if it is set, and to the standard logger otherwise.
func newServer(clk clock.Clock, reqLogger *logrus.Logger) *hsdsfake.Server {
	opts := hsdsfake.Options{Clock: clk}
	if reqLogger != nil {
		opts.Logger = reqLogger
	}
	return hsdsfake.New(opts)
}

func loadConfigYaml(filename string) (map[string]interface{}, error) {
	var result map[string]interface{}
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

func decodeConfig(raw map[string]interface{}, cfg *daemonConfig) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// seed creates every configured domain.
func seed(store *hsdsfake.Store, cfg daemonConfig) error {
	for _, name := range cfg.Domains {
		req := hsdsdata.PutDomainRequest{}
		if len(name) > 1 && name[len(name)-1] == '/' {
			name = name[:len(name)-1]
			req.Folder = true
		}
		if _, err := store.PutDomain(name, cfg.Owner, req); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"domain": name,
			"folder": req.Folder,
		}).Debug("Created domain")
	}
	return nil
}
