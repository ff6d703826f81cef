// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsdata"
	"github.com/benbjohnson/clock"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// DefaultTimeout bounds every request when Config.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// Config describes a client.  Only BaseURL is required.  The client
// copies its configuration at creation and never changes it.
type Config struct {
	// BaseURL is the absolute http or https address every request
	// path is resolved against.  A path component is kept, so
	// "http://host/hsds/" sends GET /groups to
	// http://host/hsds/groups.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request, including reading its body.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// OmitAbsentQuery drops query parameters that have no value
	// instead of sending them as "key=".
	OmitAbsentQuery bool `yaml:"omit_absent_query" mapstructure:"omit_absent_query"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Transport, if set, carries requests instead of
	// http.DefaultTransport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`

	// Logger receives request logging.  Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger `yaml:"-" mapstructure:"-"`

	// Registerer, if set, receives the client's request metrics.
	Registerer prometheus.Registerer `yaml:"-" mapstructure:"-"`

	// Clock times requests.  Only test code should need to set
	// this.
	Clock clock.Clock `yaml:"-" mapstructure:"-"`

	// Codec encodes request bodies and decodes responses.
	// Defaults to hsdsdata.NewCodec().
	Codec *hsdsdata.Codec `yaml:"-" mapstructure:"-"`
}

// applyDefaults fills in zero-valued optional fields.
func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Codec == nil {
		c.Codec = hsdsdata.NewCodec()
	}
}

// parseBaseURL validates a base address and normalizes it to end in
// a slash, so that relative paths resolve beneath it.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadBaseURL, raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w %q: scheme must be http or https", ErrBadBaseURL, raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w %q: no host", ErrBadBaseURL, raw)
	}
	if base.Path == "" || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
		base.RawPath = ""
	}
	base.RawQuery = ""
	base.Fragment = ""
	return base, nil
}

// LoadConfig reads a YAML configuration file.  Keys match the yaml
// tags on Config; the timeout is a duration string such as "30s".
func LoadConfig(filename string) (Config, error) {
	var cfg Config
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	var raw map[string]interface{}
	if err = yaml.Unmarshal(bytes, &raw); err != nil {
		return cfg, err
	}
	err = DecodeConfig(raw, &cfg)
	return cfg, err
}

// DecodeConfig populates cfg from a generic map, as produced by a
// YAML or JSON parser.
func DecodeConfig(raw map[string]interface{}, cfg *Config) error {
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
