// Copyright 2024-2026 Aiku AI

package connector

import (
	_ "embed"
	"fmt"
	"text/template"

	up "go.mau.fi/util/configupgrade"
	"gopkg.in/yaml.v3"
	"maunium.net/go/mautrix/id"
)

//go:embed example-config.yaml
var ExampleConfig string

// Config holds the IRC relay configuration.
type Config struct {
	// MediaURL is the public homeserver URL used to build download links
	// for uploads.
	MediaURL            string `yaml:"media_url"`
	DisplaynameTemplate string `yaml:"displayname_template"`
	// LineLimit is the maximum IRC line length in bytes, prefix included.
	LineLimit int `yaml:"line_limit"`
	MaxLines  int `yaml:"max_lines"`

	displaynameTemplate *template.Template `yaml:"-"`
}

// DisplaynameParams holds the parameters for rendering the line prefix.
type DisplaynameParams struct {
	DisplayName string
	UserID      id.UserID
	Localpart   string
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig Config
	return node.Decode((*rawConfig)(c))
}

func (c *Config) PostProcess() error {
	if c.LineLimit < 0 {
		return fmt.Errorf("line_limit must not be negative, got %d", c.LineLimit)
	}
	if c.MaxLines < 0 {
		return fmt.Errorf("max_lines must not be negative, got %d", c.MaxLines)
	}
	var err error
	c.displaynameTemplate, err = template.New("displayname").Parse(c.DisplaynameTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse displayname_template: %w", err)
	}
	return nil
}

func upgradeConfig(helper up.Helper) {
	helper.Copy(up.Str, "media_url")
	helper.Copy(up.Str, "displayname_template")
	helper.Copy(up.Int, "line_limit")
	helper.Copy(up.Int, "max_lines")
}

// Upgrader returns the config upgrader that merges user configs onto the
// embedded example config.
func Upgrader() up.Upgrader {
	return &up.StructUpgrader{
		SimpleUpgrader: up.SimpleUpgrader(upgradeConfig),
		Blocks:         nil,
		Base:           ExampleConfig,
	}
}

// FormatDisplayname renders the line prefix for a sender. Without a parsed
// template the prefix is "[name] ".
func (c *Config) FormatDisplayname(params DisplaynameParams) string {
	if c.displaynameTemplate == nil {
		if params.DisplayName == "" {
			return ""
		}
		return "[" + params.DisplayName + "] "
	}
	var buf []byte
	err := c.displaynameTemplate.Execute(
		(*templateBuffer)(&buf),
		params,
	)
	if err != nil {
		return "[" + params.DisplayName + "] "
	}
	return string(buf)
}

// templateBuffer is a simple io.Writer that appends to a byte slice.
type templateBuffer []byte

func (b *templateBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
