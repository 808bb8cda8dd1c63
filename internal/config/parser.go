package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/avelinec/deckwright/internal/genai"
	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file from disk, validates it, and returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, deckerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, deckerrors.NewParseError(path, extractLine(err), err)
	}

	cfg.applyDefaults()

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is supplied: a single
// primary backend, the standard page, an in-home database and localhost
// serving.
func Default() *Config {
	cfg := &Config{
		Backends: defaultBackends(),
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Backends) == 0 {
		c.Backends = defaultBackends()
	}
	if c.Theme == "" {
		c.Theme = "Simple"
	}
	if c.Store.Path == "" {
		c.Store.Path = "deckwright.db"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// defaultBackends names the models to ask for but deliberately leaves Command
// empty: there is no portable default for how to reach a model. Generation
// against these descriptors fails with a per-backend report until the user
// configures a command for at least one backend.
func defaultBackends() []genai.Descriptor {
	return []genai.Descriptor{
		{ID: "primary", Model: "claude-opus-4-1-20250805"},
		{ID: "fallback", Model: "claude-3-5-sonnet-20240620"},
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
