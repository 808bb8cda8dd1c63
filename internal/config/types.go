// Package config loads and validates the application's YAML configuration:
// the generation backend chain, page geometry, default theme, storage and
// server settings.
package config

import (
	"github.com/avelinec/deckwright/internal/compile"
	"github.com/avelinec/deckwright/internal/genai"
)

// Config is the root configuration document.
type Config struct {
	Backends []genai.Descriptor `yaml:"backends" validate:"required,min=1,dive"`
	Theme    string             `yaml:"theme" validate:"omitempty,theme_key"`
	Page     Page               `yaml:"page"`
	Store    Store              `yaml:"store"`
	Server   Server             `yaml:"server"`
	LogLevel string             `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

// Page overrides the compiler's layout geometry. Zero values fall back to the
// standard page.
type Page struct {
	Width  float64 `yaml:"width" validate:"omitempty,gt=0"`
	Height float64 `yaml:"height" validate:"omitempty,gt=0"`
	Margin float64 `yaml:"margin" validate:"omitempty,gt=0"`
}

// Store locates the deck database.
type Store struct {
	Path string `yaml:"path"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// Geometry converts the page settings into compiler geometry; unset fields
// keep the compiler defaults.
func (p Page) Geometry() compile.Geometry {
	geo := compile.DefaultGeometry
	if p.Width > 0 {
		geo.Width = p.Width
	}
	if p.Height > 0 {
		geo.Height = p.Height
	}
	if p.Margin > 0 {
		geo.Margin = p.Margin
	}
	return geo
}
