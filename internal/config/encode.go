package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output format for the configuration echo.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ValidFormats returns all supported echo formats.
func ValidFormats() []Format {
	return []Format{FormatTOML, FormatYAML, FormatJSON}
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg BadgeConfig, format Format) error {
	switch format {
	case FormatTOML, "":
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown format %q, must be one of: %v", format, ValidFormats())
	}
}
