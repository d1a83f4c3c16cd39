// Package config holds the run settings of a conversion and the
// schema sanitizer applied to the per-animation configuration document.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Config carries the settings of one conversion run. It is built by the
// command line front end and handed to the converter at construction;
// nothing here is process-global.
type Config struct {
	// InputPath is the source asset holding one or more animation
	// clips.
	InputPath string
	// SkeletonPath is the binary skeleton archive (raw or runtime).
	SkeletonPath string
	// ConfigString is the inline JSON configuration document.
	ConfigString string
	// ConfigFile, when set, overrides ConfigString. Files ending in
	// .yaml or .yml are parsed as YAML and converted.
	ConfigFile string
	// Endian selects output endianness: native, little or big.
	Endian string
	// LogLevel is silent, standard or verbose.
	LogLevel string
	// SamplingRate is the import sampling rate in hertz; 0 keeps the
	// source rate.
	SamplingRate float64
}

// Validate rejects invalid option values before any work starts.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("missing input file path")
	}
	if c.SkeletonPath == "" {
		return fmt.Errorf("missing skeleton file path")
	}
	switch c.Endian {
	case "native", "little", "big":
	default:
		return fmt.Errorf("invalid endianness option %q", c.Endian)
	}
	switch c.LogLevel {
	case "silent", "standard", "verbose":
	default:
		return fmt.Errorf("invalid log level option %q", c.LogLevel)
	}
	if c.SamplingRate < 0 {
		return fmt.Errorf("invalid sampling rate %v (must be >= 0)", c.SamplingRate)
	}
	return nil
}

// Document returns the configuration as a JSON document, loading and
// converting the configuration file when one is set.
func (c *Config) Document() (string, error) {
	doc := c.ConfigString
	if c.ConfigFile != "" {
		data, err := os.ReadFile(c.ConfigFile)
		if err != nil {
			return "", fmt.Errorf("reading configuration file: %w", err)
		}
		switch strings.ToLower(filepath.Ext(c.ConfigFile)) {
		case ".yaml", ".yml":
			doc, err = yamlToJSON(data)
			if err != nil {
				return "", fmt.Errorf("configuration file %q: %w", c.ConfigFile, err)
			}
		default:
			doc = string(data)
		}
	}
	if strings.TrimSpace(doc) == "" {
		doc = "{}"
	}
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("malformed JSON configuration")
	}
	return doc, nil
}

func yamlToJSON(data []byte) (string, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return "", err
	}
	if tree == nil {
		return "{}", nil
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Tolerances are the per-channel optimization thresholds.
type Tolerances struct {
	Translation  float64 `json:"translation"`
	Rotation     float64 `json:"rotation"`
	Scale        float64 `json:"scale"`
	Hierarchical float64 `json:"hierarchical"`
}

// Animation is the typed form of one sanitized animation entry.
type Animation struct {
	Output     string     `json:"output"`
	Optimize   bool       `json:"optimize"`
	Tolerances Tolerances `json:"optimization_tolerances"`
	Raw        bool       `json:"raw"`
	Additive   bool       `json:"additive"`
}

// DecodeAnimations extracts the typed animation entries from a
// sanitized document.
func DecodeAnimations(doc string) ([]Animation, error) {
	raw := gjson.Get(doc, "animations").Raw
	var out []Animation
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decoding animation entries: %w", err)
	}
	return out, nil
}
