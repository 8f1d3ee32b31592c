package router

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk form of a route table (routes.yaml or routes.json).
type Manifest struct {
	Routes []RouteDefinition `yaml:"routes" json:"routes"`
}

// ParseManifest decodes a YAML manifest. Definitions keep file order.
func ParseManifest(data []byte) ([]RouteDefinition, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse route manifest: %w", err)
	}
	return m.Routes, nil
}

// LoadManifest reads a route manifest from path. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadManifest(path string) ([]RouteDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route manifest: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse route manifest: %w", err)
		}
		return m.Routes, nil
	}
	return ParseManifest(data)
}

// MarshalManifest encodes defs as a YAML manifest.
func MarshalManifest(defs []RouteDefinition) ([]byte, error) {
	return yaml.Marshal(Manifest{Routes: defs})
}
