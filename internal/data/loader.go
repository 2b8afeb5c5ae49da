package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML catalog document without validating it.
func Decode(raw []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing catalog: %w", err)
	}
	return doc, nil
}

// Parse decodes a YAML catalog document and builds the catalog.
func Parse(raw []byte) (*Catalog, error) {
	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// LoadFile reads and builds the YAML catalog at path.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
