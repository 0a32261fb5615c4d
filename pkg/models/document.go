package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind is the value of the top-level type field of a document
type Kind string

const (
	// KindIndustry marks the meta document of an industry
	KindIndustry Kind = "industry"
	// KindProcess marks a process document
	KindProcess Kind = "process"
)

// Document is a decoded YAML file, kept both as a generic tree (for schema
// validation) and as a node for typed decoding
type Document struct {
	Path string
	Raw  map[string]interface{}
	Data []byte
	node yaml.Node
}

// Decode parses YAML content into a document
func Decode(path string, data []byte) (*Document, error) {
	doc := &Document{Path: path, Data: data}

	if err := yaml.Unmarshal(data, &doc.node); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	if doc.node.Kind == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, path)
	}

	if err := doc.node.Decode(&doc.Raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	if doc.Raw == nil {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, path)
	}

	return doc, nil
}

// ReadDocument reads and decodes a YAML file
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from discovery of the sources directory
	if err != nil {
		return nil, err
	}

	return Decode(path, data)
}

// Kind returns the document type
func (d *Document) Kind() (Kind, error) {
	raw, ok := d.Raw["type"]
	if !ok {
		return "", fmt.Errorf("%w: %s should have a type field", ErrUnknownDocumentType, d.Path)
	}

	kind := Kind(fmt.Sprint(raw))
	switch kind {
	case KindIndustry, KindProcess:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %s has type '%s', expected '%s' or '%s'",
			ErrUnknownDocumentType, d.Path, kind, KindIndustry, KindProcess)
	}
}

// ProcessConfig decodes the document as a process and validates its ranges
func (d *Document) ProcessConfig() (*ProcessConfig, error) {
	cfg := &ProcessConfig{}
	if err := d.node.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, d.Path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IndustryConfig decodes the document as an industry and validates its ranges
func (d *Document) IndustryConfig() (*IndustryConfig, error) {
	cfg := &IndustryConfig{}
	if err := d.node.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, d.Path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
