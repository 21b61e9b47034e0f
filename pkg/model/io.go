package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a Document to pretty-printed JSON bytes.
func MarshalDocument(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (*Document, error) {
	return readDocumentFrom(bytes.NewReader(data))
}

// WriteDocumentFile writes a Document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// ReadDocumentFile reads a JSON file and returns the decoded Document.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (*Document, error) {
	return readDocumentFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocumentTo(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}
