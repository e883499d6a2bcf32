// SPDX-License-Identifier: MIT
//
// File: parse.go
// Role: Decoding of rule documents from YAML and HCL.

package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document. Unknown fields are rejected.
// An empty input yields an empty Document.
func ParseYAML(src []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("ruleset: ParseYAML: %w", err)
	}

	return &doc, nil
}

// ParseHCL decodes an HCL document; filename is only used in diagnostics.
func ParseHCL(filename string, src []byte) (*Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("ruleset: ParseHCL: %w", diags)
	}

	var doc Document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("ruleset: ParseHCL: %w", diags)
	}

	return &doc, nil
}

// Load reads path and decodes it by extension: .yaml, .yml or .hcl.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: Load: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(src)
	case ".hcl":
		return ParseHCL(path, src)
	default:
		return nil, fmt.Errorf("ruleset: Load(%q): %w", path, ErrUnsupportedFormat)
	}
}
