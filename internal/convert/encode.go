// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prefy/pkg/types"
)

// Encoder serializes a template. JSON and YAML implement this interface.
type Encoder interface {
	// Encode writes t to w.
	Encode(w io.Writer, t types.Template) error
}

// JSONEncoder writes two-space indented JSON. Non-ASCII characters and
// HTML-sensitive characters are written literally.
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, t types.Template) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAMLEncoder writes YAML with two-space indentation.
type YAMLEncoder struct{}

func (YAMLEncoder) Encode(w io.Writer, t types.Template) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// EncoderFor returns the encoder for format. An empty format means JSON.
func EncoderFor(format types.OutputFormat) (Encoder, error) {
	switch format {
	case types.FormatJSON, "":
		return JSONEncoder{}, nil
	case types.FormatYAML:
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
