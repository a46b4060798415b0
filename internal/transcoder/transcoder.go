// Package transcoder maps model values to and from the supported
// exchange formats:
//
//   - json: self-describing hierarchical format (the decode source)
//   - yaml: human-oriented hierarchical format
//   - toml: flat table-of-tables format
//
// Every call is a pure, single-pass conversion. The schema walker turns Go
// values into an ordered wire tree (declaration order) and raw parsed trees
// back into Go values; each format backend only renders or parses text.
package transcoder

import (
	"fmt"
	"strings"

	"github.com/eyexzy/serde-practice/internal/codec"
	"github.com/eyexzy/serde-practice/internal/logger"
	"github.com/eyexzy/serde-practice/internal/schema"
)

// Format names an exchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format in their canonical order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// backend renders an ordered wire tree and parses text into a raw tree of
// map[string]any, []any and scalars.
type backend interface {
	decode(data []byte) (any, error)
	encode(doc schema.Map) ([]byte, error)
}

// Transcoder converts Described values between Go and text.
type Transcoder struct {
	walker   *schema.Walker
	backends map[Format]backend
}

// Option customises a Transcoder.
type Option func(*Transcoder)

// WithJSONIndent makes JSON output indented with the given string.
func WithJSONIndent(indent string) Option {
	return func(transcoder *Transcoder) {
		transcoder.backends[FormatJSON] = jsonBackend{indent: indent}
	}
}

// New returns a Transcoder consulting codecs for per-field codecs.
func New(codecs *codec.Registry, options ...Option) *Transcoder {
	transcoder := &Transcoder{
		walker: schema.NewWalker(codecs),
		backends: map[Format]backend{
			FormatJSON: jsonBackend{},
			FormatYAML: yamlBackend{indent: 2},
			FormatTOML: tomlBackend{},
		},
	}
	for _, option := range options {
		option(transcoder)
	}
	return transcoder
}

// Decode parses data in the given format and binds it onto dst. A malformed
// payload fails with *ParseError, a well-formed payload violating the schema
// with *SchemaError. dst is left untouched on failure.
func (transcoder *Transcoder) Decode(format Format, data []byte, dst schema.Described) error {
	formatBackend, err := transcoder.backend(format)
	if err != nil {
		return err
	}

	raw, err := formatBackend.decode(data)
	if err != nil {
		return &ParseError{Format: format, Op: OpDecode, Err: err}
	}
	if err := transcoder.walker.Decode(raw, dst); err != nil {
		return err
	}

	logger.TranscoderLog.Debugf("decoded %s from %s (%d bytes)", dst.Schema().Name, format, len(data))
	return nil
}

// Encode renders value in the given format. Output is deterministic and
// follows declaration order of the schema.
func (transcoder *Transcoder) Encode(format Format, value schema.Described) ([]byte, error) {
	formatBackend, err := transcoder.backend(format)
	if err != nil {
		return nil, err
	}

	doc, err := transcoder.walker.Encode(value)
	if err != nil {
		return nil, err
	}
	out, err := formatBackend.encode(doc)
	if err != nil {
		return nil, &ParseError{Format: format, Op: OpEncode, Err: err}
	}

	logger.TranscoderLog.Debugf("encoded %s as %s (%d bytes)", value.Schema().Name, format, len(out))
	return out, nil
}

func (transcoder *Transcoder) backend(format Format) (backend, error) {
	formatBackend, ok := transcoder.backends[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
	return formatBackend, nil
}
