package transcoder

import (
	"errors"
	"fmt"

	"github.com/eyexzy/serde-practice/internal/schema"
)

// Operations recorded in ParseError.
const (
	OpDecode = "decode"
	OpEncode = "encode"
)

// ErrUnsupportedFormat is returned for a Format without a backend.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseError reports text that does not conform to a format's grammar, or
// a value the format itself refuses to represent.
type ParseError struct {
	Format Format
	Op     string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError is the schema violation type surfaced by Decode and Encode.
type SchemaError = schema.SchemaError

// AsParseError extracts a *ParseError from err.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	return schema.AsSchemaError(err)
}

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	_, ok := AsParseError(err)
	return ok
}

// IsSchemaError reports whether err carries a *SchemaError.
func IsSchemaError(err error) bool {
	_, ok := AsSchemaError(err)
	return ok
}
