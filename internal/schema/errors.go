package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error codes carried by SchemaError.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidEnum   = "invalid_enum"
	CodeOverflow      = "overflow"
	CodeCodec         = "codec"
)

// SchemaError reports a well-formed payload (or Go value) whose field
// violates its type's invariant. Path is a JSON pointer such as
// /stream/public_tariff/duration or /gifts/1/price.
type SchemaError struct {
	Path    string
	Code    string
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Code, path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, path, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr, true
	}
	return nil, false
}

func newError(path, code, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(path, code string, cause error, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// childPath appends a key to a JSON pointer, escaping per RFC 6901.
func childPath(parent, key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return parent + "/" + key
}

func indexPath(parent string, index int) string {
	return parent + "/" + strconv.Itoa(index)
}

// describe names the wire type of a raw decoded value for messages.
func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
