package schema

import (
	"math"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/eyexzy/serde-practice/internal/codec"
	"github.com/eyexzy/serde-practice/internal/logger"
)

// Walker maps between Go values and wire trees using Object descriptors.
// Field codecs from the registry are consulted before the default mapping.
type Walker struct {
	codecs *codec.Registry
}

// NewWalker returns a Walker consulting the given registry. A nil registry
// means no field codecs.
func NewWalker(codecs *codec.Registry) *Walker {
	return &Walker{codecs: codecs}
}

// Encode builds the ordered wire tree of value. Values built in Go are
// validated too: an unknown enum literal, a non-absolute URL or a negative
// duration fail with a SchemaError.
func (walker *Walker) Encode(value Described) (Map, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, newError("", CodeInvalidType, "cannot encode nil value")
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, newError("", CodeInvalidType, "cannot encode nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, newError("", CodeInvalidType, "%s must be a struct, got %s", rv.Type(), rv.Kind())
	}

	object := value.Schema()
	doc, err := walker.encodeObject(object, rv, "")
	if err != nil {
		return nil, err
	}
	logger.SchemaLog.Tracef("encoded %s with %d top-level field(s)", object.Name, len(doc))
	return doc, nil
}

func (walker *Walker) encodeObject(object *Object, rv reflect.Value, path string) (Map, error) {
	out := make(Map, 0, len(object.Fields))
	for _, field := range object.Fields {
		fieldPath := childPath(path, field.Name)

		fieldValue := rv.FieldByName(field.GoName)
		if !fieldValue.IsValid() {
			return nil, newError(fieldPath, CodeInvalidType, "%s has no Go field %s", object.Name, field.GoName)
		}

		wire, err := walker.encodeField(object, field, fieldValue, fieldPath)
		if err != nil {
			return nil, err
		}
		out = append(out, Member{Key: field.Name, Value: wire})
	}
	return out, nil
}

func (walker *Walker) encodeField(object *Object, field Field, fieldValue reflect.Value, path string) (any, error) {
	switch field.Kind {
	case KindObject:
		return walker.encodeObject(field.Object, fieldValue, path)
	case KindList:
		if fieldValue.Kind() != reflect.Slice {
			return nil, newError(path, CodeInvalidType, "list field must be a slice, got %s", fieldValue.Kind())
		}
		items := make([]any, 0, fieldValue.Len())
		for index := 0; index < fieldValue.Len(); index++ {
			item, err := walker.encodeObject(field.Object, fieldValue.Index(index), indexPath(path, index))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	wire, err := encodeScalar(field, fieldValue, path)
	if err != nil {
		return nil, err
	}

	fieldCodec, hasCodec := walker.codecs.Lookup(object.Name, field.Name)
	if !hasCodec {
		return wire, nil
	}
	text, isText := wire.(string)
	if !isText {
		return nil, newError(path, CodeCodec, "field codec requires a textual field, %s is %s", field.Name, field.Kind)
	}
	encoded, err := fieldCodec.Encode(text)
	if err != nil {
		return nil, wrapError(path, CodeCodec, err, "field codec rejected value")
	}
	return encoded, nil
}

func encodeScalar(field Field, fieldValue reflect.Value, path string) (any, error) {
	switch field.Kind {
	case KindString:
		if fieldValue.Kind() != reflect.String {
			return nil, goTypeError(path, field, fieldValue)
		}
		return fieldValue.String(), nil

	case KindBool:
		if fieldValue.Kind() != reflect.Bool {
			return nil, goTypeError(path, field, fieldValue)
		}
		return fieldValue.Bool(), nil

	case KindUint32:
		if !fieldValue.CanUint() {
			return nil, goTypeError(path, field, fieldValue)
		}
		number := fieldValue.Uint()
		if number > math.MaxUint32 {
			return nil, newError(path, CodeOverflow, "%d does not fit in uint32", number)
		}
		return number, nil

	case KindUUID:
		id, ok := fieldValue.Interface().(uuid.UUID)
		if !ok {
			return nil, goTypeError(path, field, fieldValue)
		}
		return id.String(), nil

	case KindURL:
		location, ok := fieldValue.Interface().(url.URL)
		if !ok {
			return nil, goTypeError(path, field, fieldValue)
		}
		if !location.IsAbs() {
			return nil, newError(path, CodeInvalidFormat, "URL %q is not absolute", location.String())
		}
		return location.String(), nil

	case KindDuration:
		span, ok := fieldValue.Interface().(time.Duration)
		if !ok {
			return nil, goTypeError(path, field, fieldValue)
		}
		if span < 0 {
			return nil, newError(path, CodeInvalidFormat, "negative duration %s", span)
		}
		return codec.FormatDuration(span), nil

	case KindTimestamp:
		instant, ok := fieldValue.Interface().(time.Time)
		if !ok {
			return nil, goTypeError(path, field, fieldValue)
		}
		return codec.FormatTimestamp(instant), nil

	case KindEnum:
		if fieldValue.Kind() != reflect.String {
			return nil, goTypeError(path, field, fieldValue)
		}
		literal := fieldValue.String()
		if !slices.Contains(field.Enum, literal) {
			return nil, newError(path, CodeInvalidEnum, "unknown variant %q, expected one of %q", literal, field.Enum)
		}
		return literal, nil
	}

	return nil, newError(path, CodeInvalidType, "unsupported kind %s", field.Kind)
}

func goTypeError(path string, field Field, fieldValue reflect.Value) *SchemaError {
	return newError(path, CodeInvalidType, "Go field %s of type %s cannot hold a %s", field.GoName, fieldValue.Type(), field.Kind)
}
