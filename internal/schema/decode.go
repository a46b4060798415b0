package schema

import (
	"math"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/eyexzy/serde-practice/internal/codec"
	"github.com/eyexzy/serde-practice/internal/logger"
)

// Decode binds a raw decoded tree onto dst, which must be a non-nil pointer
// to a struct. Decoding is all-or-nothing: dst is only assigned once every
// field validated. Unknown keys are ignored.
func (walker *Walker) Decode(raw any, dst Described) error {
	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newError("", CodeInvalidType, "decode target must be a non-nil pointer, got %T", dst)
	}
	target := rv.Elem()
	if target.Kind() != reflect.Struct {
		return newError("", CodeInvalidType, "decode target must point to a struct, got %s", target.Kind())
	}

	object := dst.Schema()
	fresh := reflect.New(target.Type()).Elem()
	if err := walker.decodeObject(object, raw, fresh, ""); err != nil {
		logger.SchemaLog.Debugf("decode of %s failed: %v", object.Name, err)
		return err
	}

	target.Set(fresh)
	logger.SchemaLog.Tracef("decoded %s", object.Name)
	return nil
}

func (walker *Walker) decodeObject(object *Object, raw any, rv reflect.Value, path string) error {
	members, ok := raw.(map[string]any)
	if !ok {
		return newError(path, CodeInvalidType, "expected object %s, got %s", object.Name, describe(raw))
	}

	for _, field := range object.Fields {
		fieldPath := childPath(path, field.Name)

		value, present := members[field.Name]
		if !present {
			return newError(fieldPath, CodeRequired, "missing field %q", field.Name)
		}
		if value == nil {
			return newError(fieldPath, CodeInvalidType, "expected %s, got null", field.Kind)
		}

		fieldValue := rv.FieldByName(field.GoName)
		if !fieldValue.IsValid() || !fieldValue.CanSet() {
			return newError(fieldPath, CodeInvalidType, "%s has no settable Go field %s", object.Name, field.GoName)
		}

		if err := walker.decodeField(object, field, value, fieldValue, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func (walker *Walker) decodeField(object *Object, field Field, raw any, fieldValue reflect.Value, path string) error {
	switch field.Kind {
	case KindObject:
		return walker.decodeObject(field.Object, raw, fieldValue, path)
	case KindList:
		items, ok := raw.([]any)
		if !ok {
			return newError(path, CodeInvalidType, "expected array, got %s", describe(raw))
		}
		if fieldValue.Kind() != reflect.Slice {
			return newError(path, CodeInvalidType, "list field must be a slice, got %s", fieldValue.Kind())
		}
		list := reflect.MakeSlice(fieldValue.Type(), 0, len(items))
		for index, item := range items {
			element := reflect.New(fieldValue.Type().Elem()).Elem()
			if err := walker.decodeObject(field.Object, item, element, indexPath(path, index)); err != nil {
				return err
			}
			list = reflect.Append(list, element)
		}
		fieldValue.Set(list)
		return nil
	}

	if fieldCodec, hasCodec := walker.codecs.Lookup(object.Name, field.Name); hasCodec {
		if !field.Kind.Textual() {
			return newError(path, CodeCodec, "field codec requires a textual field, %s is %s", field.Name, field.Kind)
		}
		text, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected string, got %s", describe(raw))
		}
		decoded, err := fieldCodec.Decode(text)
		if err != nil {
			return wrapError(path, CodeCodec, err, "field codec rejected %q", text)
		}
		raw = decoded
	}

	return decodeScalar(field, raw, fieldValue, path)
}

func decodeScalar(field Field, raw any, fieldValue reflect.Value, path string) error {
	switch field.Kind {
	case KindString:
		text, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected string, got %s", describe(raw))
		}
		if fieldValue.Kind() != reflect.String {
			return goTypeError(path, field, fieldValue)
		}
		fieldValue.SetString(text)
		return nil

	case KindBool:
		flag, ok := raw.(bool)
		if !ok {
			return newError(path, CodeInvalidType, "expected bool, got %s", describe(raw))
		}
		if fieldValue.Kind() != reflect.Bool {
			return goTypeError(path, field, fieldValue)
		}
		fieldValue.SetBool(flag)
		return nil

	case KindUint32:
		number, err := toUint32(raw, path)
		if err != nil {
			return err
		}
		if !fieldValue.CanUint() {
			return goTypeError(path, field, fieldValue)
		}
		fieldValue.SetUint(number)
		return nil

	case KindUUID:
		text, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected UUID string, got %s", describe(raw))
		}
		if !govalidator.IsUUID(strings.ToLower(text)) {
			return newError(path, CodeInvalidFormat, "%q is not a hyphenated UUID", text)
		}
		id, err := uuid.Parse(text)
		if err != nil {
			return wrapError(path, CodeInvalidFormat, err, "invalid UUID %q", text)
		}
		return assign(fieldValue, reflect.ValueOf(id), field, path)

	case KindURL:
		text, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected URL string, got %s", describe(raw))
		}
		if !govalidator.IsRequestURL(text) {
			return newError(path, CodeInvalidFormat, "%q is not an absolute URL", text)
		}
		location, err := url.Parse(text)
		if err != nil {
			return wrapError(path, CodeInvalidFormat, err, "invalid URL %q", text)
		}
		if !location.IsAbs() {
			return newError(path, CodeInvalidFormat, "%q is not an absolute URL", text)
		}
		return assign(fieldValue, reflect.ValueOf(*location), field, path)

	case KindDuration:
		text, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected duration string, got %s", describe(raw))
		}
		span, err := codec.ParseDuration(text)
		if err != nil {
			return wrapError(path, CodeInvalidFormat, err, "invalid duration %q", text)
		}
		return assign(fieldValue, reflect.ValueOf(span), field, path)

	case KindTimestamp:
		var instant time.Time
		switch value := raw.(type) {
		case string:
			parsed, err := codec.ParseTimestamp(value)
			if err != nil {
				return wrapError(path, CodeInvalidFormat, err, "invalid timestamp %q", value)
			}
			instant = parsed
		case time.Time:
			// YAML and TOML parsers may already resolve unquoted timestamps.
			instant = value.UTC()
		default:
			return newError(path, CodeInvalidType, "expected timestamp string, got %s", describe(raw))
		}
		return assign(fieldValue, reflect.ValueOf(instant), field, path)

	case KindEnum:
		literal, ok := raw.(string)
		if !ok {
			return newError(path, CodeInvalidType, "expected string, got %s", describe(raw))
		}
		if !slices.Contains(field.Enum, literal) {
			return newError(path, CodeInvalidEnum, "unknown variant %q, expected one of %q", literal, field.Enum)
		}
		if fieldValue.Kind() != reflect.String {
			return goTypeError(path, field, fieldValue)
		}
		fieldValue.SetString(literal)
		return nil
	}

	return newError(path, CodeInvalidType, "unsupported kind %s", field.Kind)
}

// assign stores value into fieldValue when the types line up.
func assign(fieldValue, value reflect.Value, field Field, path string) error {
	if !value.Type().AssignableTo(fieldValue.Type()) {
		return goTypeError(path, field, fieldValue)
	}
	fieldValue.Set(value)
	return nil
}

// toUint32 accepts the integer representations produced by the JSON, YAML
// and TOML parsers.
func toUint32(raw any, path string) (uint64, error) {
	var number uint64
	switch value := raw.(type) {
	case int:
		if value < 0 {
			return 0, newError(path, CodeOverflow, "%d is negative, expected uint32", value)
		}
		number = uint64(value)
	case int64:
		if value < 0 {
			return 0, newError(path, CodeOverflow, "%d is negative, expected uint32", value)
		}
		number = uint64(value)
	case uint64:
		number = value
	case uint:
		number = uint64(value)
	default:
		return 0, newError(path, CodeInvalidType, "expected unsigned integer, got %s", describe(raw))
	}
	if number > math.MaxUint32 {
		return 0, newError(path, CodeOverflow, "%d does not fit in uint32", number)
	}
	return number, nil
}
