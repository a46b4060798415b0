package transcoder

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/eyexzy/serde-practice/internal/schema"
)

type tomlBackend struct{}

func (backend tomlBackend) decode(data []byte) (any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// encode renders the wire tree through go-toml. go-toml keeps the field order
// of structs (and sorts map keys), so every wire object is turned into a
// struct type whose fields follow member order.
func (backend tomlBackend) encode(doc schema.Map) ([]byte, error) {
	value, err := toTOMLValue(doc)
	if err != nil {
		return nil, err
	}
	return toml.Marshal(value.Interface())
}

func toTOMLValue(value any) (reflect.Value, error) {
	switch typed := value.(type) {
	case schema.Map:
		fields := make([]reflect.StructField, 0, len(typed))
		values := make([]reflect.Value, 0, len(typed))
		for index, member := range typed {
			child, err := toTOMLValue(member.Value)
			if err != nil {
				return reflect.Value{}, err
			}
			fields = append(fields, reflect.StructField{
				Name: "F" + strconv.Itoa(index),
				Type: child.Type(),
				Tag:  reflect.StructTag(fmt.Sprintf("toml:%q", member.Key)),
			})
			values = append(values, child)
		}
		table := reflect.New(reflect.StructOf(fields)).Elem()
		for index, child := range values {
			table.Field(index).Set(child)
		}
		return table, nil

	case []any:
		items := make([]reflect.Value, 0, len(typed))
		for _, item := range typed {
			child, err := toTOMLValue(item)
			if err != nil {
				return reflect.Value{}, err
			}
			items = append(items, child)
		}
		return sliceOf(items), nil

	case uint64:
		// TOML integers are signed 64-bit.
		if typed > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("integer %d exceeds the TOML int64 range", typed)
		}
		return reflect.ValueOf(typed), nil

	case string, bool:
		return reflect.ValueOf(typed), nil

	default:
		return reflect.Value{}, fmt.Errorf("cannot represent %T", value)
	}
}

// sliceOf builds a typed slice when all items share a type (objects of the
// same entity do), falling back to []any.
func sliceOf(items []reflect.Value) reflect.Value {
	if len(items) == 0 {
		return reflect.ValueOf([]any{})
	}

	elementType := items[0].Type()
	uniform := true
	for _, item := range items[1:] {
		if item.Type() != elementType {
			uniform = false
			break
		}
	}
	if !uniform {
		elementType = reflect.TypeOf((*any)(nil)).Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elementType), 0, len(items))
	for _, item := range items {
		slice = reflect.Append(slice, item)
	}
	return slice
}
