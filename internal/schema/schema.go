// Package schema describes entities explicitly (wire field name, Go field,
// kind, optional enum literals, nested object) and provides a Walker that
// maps Go values to an ordered, format-neutral wire tree and maps raw decoded
// trees back onto Go values, validating every field on the way.
//
// Exchange formats never see Go types: encoders render a Map, decoders hand
// over the generic tree produced by their parser (map[string]any, []any and
// scalars).
package schema

// Kind selects the default mapping of a field.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindUint32
	KindUUID
	KindURL
	KindDuration
	KindTimestamp
	KindEnum
	KindObject
	KindList
)

var kindNames = [...]string{
	KindString:    "string",
	KindBool:      "bool",
	KindUint32:    "uint32",
	KindUUID:      "uuid",
	KindURL:       "url",
	KindDuration:  "duration",
	KindTimestamp: "timestamp",
	KindEnum:      "enum",
	KindObject:    "object",
	KindList:      "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Textual reports whether the default wire form of the kind is a string,
// i.e. whether a field codec can be layered on top of it.
func (k Kind) Textual() bool {
	switch k {
	case KindString, KindUUID, KindURL, KindDuration, KindTimestamp, KindEnum:
		return true
	default:
		return false
	}
}

// Field describes one field of an Object.
type Field struct {
	// Name is the key used on the wire.
	Name string
	// GoName is the struct field holding the value.
	GoName string
	Kind   Kind
	// Enum lists the accepted literals for KindEnum.
	Enum []string
	// Object describes the nested entity for KindObject and the element
	// entity for KindList.
	Object *Object
}

// Object describes an entity. Fields are listed in declaration order, which
// is also the output order of every encoder.
type Object struct {
	Name   string
	Fields []Field
}

// Described is implemented by every entity that can be transcoded.
type Described interface {
	Schema() *Object
}

// Member is one key/value pair of a wire object.
type Member struct {
	Key   string
	Value any
}

// Map is an ordered wire object. Values are string, uint64, bool, Map or
// []any holding Maps.
type Map []Member

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, member := range m {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, member := range m {
		keys = append(keys, member.Key)
	}
	return keys
}
