// Package codec holds the text-level conversions applied at the serialization
// boundary: per-field codecs that can be attached to a single (entity, field)
// pair, and the duration and timestamp grammars used for span-of-time and
// instant fields in every exchange format.
package codec

import (
	"fmt"
	"strings"
	"sync"

	"github.com/eyexzy/serde-practice/internal/logger"
)

// DatePrefix is the literal carried on the wire in front of event dates.
const DatePrefix = "Date: "

// Codec converts a field's text between its in-memory and wire forms.
// Encode runs after the field's default mapping produced text; Decode runs
// before the default mapping parses the wire text.
type Codec interface {
	Encode(value string) (string, error)
	Decode(wire string) (string, error)
}

// Prefix returns a Codec that adds prefix on encode and strips it on decode.
// Wire values without the prefix are passed through unchanged.
func Prefix(prefix string) Codec {
	return &prefixCodec{prefix: prefix}
}

// DateCodec returns the "Date: " prefix codec used for event dates.
func DateCodec() Codec {
	return Prefix(DatePrefix)
}

type prefixCodec struct {
	prefix string
}

func (c *prefixCodec) Encode(value string) (string, error) {
	return c.prefix + value, nil
}

func (c *prefixCodec) Decode(wire string) (string, error) {
	if !strings.HasPrefix(wire, c.prefix) {
		// Lenient: an unprefixed wire value is taken as the in-memory value.
		logger.CodecLog.Debugf("wire value %q lacks prefix %q, passing it through", wire, c.prefix)
		return wire, nil
	}
	return strings.TrimPrefix(wire, c.prefix), nil
}

// FieldKey identifies one field of one entity.
type FieldKey struct {
	Entity string
	Field  string
}

func (k FieldKey) String() string {
	return k.Entity + "." + k.Field
}

// Registry maps (entity, field) pairs to codecs. A nil *Registry is valid
// and holds no codecs.
type Registry struct {
	mutexForCodecs sync.RWMutex
	codecs         map[FieldKey]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[FieldKey]Codec)}
}

// Register attaches c to the given field. A field can carry at most one codec.
func (r *Registry) Register(entity, field string, c Codec) error {
	if strings.TrimSpace(entity) == "" || strings.TrimSpace(field) == "" {
		return fmt.Errorf("codec key must name both entity and field, got %q.%q", entity, field)
	}
	if c == nil {
		return fmt.Errorf("codec for %s.%s must not be nil", entity, field)
	}

	key := FieldKey{Entity: entity, Field: field}

	r.mutexForCodecs.Lock()
	defer r.mutexForCodecs.Unlock()

	if _, exists := r.codecs[key]; exists {
		return fmt.Errorf("codec already registered for %s", key)
	}
	r.codecs[key] = c

	logger.CodecLog.Debugf("registered field codec for %s", key)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level registry construction.
func (r *Registry) MustRegister(entity, field string, c Codec) *Registry {
	if err := r.Register(entity, field, c); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the codec attached to the given field, if any.
func (r *Registry) Lookup(entity, field string) (Codec, bool) {
	if r == nil {
		return nil, false
	}

	r.mutexForCodecs.RLock()
	defer r.mutexForCodecs.RUnlock()

	c, ok := r.codecs[FieldKey{Entity: entity, Field: field}]
	return c, ok
}

// Keys returns the registered field keys.
func (r *Registry) Keys() []FieldKey {
	if r == nil {
		return nil
	}

	r.mutexForCodecs.RLock()
	defer r.mutexForCodecs.RUnlock()

	keys := make([]FieldKey, 0, len(r.codecs))
	for key := range r.codecs {
		keys = append(keys, key)
	}
	return keys
}
