package model

import (
	"reflect"
	"testing"

	"github.com/eyexzy/serde-practice/internal/schema"
)

// Every descriptor must point at existing, exported Go fields.
func TestSchemasMatchGoTypes(t *testing.T) {
	entities := []schema.Described{
		PublicTariff{}, PrivateTariff{}, Stream{}, Gift{}, DebugInfo{}, Request{}, Event{},
	}
	for _, entity := range entities {
		checkObject(t, reflect.TypeOf(entity), entity.Schema())
	}
}

func checkObject(t *testing.T, goType reflect.Type, object *schema.Object) {
	t.Helper()
	if object.Name != goType.Name() {
		t.Errorf("schema name %q for Go type %s", object.Name, goType.Name())
	}
	seen := make(map[string]bool, len(object.Fields))
	for _, field := range object.Fields {
		if seen[field.Name] {
			t.Errorf("%s: duplicate wire name %q", object.Name, field.Name)
		}
		seen[field.Name] = true

		goField, ok := goType.FieldByName(field.GoName)
		if !ok || !goField.IsExported() {
			t.Errorf("%s.%s: no exported Go field %s", object.Name, field.Name, field.GoName)
			continue
		}
		switch field.Kind {
		case schema.KindObject:
			checkObject(t, goField.Type, field.Object)
		case schema.KindList:
			if goField.Type.Kind() != reflect.Slice {
				t.Errorf("%s.%s: list field is %s", object.Name, field.Name, goField.Type)
				continue
			}
			checkObject(t, goField.Type.Elem(), field.Object)
		}
	}
}

func TestRequestFieldOrder(t *testing.T) {
	var names []string
	for _, field := range (Request{}).Schema().Fields {
		names = append(names, field.Name)
	}
	want := []string{"type", "stream", "gifts", "debug"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("request fields = %v, want %v", names, want)
	}
}

func TestNewCodecRegistry(t *testing.T) {
	registry := NewCodecRegistry()
	if _, ok := registry.Lookup(EntityEvent, FieldEventDate); !ok {
		t.Fatalf("Event.date codec missing")
	}
	if _, ok := registry.Lookup(EntityEvent, "name"); ok {
		t.Fatalf("Event.name must not carry a codec")
	}
	// Independent registries per call.
	if NewCodecRegistry() == registry {
		t.Fatalf("expected a fresh registry")
	}
}
