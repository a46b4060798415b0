package transcoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/eyexzy/serde-practice/internal/schema"
)

type jsonBackend struct {
	indent string
}

func (backend jsonBackend) decode(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	var trailing any
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	if err := detectDuplicateKeys(data); err != nil {
		return nil, err
	}
	return normalizeJSON(raw)
}

// jsonFrame tracks one open object or array while scanning tokens.
type jsonFrame struct {
	object       bool
	path         string
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// detectDuplicateKeys rejects objects that repeat a key. Decoding into a map
// would otherwise keep the last value silently.
func detectDuplicateKeys(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var stack []*jsonFrame
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.object {
			return top.path + "/" + pointerEscaper.Replace(top.key)
		}
		return top.path + "/" + strconv.Itoa(top.index)
	}
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch typed := token.(type) {
		case json.Delim:
			switch typed {
			case '{':
				stack = append(stack, &jsonFrame{object: true, path: valuePath(), keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				stack = append(stack, &jsonFrame{path: valuePath()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.object && top.expectingKey {
					if _, seen := top.keys[typed]; seen {
						return fmt.Errorf("duplicate key %q at %s/%s", typed, top.path, pointerEscaper.Replace(typed))
					}
					top.keys[typed] = struct{}{}
					top.key = typed
					top.expectingKey = false
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

func (backend jsonBackend) encode(doc schema.Map) ([]byte, error) {
	var buffer bytes.Buffer
	if err := writeJSON(&buffer, doc); err != nil {
		return nil, err
	}
	if backend.indent == "" {
		return buffer.Bytes(), nil
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, buffer.Bytes(), "", backend.indent); err != nil {
		return nil, err
	}
	return indented.Bytes(), nil
}

// writeJSON renders a wire tree keeping member order.
func writeJSON(buffer *bytes.Buffer, value any) error {
	switch typed := value.(type) {
	case schema.Map:
		buffer.WriteByte('{')
		for index, member := range typed {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSONScalar(buffer, member.Key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := writeJSON(buffer, member.Value); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
		return nil
	case []any:
		buffer.WriteByte('[')
		for index, item := range typed {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSON(buffer, item); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
		return nil
	default:
		return writeJSONScalar(buffer, typed)
	}
}

func writeJSONScalar(buffer *bytes.Buffer, value any) error {
	encoded, err := json.MarshalWithOption(value, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	buffer.Write(encoded)
	return nil
}

// normalizeJSON replaces json.Number leaves with int64, uint64 or float64 so
// the schema walker sees the same scalar types every parser produces.
func normalizeJSON(raw any) (any, error) {
	switch typed := raw.(type) {
	case map[string]any:
		for key, value := range typed {
			normalized, err := normalizeJSON(value)
			if err != nil {
				return nil, err
			}
			typed[key] = normalized
		}
		return typed, nil
	case []any:
		for index, value := range typed {
			normalized, err := normalizeJSON(value)
			if err != nil {
				return nil, err
			}
			typed[index] = normalized
		}
		return typed, nil
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer, nil
		}
		if unsigned, err := strconv.ParseUint(typed.String(), 10, 64); err == nil {
			return unsigned, nil
		}
		float, err := typed.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s out of range", typed.String())
		}
		return float, nil
	default:
		return raw, nil
	}
}
