package transcoder

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/eyexzy/serde-practice/internal/schema"
)

type yamlBackend struct {
	indent int
}

func (backend yamlBackend) decode(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (backend yamlBackend) encode(doc schema.Map) ([]byte, error) {
	root, err := toYAMLNode(doc)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(backend.indent)
	if err := encoder.Encode(root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// toYAMLNode builds a node tree so mapping keys keep declaration order.
func toYAMLNode(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case schema.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, member := range typed {
			child, err := toYAMLNode(member.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", member.Key), child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case string:
		return scalarNode("!!str", typed), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(typed, 10)), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(typed)), nil
	default:
		return nil, fmt.Errorf("cannot represent %T", value)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
