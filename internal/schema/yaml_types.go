package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaFile is the raw YAML shape of a type schema. Pointers distinguish
// a missing required key from an empty one.
type schemaFile struct {
	Type         string       `yaml:"type"`
	Doc          *string      `yaml:"doc"`
	Fields       *[]fieldFile `yaml:"fields"`
	FromInternal bool         `yaml:"from_internal"`
	ToInternal   bool         `yaml:"to_internal"`
	HFileHead    string       `yaml:"h_file_head"`
	CFileHead    string       `yaml:"c_file_head"`
}

// fieldFile is the raw YAML shape of one field entry.
type fieldFile struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Class       string        `yaml:"class"`
	Doc         *string       `yaml:"doc"`
	Setter      bool          `yaml:"setter"`
	Annotations StringOrArray `yaml:"annotations"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}
