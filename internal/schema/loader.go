package schema

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"boxgen/internal/diagnostic"
)

// LoadFile loads, parses and validates a YAML schema file.
func LoadFile(path string) (*TypeSchema, []diagnostic.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading schema %s", path)
	}

	return Parse(data)
}

// Read parses and validates a YAML schema from r.
func Read(r io.Reader) (*TypeSchema, []diagnostic.Diagnostic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading schema")
	}

	return Parse(data)
}

// Parse parses YAML data into a validated TypeSchema. Warnings are returned
// even when parsing fails. No schema is returned unless every check passes.
func Parse(data []byte) (*TypeSchema, []diagnostic.Diagnostic, error) {
	var sf schemaFile

	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, nil, &SchemaValidationError{Reason: "malformed YAML: " + err.Error(), cause: err}
	}

	s, diags := build(&sf)
	if err := diags.Err(); err != nil {
		return nil, diags.Warnings, errors.WithHint(err, "fix the schema and run the generator again")
	}

	return s, diags.Warnings, nil
}
