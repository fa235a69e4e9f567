package schema

import (
	"slices"
)

// AnnotationNullable marks a string or object field whose value may be absent.
const AnnotationNullable = "nullable"

// FieldSpec describes one field of a boxed type.
type FieldSpec struct {
	// Name is the canonical title-case identifier, unique within the type.
	Name string
	// Kind drives every generated fragment for this field.
	Kind Kind
	// Scalar is the storage type of a KindScalar field.
	Scalar ScalarType
	// ClassRef names the referenced boxed type for object and enum fields.
	ClassRef string
	// Nullable permits an absent value.
	Nullable bool
	// HasSetter controls whether a public mutator is emitted.
	HasSetter bool
	// Doc is free text.
	Doc string
	// Annotations are the raw annotations, emitted on the setter parameter.
	Annotations []string
}

// Validate checks the kind, class reference and nullability invariants.
func (f *FieldSpec) Validate() error {
	if !f.Kind.IsValid() {
		return &SchemaValidationError{
			Field:  f.Name,
			Reason: "unsupported field kind",
			cause:  &UnsupportedFieldKindError{Kind: f.Kind.String()},
		}
	}

	if f.Kind == KindScalar && f.Scalar.CType() == "" {
		return invalidf(f.Name, "scalar field has no storage type")
	}

	if f.Kind.NeedsClass() && f.ClassRef == "" {
		return invalidf(f.Name, "class is required for %s fields", f.Kind)
	}

	if !f.Kind.NeedsClass() && f.ClassRef != "" {
		return invalidf(f.Name, "class is only valid for object and enumerated fields, not %s", f.Kind)
	}

	if f.Nullable && !f.Kind.AllowsNullable() {
		return invalidf(f.Name, "nullable is meaningless for inline %s fields", f.Kind)
	}

	return nil
}

// HasAnnotation reports whether the field carries the given annotation.
func (f *FieldSpec) HasAnnotation(a string) bool {
	return slices.Contains(f.Annotations, a)
}

// TypeSchema is the boxed type being generated. It is immutable once
// returned by Parse.
type TypeSchema struct {
	// Name is the canonical type identifier.
	Name string
	// Doc is the type-level documentation.
	Doc string
	// Fields are in declaration order; the order is preserved in every
	// generated routine.
	Fields []FieldSpec
	// GenerateFromExternal emits the reverse-marshal routine.
	GenerateFromExternal bool
	// GenerateToExternal emits the forward-marshal routine.
	GenerateToExternal bool
	// DeclarationHead is inserted verbatim near the top of the declaration document.
	DeclarationHead string
	// ImplementationHead is inserted verbatim near the top of the implementation document.
	ImplementationHead string
}

// PublicConstructor reports whether the constructor is exported. A type
// only ever produced by marshaling gets an internal constructor.
func (s *TypeSchema) PublicConstructor() bool {
	return !s.GenerateFromExternal
}

// GeneratesMarshaling reports whether either marshal routine is emitted.
func (s *TypeSchema) GeneratesMarshaling() bool {
	return s.GenerateFromExternal || s.GenerateToExternal
}

// Setters returns the fields with a public mutator, in declaration order.
func (s *TypeSchema) Setters() []FieldSpec {
	var out []FieldSpec

	for _, f := range s.Fields {
		if f.HasSetter {
			out = append(out, f)
		}
	}

	return out
}
