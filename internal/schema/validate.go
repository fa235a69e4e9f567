package schema

import (
	"fmt"
	"regexp"

	"boxgen/internal/diagnostic"
	"boxgen/internal/naming"
)

// identifierRe matches a canonical title-case identifier.
var identifierRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// reservedMemberNames are snake names that clash with the private ref_count
// member, the self parameter or a C/C++ keyword.
var reservedMemberNames = map[string]struct{}{
	"ref_count": {}, "self": {},
	"auto": {}, "bool": {}, "break": {}, "case": {}, "catch": {}, "char": {}, "class": {},
	"const": {}, "continue": {}, "default": {}, "delete": {}, "do": {}, "double": {},
	"else": {}, "enum": {}, "explicit": {}, "extern": {}, "false": {}, "float": {},
	"for": {}, "friend": {}, "goto": {}, "if": {}, "inline": {}, "int": {}, "long": {},
	"mutable": {}, "namespace": {}, "new": {}, "operator": {}, "private": {},
	"protected": {}, "public": {}, "register": {}, "return": {}, "short": {},
	"signed": {}, "sizeof": {}, "static": {}, "struct": {}, "switch": {},
	"template": {}, "this": {}, "throw": {}, "true": {}, "try": {}, "typedef": {},
	"typename": {}, "union": {}, "unsigned": {}, "using": {}, "virtual": {},
	"void": {}, "volatile": {}, "while": {},
}

// recognizedAnnotations lists annotations with generator semantics. Others
// are passed through to the setter documentation.
var recognizedAnnotations = map[string]struct{}{
	AnnotationNullable: {},
}

// build validates the raw schema and converts it to a TypeSchema. All
// problems are collected; the schema is only meaningful when the returned
// diagnostics are valid.
func build(sf *schemaFile) (*TypeSchema, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}

	s := &TypeSchema{
		Name:                 sf.Type,
		GenerateFromExternal: sf.FromInternal,
		GenerateToExternal:   sf.ToInternal,
		DeclarationHead:      sf.HFileHead,
		ImplementationHead:   sf.CFileHead,
	}

	switch {
	case sf.Type == "":
		res.AddError("missing_type", "", invalidf("", "missing required key %q", "type"))
	case !identifierRe.MatchString(sf.Type):
		res.AddError("invalid_type_name", "", invalidf("", "type name %q is not a title-case identifier", sf.Type))
	}

	if sf.Doc == nil {
		res.AddError("missing_doc", "", invalidf("", "missing required key %q", "doc"))
	} else {
		s.Doc = *sf.Doc
	}

	if sf.Fields == nil {
		res.AddError("missing_fields", "", invalidf("", "missing required key %q", "fields"))
		return s, res
	}

	seenNames := map[string]struct{}{}
	seenSnake := map[string]string{}

	for i, ff := range *sf.Fields {
		label := ff.Name
		if label == "" {
			label = fmt.Sprintf("fields[%d]", i)
		}

		f, ok := buildField(res, label, &ff)
		if !ok {
			continue
		}

		if _, dup := seenNames[f.Name]; dup {
			res.AddError("duplicate_field", label, invalidf(label, "duplicate field name"))
			continue
		}

		seenNames[f.Name] = struct{}{}

		snake := naming.ToSnake(f.Name)
		if other, clash := seenSnake[snake]; clash {
			res.AddError("field_name_collision", label,
				invalidf(label, "field name collides with %q (both become %q)", other, snake))

			continue
		}

		seenSnake[snake] = f.Name

		if _, reserved := reservedMemberNames[snake]; reserved {
			res.AddError("reserved_field_name", label,
				invalidf(label, "field name becomes %q, which is reserved in the generated code", snake))

			continue
		}

		s.Fields = append(s.Fields, f)
	}

	return s, res
}

// buildField validates a single raw field entry.
func buildField(res *diagnostic.Diagnostics, label string, ff *fieldFile) (FieldSpec, bool) {
	ok := true

	fail := func(code string, err error) {
		res.AddError(code, label, err)
		ok = false
	}

	switch {
	case ff.Name == "":
		fail("missing_field_name", invalidf(label, "missing required key %q", "name"))
	case !identifierRe.MatchString(ff.Name):
		fail("invalid_field_name", invalidf(label, "field name is not a title-case identifier"))
	}

	if ff.Doc == nil {
		fail("missing_field_doc", invalidf(label, "missing required key %q", "doc"))
	}

	if ff.Type == "" {
		fail("missing_field_type", invalidf(label, "missing required key %q", "type"))
		return FieldSpec{}, false
	}

	kind, scalar, known := ParseKind(ff.Type)
	if !known {
		fail("unsupported_kind", &SchemaValidationError{
			Field:  label,
			Reason: fmt.Sprintf("type %q is not one of integer, long, double, bool, string, object, enum", ff.Type),
			cause:  &UnsupportedFieldKindError{Kind: ff.Type},
		})

		return FieldSpec{}, false
	}

	if ff.Class != "" && !identifierRe.MatchString(ff.Class) {
		fail("invalid_class_name", invalidf(label, "class %q is not a title-case identifier", ff.Class))
	}

	f := FieldSpec{
		Name:        ff.Name,
		Kind:        kind,
		Scalar:      scalar,
		ClassRef:    ff.Class,
		HasSetter:   ff.Setter,
		Annotations: []string(ff.Annotations),
	}

	f.Nullable = f.HasAnnotation(AnnotationNullable)

	if ff.Doc != nil {
		f.Doc = *ff.Doc
	}

	if err := f.Validate(); err != nil {
		fail("invalid_field", err)
	}

	for _, a := range ff.Annotations {
		if _, known := recognizedAnnotations[a]; !known {
			res.AddWarning("unknown_annotation", label,
				fmt.Sprintf("annotation %q has no generator semantics and is only copied into documentation", a))
		}
	}

	return f, ok
}
