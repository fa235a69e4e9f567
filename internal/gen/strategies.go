package gen

import (
	"fmt"
	"strings"

	"boxgen/internal/naming"
	"boxgen/internal/schema"
)

// FieldFragments is every piece of generated behavior for one field, as
// derived from its kind and nullability.
type FieldFragments struct {
	Field schema.FieldSpec
	Names naming.Forms

	// Storage is the struct member type.
	Storage CType
	// Param is the setter parameter type.
	Param CType
	// Validation is the setter precondition expression, empty when none.
	Validation string
	// Owner drives release-on-replace and copy semantics.
	Owner Ownership
	// GuardedSet skips duplication of a NULL setter argument.
	GuardedSet bool
	// Noun describes the value in setter documentation.
	Noun string
	// FromExternal reads the field from the external model (internal).
	FromExternal string
	// ToExternal is the value passed to the external model's With* builder.
	ToExternal string
}

// Member returns the struct member declaration.
func (f *FieldFragments) Member() string {
	return f.Storage.Declare(f.Names.Snake) + ";"
}

// SetterStatements returns the setter body: preconditions, then the
// release-and-duplicate replacement of the stored value.
func (f *FieldFragments) SetterStatements() []string {
	stmts := []string{
		"g_return_if_fail (self);",
		"g_return_if_fail (self->ref_count);",
	}

	if f.Validation != "" {
		stmts = append(stmts, fmt.Sprintf("g_return_if_fail (%s);", f.Validation))
	}

	stmts = append(stmts, "")

	return append(stmts, f.Owner.Replace("self->"+f.Names.Snake, f.Names.Snake, f.GuardedSet)...)
}

// CopyStatements returns the statements copying the field from self to copy.
// Owned storage is copied only when present.
func (f *FieldFragments) CopyStatements() []string {
	return f.Owner.Duplicate("copy->"+f.Names.Snake, "self->"+f.Names.Snake, f.Owner.IsOwned())
}

// ReleaseStatements returns the statements releasing the field on free.
func (f *FieldFragments) ReleaseStatements() []string {
	return f.Owner.Release("self->" + f.Names.Snake)
}

// MarshalFromStatement returns the assignment reading the field from the
// external model.
func (f *FieldFragments) MarshalFromStatement() string {
	return fmt.Sprintf("retval->%s = %s;", f.Names.Snake, f.FromExternal)
}

// WithCall returns the external builder call storing the field.
func (f *FieldFragments) WithCall() string {
	return fmt.Sprintf(".With%s (%s)", f.Field.Name, f.ToExternal)
}

// NeedsExternalGuard reports whether the value may be NULL when marshaled to
// the external model, which must then be skipped.
func (f *FieldFragments) NeedsExternalGuard() bool {
	return f.Owner.IsOwned() && f.Field.Nullable
}

// ToExternalStatements returns the statements storing the field on retval,
// skipping an absent nullable value.
func (f *FieldFragments) ToExternalStatements() []string {
	call := "retval" + f.WithCall() + ";"
	if !f.NeedsExternalGuard() {
		return []string{call}
	}

	return []string{"if (self->" + f.Names.Snake + ")", "  " + call}
}

// ParamDoc returns the gtk-doc line describing the setter parameter.
func (f *FieldFragments) ParamDoc() string {
	annotations := ""
	if len(f.Field.Annotations) > 0 {
		annotations = ": (" + strings.Join(f.Field.Annotations, ") (") + ")"
	}

	return fmt.Sprintf("@%s%s: %s", f.Names.Snake, annotations, f.Noun)
}

// fieldFragments projects one field through the strategy table. Every kind
// in the closed set has exactly one case; anything else is an error.
func (g *Generator) fieldFragments(f *schema.FieldSpec) (*FieldFragments, error) {
	names := g.names.Get(f.Name)
	self := "self->" + names.Snake
	getter := fmt.Sprintf("internal.Get%s ()", f.Name)

	frag := &FieldFragments{Field: *f, Names: names}

	switch f.Kind {
	case schema.KindScalar:
		ct := CType(f.Scalar.CType())
		frag.Storage = ct
		frag.Param = ct
		frag.Owner = InlineValue()
		frag.Noun = withArticle(f.Scalar.Noun())
		frag.FromExternal = getter
		frag.ToExternal = self

	case schema.KindString:
		frag.Storage = "char *"
		frag.Param = "const char *"
		frag.Owner = OwnedText()
		frag.GuardedSet = f.Nullable
		frag.Noun = "a string"
		frag.FromExternal = fmt.Sprintf("g_strdup (%s.c_str ())", getter)
		frag.ToExternal = self

		if f.Nullable {
			frag.Validation = fmt.Sprintf("!%[1]s || *%[1]s", names.Snake)
		} else {
			frag.Validation = fmt.Sprintf("%[1]s && *%[1]s", names.Snake)
		}

	case schema.KindObject:
		class := g.names.Get(f.ClassRef)
		frag.Storage = CType(g.typeName(class) + " *")
		frag.Param = frag.Storage
		frag.Owner = OwnedHandle(g.symbol(class, "unref"), g.symbol(class, "copy"))
		frag.GuardedSet = f.Nullable
		frag.Noun = "a #" + g.typeName(class)
		frag.FromExternal = fmt.Sprintf("_%s (%s)", g.symbol(class, "from_internal"), getter)
		frag.ToExternal = fmt.Sprintf("_%s (%s)", g.symbol(class, "to_internal"), self)

		if !f.Nullable {
			frag.Validation = names.Snake
		}

	case schema.KindEnum:
		class := g.names.Get(f.ClassRef)
		frag.Storage = CType(g.typeName(class))
		frag.Param = frag.Storage
		frag.Owner = InlineValue()
		frag.Noun = "a #" + g.typeName(class)
		frag.FromExternal = fmt.Sprintf("%s (%s)", g.typeName(class), getter)
		frag.ToExternal = fmt.Sprintf("static_cast<%s> (%s)", g.qualifiedExternalType(class), self)

	default:
		return nil, &schema.UnsupportedFieldKindError{Kind: f.Kind.String()}
	}

	return frag, nil
}

func withArticle(noun string) string {
	if noun == "" {
		return "a value"
	}

	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	default:
		return "a " + noun
	}
}
