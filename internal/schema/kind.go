package schema

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the closed classification of a field's data.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	KindScalar // scalar
	KindString // string
	KindObject // object
	KindEnum   // enumerated

	// KindTotal is the number of valid kinds plus the invalid zero value.
	KindTotal = int(iota)
)

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, KindTotal-1)
	for k := KindScalar; int(k) < KindTotal; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// IsOwned reports whether the boxed type owns heap storage for fields of
// this kind.
func (k Kind) IsOwned() bool {
	return k == KindString || k == KindObject
}

// NeedsClass reports whether fields of this kind reference another type.
func (k Kind) NeedsClass() bool {
	return k == KindObject || k == KindEnum
}

// AllowsNullable reports whether the nullable annotation is meaningful.
func (k Kind) AllowsNullable() bool {
	return k.IsOwned()
}

// ScalarType is the C storage type of a scalar field.
type ScalarType int

const (
	ScalarNone ScalarType = iota
	ScalarInt
	ScalarInt64
	ScalarDouble
	ScalarBool
)

// CType returns the C type name used to store the scalar.
func (s ScalarType) CType() string {
	switch s {
	case ScalarInt:
		return "int"
	case ScalarInt64:
		return "gint64"
	case ScalarDouble:
		return "double"
	case ScalarBool:
		return "gboolean"
	default:
		return ""
	}
}

// Noun returns the word used for the scalar in documentation.
func (s ScalarType) Noun() string {
	switch s {
	case ScalarInt, ScalarInt64:
		return "integer"
	case ScalarDouble:
		return "double"
	case ScalarBool:
		return "boolean"
	default:
		return ""
	}
}

// ParseKind maps the type key of a schema field to its kind and, for
// scalars, its storage type.
func ParseKind(name string) (Kind, ScalarType, bool) {
	switch name {
	case "integer":
		return KindScalar, ScalarInt, true
	case "long":
		return KindScalar, ScalarInt64, true
	case "double":
		return KindScalar, ScalarDouble, true
	case "bool", "boolean":
		return KindScalar, ScalarBool, true
	case "string":
		return KindString, ScalarNone, true
	case "object":
		return KindObject, ScalarNone, true
	case "enum", "enumerated":
		return KindEnum, ScalarNone, true
	default:
		return 0, ScalarNone, false
	}
}
