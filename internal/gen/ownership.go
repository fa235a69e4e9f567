package gen

import (
	"fmt"
)

type ownershipKind int

const (
	ownInline ownershipKind = iota
	ownText
	ownHandle
)

// Ownership describes how the boxed type holds a field's storage. Owned
// storage is never aliased: it is released before being replaced and
// duplicated on every assignment.
type Ownership struct {
	kind ownershipKind
	free string
	dup  string
}

// InlineValue is storage copied bitwise with no release step.
func InlineValue() Ownership {
	return Ownership{kind: ownInline}
}

// OwnedText is heap text duplicated with g_strdup and released with g_free.
func OwnedText() Ownership {
	return Ownership{kind: ownText, free: "g_free", dup: "g_strdup"}
}

// OwnedHandle is a boxed handle deep-copied with copyFn and released with
// unrefFn.
func OwnedHandle(unrefFn, copyFn string) Ownership {
	return Ownership{kind: ownHandle, free: unrefFn, dup: copyFn}
}

// IsOwned reports whether the storage needs releasing.
func (o Ownership) IsOwned() bool {
	return o.kind != ownInline
}

func (o Ownership) String() string {
	switch o.kind {
	case ownText:
		return "owned text"
	case ownHandle:
		return "owned handle"
	default:
		return "inline"
	}
}

// Release returns the statements releasing lvalue, or nil for inline storage.
func (o Ownership) Release(lvalue string) []string {
	if !o.IsOwned() {
		return nil
	}

	return []string{fmt.Sprintf("g_clear_pointer (&%s, %s);", lvalue, o.free)}
}

// Duplicate returns the statements storing an independent copy of src in
// dst. A guarded duplicate leaves dst untouched when src is NULL.
func (o Ownership) Duplicate(dst, src string, guarded bool) []string {
	if !o.IsOwned() {
		return []string{fmt.Sprintf("%s = %s;", dst, src)}
	}

	assign := fmt.Sprintf("%s = %s (%s);", dst, o.dup, src)
	if !guarded {
		return []string{assign}
	}

	return []string{"if (" + src + ")", "  " + assign}
}

// Replace releases the current value of dst and then duplicates src into it.
func (o Ownership) Replace(dst, src string, guarded bool) []string {
	return append(o.Release(dst), o.Duplicate(dst, src, guarded)...)
}
