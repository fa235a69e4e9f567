// Package gen provides deterministic generation of GObject boxed types
// from a validated schema.
//
// Generation approach uses text/template over structured fragments:
// every field is first projected through the strategy table into a
// FieldFragments value, and only then are the declaration and
// implementation documents assembled.
//
// Codegen patterns per field kind:
//   - Inline storage with bitwise copy (scalars, enumerations)
//   - Owned text with g_strdup / g_free (strings)
//   - Owned handles with the nested type's copy / unref (objects)
//   - Marshaling to and from the external SDK model class
package gen
