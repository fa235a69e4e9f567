package gen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"boxgen/internal/naming"
	"boxgen/internal/schema"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Prefix is the title-case namespace of generated types (Cog -> CogSession,
	// cog_session_new, COG_TYPE_SESSION).
	Prefix string
	// IncludeDir is the directory generated headers are included from.
	IncludeDir string
	// ExternalNamespace is the C++ namespace of the external model classes.
	ExternalNamespace string
	// ExternalHeaderDir is the include directory of the external model headers.
	ExternalHeaderDir string
	// ExternalTypeSuffix is appended to a type name to get its external class.
	ExternalTypeSuffix string
	// DocWidth is the maximum width of wrapped documentation lines.
	DocWidth int
}

// DefaultGeneratorConfig returns the default generator configuration,
// targeting the AWS SDK Cognito Identity Provider model.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Prefix:             "Cog",
		IncludeDir:         "cog",
		ExternalNamespace:  "Aws::CognitoIdentityProvider::Model",
		ExternalHeaderDir:  "aws/cognito-idp/model",
		ExternalTypeSuffix: "Type",
		DocWidth:           80,
	}
}

var prefixRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// minDocWidth leaves room for the comment prefix and a short word.
const minDocWidth = 20

// Validate checks that the configuration can produce valid identifiers.
func (c GeneratorConfig) Validate() error {
	if !prefixRe.MatchString(c.Prefix) {
		return errors.Newf("prefix %q is not a title-case identifier", c.Prefix)
	}

	if c.DocWidth < minDocWidth {
		return errors.Newf("doc width %d is below the minimum of %d", c.DocWidth, minDocWidth)
	}

	return nil
}

// Generator generates boxed type sources from a TypeSchema. A Generator is
// reusable across runs but not safe for concurrent use.
type Generator struct {
	config GeneratorConfig
	prefix naming.Forms
	// names caches naming forms for the current pass only.
	names naming.Cache
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		prefix: naming.NewForms(config.Prefix),
	}
}

// GeneratedFile represents one generated source document.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "cog-session.h").
	Filename string
	// Content is the document text.
	Content []byte
}

// Artifact is the pair of documents produced by one generation run.
type Artifact struct {
	Declaration    GeneratedFile
	Implementation GeneratedFile
}

// Files returns the documents in write order.
func (a *Artifact) Files() []GeneratedFile {
	return []GeneratedFile{a.Declaration, a.Implementation}
}

// Generate renders the declaration and implementation documents for s.
// Every field is projected through the strategy table before any text is
// produced, so a failing field yields no output at all.
func (g *Generator) Generate(s *schema.TypeSchema) (*Artifact, error) {
	if err := g.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generator configuration")
	}

	g.names.Reset()

	frags, err := g.Fragments(s)
	if err != nil {
		return nil, err
	}

	r := &renderer{g: g, s: s, frags: frags, self: g.names.Get(s.Name)}

	header, err := r.declaration()
	if err != nil {
		return nil, errors.Wrapf(err, "rendering declaration of %s", s.Name)
	}

	source, err := r.implementation()
	if err != nil {
		return nil, errors.Wrapf(err, "rendering implementation of %s", s.Name)
	}

	base := g.prefix.Kebab + "-" + r.self.Kebab

	return &Artifact{
		Declaration:    GeneratedFile{Filename: base + ".h", Content: header},
		Implementation: GeneratedFile{Filename: base + ".cpp", Content: source},
	}, nil
}

// Fragments projects every field of s through the strategy table, in
// schema order.
func (g *Generator) Fragments(s *schema.TypeSchema) ([]*FieldFragments, error) {
	frags := make([]*FieldFragments, 0, len(s.Fields))

	for i := range s.Fields {
		f := &s.Fields[i]

		if err := f.Validate(); err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Name)
		}

		frag, err := g.fieldFragments(f)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Name)
		}

		frags = append(frags, frag)
	}

	return frags, nil
}

// typeName returns the generated C type name (CogSession).
func (g *Generator) typeName(f naming.Forms) string {
	return g.prefix.Camel + f.Camel
}

// symbol returns a generated function name (cog_session_copy).
func (g *Generator) symbol(f naming.Forms, suffix string) string {
	return g.prefix.Snake + "_" + f.Snake + "_" + suffix
}

// externalType returns the external model class name (SessionType).
func (g *Generator) externalType(f naming.Forms) string {
	return f.Camel + g.config.ExternalTypeSuffix
}

// qualifiedExternalType returns the namespaced external model class name.
func (g *Generator) qualifiedExternalType(f naming.Forms) string {
	if g.config.ExternalNamespace == "" {
		return g.externalType(f)
	}

	return g.config.ExternalNamespace + "::" + g.externalType(f)
}

// renderer assembles the two documents of one run.
type renderer struct {
	g     *Generator
	s     *schema.TypeSchema
	frags []*FieldFragments
	self  naming.Forms
}

func (r *renderer) typeName() string {
	return r.g.typeName(r.self)
}

func (r *renderer) symbol(suffix string) string {
	return r.g.symbol(r.self, suffix)
}

func (r *renderer) selfParam() Param {
	return Param{Type: CType(r.typeName() + " *"), Name: "self"}
}

func (r *renderer) constructor() Prototype {
	p := Prototype{Return: CType(r.typeName() + " *"), Name: r.symbol("new")}
	if !r.s.PublicConstructor() {
		p.Static = true
		p.Name = "_" + p.Name
	}

	return p
}

func (r *renderer) setter(f *FieldFragments) Prototype {
	return Prototype{
		Return: "void",
		Name:   r.symbol("set_" + f.Names.Snake),
		Params: []Param{r.selfParam(), {Type: f.Param, Name: f.Names.Snake}},
	}
}

func (r *renderer) lifecycle() (copyFn, refFn, unrefFn, freeFn Prototype) {
	ptr := CType(r.typeName() + " *")
	self := []Param{r.selfParam()}

	copyFn = Prototype{Return: ptr, Name: r.symbol("copy"), Params: self}
	refFn = Prototype{Return: ptr, Name: r.symbol("ref"), Params: self}
	unrefFn = Prototype{Return: "void", Name: r.symbol("unref"), Params: self}
	freeFn = Prototype{Static: true, Return: "void", Name: r.symbol("free"), Params: self}

	return copyFn, refFn, unrefFn, freeFn
}

func (r *renderer) available() string {
	return r.g.prefix.UpperSnake + "_AVAILABLE_IN_ALL"
}

func (r *renderer) includePath(name string) string {
	if r.g.config.IncludeDir == "" {
		return name
	}

	return r.g.config.IncludeDir + "/" + name
}

// declaration renders the header document.
func (r *renderer) declaration() ([]byte, error) {
	var w blockWriter

	w.add(strings.Join(withHead([]string{
		"#pragma once",
		"",
		"#include <glib-object.h>",
		"",
		fmt.Sprintf("#include %q", r.includePath(r.g.prefix.Kebab+"-macros.h")),
	}, r.s.DeclarationHead), "\n"))

	w.add(
		"G_BEGIN_DECLS",
		fmt.Sprintf("#define %s_TYPE_%s (%s ())", r.g.prefix.UpperSnake, r.self.UpperSnake, r.symbol("get_type")),
		fmt.Sprintf("typedef struct _%[1]s %[1]s;", r.typeName()),
	)

	w.render(structTmpl, &blockData{
		Type:    r.typeName(),
		Doc:     r.structDoc(),
		Members: r.members(),
	})

	decls := []Prototype{{Return: "GType", Name: r.symbol("get_type"), Attribute: "G_GNUC_CONST"}}
	if r.s.PublicConstructor() {
		decls = append(decls, r.constructor())
	}

	for _, f := range r.frags {
		if f.Field.HasSetter {
			decls = append(decls, r.setter(f))
		}
	}

	copyFn, refFn, unrefFn, _ := r.lifecycle()
	decls = append(decls, copyFn, refFn, unrefFn)

	for _, p := range decls {
		w.add(r.available() + "\n" + p.Declaration())
	}

	w.add(
		fmt.Sprintf("G_DEFINE_AUTOPTR_CLEANUP_FUNC (%s, %s)", r.typeName(), unrefFn.Name),
		"G_END_DECLS",
	)

	return w.bytes()
}

// structDoc returns the gtk-doc lines of the struct comment, without the
// opening and closing markers.
func (r *renderer) structDoc() []string {
	width := r.g.config.DocWidth
	lines := []string{docPrefix + r.typeName() + ":"}

	for _, f := range r.frags {
		lines = append(lines, docLines(fmt.Sprintf("@%s: %s", f.Names.Snake, f.Field.Doc), width)...)
	}

	lines = append(lines, " *")

	return append(lines, docLines(r.s.Doc, width)...)
}

func (r *renderer) members() []string {
	out := make([]string, 0, len(r.frags))
	for _, f := range r.frags {
		out = append(out, f.Member())
	}

	return out
}

// implementation renders the source document.
func (r *renderer) implementation() ([]byte, error) {
	var w blockWriter

	external := r.g.externalType(r.self)
	marshaling := r.s.GeneratesMarshaling()

	var includes []string
	if marshaling {
		includes = append(includes,
			fmt.Sprintf("#include <%s/%s.h>", r.g.config.ExternalHeaderDir, external), "")
	}

	includes = append(includes,
		fmt.Sprintf("#include %q", r.includePath(r.g.prefix.Kebab+"-"+r.self.Kebab+".h")))

	w.add(strings.Join(withHead(includes, r.s.ImplementationHead), "\n"))

	if marshaling {
		w.add(fmt.Sprintf("using %s;", r.g.qualifiedExternalType(r.self)))
	}

	copyFn, refFn, unrefFn, freeFn := r.lifecycle()
	ctor := r.constructor()

	w.add(alignContinuation("G_DEFINE_BOXED_TYPE (", []string{
		r.typeName() + ", " + r.g.prefix.Snake + "_" + r.self.Snake,
		refFn.Name + ", " + unrefFn.Name,
	}, ")"))

	w.render(constructorTmpl, &blockData{Type: r.typeName(), Public: r.s.PublicConstructor(), Proto: ctor})

	for _, f := range r.frags {
		if f.Field.HasSetter {
			w.render(setterTmpl, &blockData{Type: r.typeName(), Proto: r.setter(f), Field: f})
		}
	}

	var copyBody, freeBody []string

	for _, f := range r.frags {
		copyBody = append(copyBody, f.CopyStatements()...)
		freeBody = append(freeBody, f.ReleaseStatements()...)
	}

	w.render(copyTmpl, &blockData{Type: r.typeName(), Proto: copyFn, New: ctor.Name, Body: copyBody})
	w.render(freeTmpl, &blockData{Type: r.typeName(), Proto: freeFn, Body: freeBody})
	w.render(refTmpl, &blockData{Type: r.typeName(), Proto: refFn})
	w.render(unrefTmpl, &blockData{Type: r.typeName(), Proto: unrefFn, Free: freeFn.Name})

	if r.s.GenerateFromExternal {
		var body []string
		for _, f := range r.frags {
			body = append(body, f.MarshalFromStatement())
		}

		w.render(fromExternalTmpl, &blockData{
			Type: r.typeName(),
			New:  ctor.Name,
			Body: body,
			Proto: Prototype{
				Return: CType(r.typeName() + " *"),
				Name:   "_" + r.symbol("from_internal"),
				Params: []Param{{Type: CType("const " + external + "&"), Name: "internal"}},
			},
		})
	}

	if r.s.GenerateToExternal {
		guarded := r.anyExternalGuard()

		tmpl := toExternalTmpl
		if guarded {
			tmpl = toExternalGuardedTmpl
		}

		var body []string

		for _, f := range r.frags {
			if guarded {
				body = append(body, f.ToExternalStatements()...)
			} else {
				body = append(body, f.WithCall())
			}
		}

		w.render(tmpl, &blockData{
			Type:     r.typeName(),
			External: external,
			Body:     body,
			Proto: Prototype{
				Return: CType(external),
				Name:   "_" + r.symbol("to_internal"),
				Params: []Param{r.selfParam()},
			},
		})
	}

	return w.bytes()
}

// anyExternalGuard reports whether some field may be NULL when marshaled to
// the external model. The builder chain is then replaced by statements.
func (r *renderer) anyExternalGuard() bool {
	for _, f := range r.frags {
		if f.NeedsExternalGuard() {
			return true
		}
	}

	return false
}

// withHead appends the verbatim head text, if any, as extra lines.
func withHead(lines []string, head string) []string {
	head = strings.TrimRight(head, "\n")
	if head == "" {
		return lines
	}

	return append(lines, strings.Split(head, "\n")...)
}
