package gen

import (
	"strings"
)

// CType is a C type as written before a declarator, e.g. "int",
// "const char *" or "CogSession *".
type CType string

// Declare returns the declaration of name with this type. Pointer types
// bind the star to the name ("char *token").
func (t CType) Declare(name string) string {
	s := string(t)
	if strings.HasSuffix(s, "*") {
		return s + name
	}

	return s + " " + name
}

// Param is one function parameter.
type Param struct {
	Type CType
	Name string
}

func (p Param) String() string {
	return p.Type.Declare(p.Name)
}

// Prototype is a C function signature.
type Prototype struct {
	Static    bool
	Return    CType
	Name      string
	Params    []Param
	Attribute string // e.g. G_GNUC_CONST, declarations only
}

// Declaration renders the prototype as a header declaration, return type and
// name on one line:
//
//	void cog_session_set_token (CogSession *self,
//	                            const char *token);
func (p Prototype) Declaration() string {
	decl := alignContinuation(p.Return.Declare(p.Name)+" (", p.paramStrings(), ")")
	if p.Attribute != "" {
		decl += " " + p.Attribute
	}

	return decl + ";"
}

// Definition renders the prototype as the head of a function definition,
// return type on its own line:
//
//	void
//	cog_session_set_token (CogSession *self,
//	                       const char *token)
func (p Prototype) Definition() string {
	ret := string(p.Return)
	if p.Static {
		ret = "static " + ret
	}

	return ret + "\n" + alignContinuation(p.Name+" (", p.paramStrings(), ")")
}

func (p Prototype) paramStrings() []string {
	out := make([]string, 0, len(p.Params))
	for _, prm := range p.Params {
		out = append(out, prm.String())
	}

	return out
}

// alignContinuation renders head followed by a comma-separated argument
// list, one argument per line. Continuation lines are padded to the column
// right after head, which ends with the opening parenthesis. An empty list
// renders as (void).
func alignContinuation(head string, args []string, closing string) string {
	if len(args) == 0 {
		return head + "void" + closing
	}

	pad := strings.Repeat(" ", len(head))

	var b strings.Builder

	for i, arg := range args {
		if i == 0 {
			b.WriteString(head)
		} else {
			b.WriteString(",\n")
			b.WriteString(pad)
		}

		b.WriteString(arg)
	}

	b.WriteString(closing)

	return b.String()
}
