package gen

import (
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
)

// Function body templates. Each renders one block without a trailing
// newline; blocks are joined with a blank line.
var (
	constructorTmpl = template.Must(template.New("constructor").Parse(`{{if .Public}}/**
 * {{.Proto.Name}}:
 *
 * Creates a new #{{.Type}}.
 *
 * Returns: (transfer full): A newly created #{{.Type}}
 */
{{end}}{{.Proto.Definition}}
{
  {{.Type}} *self = g_slice_new0 ({{.Type}});
  self->ref_count = 1;

  return self;
}`))

	setterTmpl = template.Must(template.New("setter").Parse(`/**
 * {{.Proto.Name}}:
 * @self: the #{{.Type}}
 * {{.Field.ParamDoc}}
 *
 * See #{{.Type}}.{{.Field.Names.Snake}}.
 */
{{.Proto.Definition}}
{
{{range .Field.SetterStatements}}{{if .}}  {{.}}{{end}}
{{end}}}`))

	copyTmpl = template.Must(template.New("copy").Parse(`/**
 * {{.Proto.Name}}:
 * @self: a #{{.Type}}
 *
 * Makes a deep copy of a #{{.Type}}.
 *
 * Returns: (transfer full): A #{{.Type}} with the same contents
 *  as @self
 */
{{.Proto.Definition}}
{
  g_return_val_if_fail (self, NULL);
  g_return_val_if_fail (self->ref_count, NULL);

  {{.Type}} *copy = {{.New}} ();
{{range .Body}}  {{.}}
{{end}}
  return copy;
}`))

	freeTmpl = template.Must(template.New("free").Parse(`{{.Proto.Definition}}
{
  g_assert (self);
  g_assert_cmpint (self->ref_count, ==, 0);

{{range .Body}}  {{.}}
{{end}}{{if .Body}}
{{end}}  g_slice_free ({{.Type}}, self);
}`))

	refTmpl = template.Must(template.New("ref").Parse(`/**
 * {{.Proto.Name}}:
 * @self: A #{{.Type}}
 *
 * Increments the reference count of @self by one.
 *
 * Returns: (transfer none): @self
 */
{{.Proto.Definition}}
{
  g_return_val_if_fail (self, NULL);
  g_return_val_if_fail (self->ref_count, NULL);

  g_atomic_int_inc (&self->ref_count);

  return self;
}`))

	unrefTmpl = template.Must(template.New("unref").Parse(`/**
 * {{.Proto.Name}}:
 * @self: (transfer none): A #{{.Type}}
 *
 * Decrements the reference count of @self by one, freeing the structure when
 * the reference count reaches zero.
 */
{{.Proto.Definition}}
{
  g_return_if_fail (self);
  g_return_if_fail (self->ref_count);

  if (g_atomic_int_dec_and_test (&self->ref_count))
    {{.Free}} (self);
}`))

	fromExternalTmpl = template.Must(template.New("from_internal").Parse(`{{.Proto.Definition}}
{
  {{.Type}} *retval = {{.New}} ();
{{range .Body}}  {{.}}
{{end}}  return retval;
}`))

	toExternalTmpl = template.Must(template.New("to_internal").Parse(`{{.Proto.Definition}}
{
  return {{.External}} ()
{{range .Body}}    {{.}}
{{end}}    ;
}`))

	toExternalGuardedTmpl = template.Must(template.New("to_internal_guarded").Parse(`{{.Proto.Definition}}
{
  {{.External}} retval;
{{range .Body}}  {{.}}
{{end}}
  return retval;
}`))

	structTmpl = template.Must(template.New("struct").Parse(`/**
{{range .Doc}}{{.}}
{{end}} */
struct _{{.Type}}
{
{{range .Members}}  {{.}}
{{end}}{{if .Members}}
{{end}}  /*< private >*/
  unsigned ref_count;
};`))
)

// blockData is the data handed to the body templates.
type blockData struct {
	Type     string
	External string
	New      string
	Free     string
	Public   bool
	Proto    Prototype
	Field    *FieldFragments
	Body     []string
	Doc      []string
	Members  []string
}

func execute(tmpl *template.Template, data *blockData) (string, error) {
	var b strings.Builder

	err := tmpl.Execute(&b, data)
	if err != nil {
		return "", errors.Wrapf(err, "executing %s template", tmpl.Name())
	}

	return b.String(), nil
}

// blockWriter joins rendered blocks with a blank line and keeps the first
// template error.
type blockWriter struct {
	blocks []string
	err    error
}

func (w *blockWriter) add(blocks ...string) {
	w.blocks = append(w.blocks, blocks...)
}

func (w *blockWriter) render(tmpl *template.Template, data *blockData) {
	if w.err != nil {
		return
	}

	s, err := execute(tmpl, data)
	if err != nil {
		w.err = err
		return
	}

	w.blocks = append(w.blocks, s)
}

func (w *blockWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	return []byte(strings.Join(w.blocks, "\n\n") + "\n"), nil
}
