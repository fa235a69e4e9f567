package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"boxgen/internal/gen"
	"boxgen/internal/logger"
	"boxgen/internal/schema"
)

const sessionSchema = "../gen/testdata/session.yaml"

func newDriver(stdin string) (*Driver, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(gen.DefaultGeneratorConfig(), zap.New(core).Sugar(), strings.NewReader(stdin)), logs
}

func newQuietDriver(stdin string) *Driver {
	return New(gen.DefaultGeneratorConfig(), logger.Nop(), strings.NewReader(stdin))
}

func TestDriver_Generate(t *testing.T) {
	d, logs := newDriver("")
	out := t.TempDir()

	written, err := d.Generate(sessionSchema, out)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "cog-session.h"), filepath.Join(out, "cog-session.cpp")}, written)

	for _, name := range []string{"session.h", "session.cpp"} {
		want, err := os.ReadFile(filepath.Join("..", "gen", "testdata", name+".golden"))
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(out, "cog-"+name))
		require.NoError(t, err)

		assert.Equal(t, string(want), string(got))
	}

	assert.Equal(t, 2, logs.FilterMessage("wrote file").Len())
}

func TestDriver_Generate_Stdin(t *testing.T) {
	data, err := os.ReadFile(sessionSchema)
	require.NoError(t, err)

	d := newQuietDriver(string(data))
	out := t.TempDir()

	written, err := d.Generate(StdinName, out)
	require.NoError(t, err)
	assert.Len(t, written, 2)
}

func TestDriver_Generate_InvalidSchemaWritesNothing(t *testing.T) {
	d := newQuietDriver(`
type: Session
doc: d
fields:
  - name: Token
    type: blob
    doc: d
`)
	out := t.TempDir()

	written, err := d.Generate(StdinName, out)
	require.Error(t, err, spew.Sdump(written))
	assert.Nil(t, written)

	var sve *schema.SchemaValidationError
	require.True(t, errors.As(err, &sve))
	assert.Equal(t, "Token", sve.Field)

	var uk *schema.UnsupportedFieldKindError
	assert.True(t, errors.As(err, &uk))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDriver_Generate_MissingInput(t *testing.T) {
	d := newQuietDriver("")

	_, err := d.Generate(filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading schema")
}

func TestDriver_Load_LogsWarnings(t *testing.T) {
	d, logs := newDriver(`
type: Session
doc: d
fields:
  - name: Token
    type: string
    doc: d
    annotations: [nullable, transfer full]
`)

	s, err := d.Load(StdinName)
	require.NoError(t, err)
	assert.Equal(t, "Session", s.Name)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1, spew.Sdump(warns))
	assert.Equal(t, "unknown_annotation", warns[0].ContextMap()["code"])
	assert.Equal(t, "Token", warns[0].ContextMap()["field"])
}

func TestDriver_Check(t *testing.T) {
	d := newQuietDriver(`
type: CodeDeliveryDetails
doc: d
from_internal: true
fields:
  - name: Destination
    type: string
    doc: d
    setter: true
    annotations: nullable
  - name: Attempts
    type: long
    doc: d
  - name: Medium
    type: enum
    class: DeliveryMedium
    doc: d
`)

	var buf bytes.Buffer
	require.NoError(t, d.Check(StdinName, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5, buf.String())

	assert.Equal(t, "CodeDeliveryDetails: 3 field(s), 1 setter(s), constructor internal, from_internal true, to_internal false", lines[0])
	assert.Equal(t, []string{"FIELD", "KIND", "STORAGE", "OWNERSHIP", "NULLABLE", "SETTER"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"destination", "string", "char", "*", "owned", "text", "true", "true"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"attempts", "scalar", "gint64", "inline", "false", "false"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"medium", "enumerated", "CogDeliveryMedium", "inline", "false", "false"}, strings.Fields(lines[4]))
}
