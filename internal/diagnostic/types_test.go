package diagnostic

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Err())

	d.AddWarning("unknown_annotation", "Token", `annotation "weird" is not recognized`)
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Err())

	d.AddError("missing_doc", "Token", errBoom)
	require.True(t, d.HasErrors())
	assert.ErrorIs(t, d.Err(), errBoom)

	other := errors.New("second")
	d.AddError("missing_type", "Other", other)

	err := d.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "boom", err.Error())
	assert.Contains(t, errors.FlattenDetails(err), "[missing_type] second")

	d.AddError("missing_fields", "", errors.New("third"))
	assert.Equal(t, []string{"[missing_type] second", "[missing_fields] third"}, errors.GetAllDetails(d.Err()))
}

func TestDiagnostic_String(t *testing.T) {
	w := Diagnostic{Severity: DiagnosticWarning, Code: "unknown_annotation", Field: "Token", Message: "not recognized"}
	assert.Equal(t, "Token: [unknown_annotation] not recognized", w.String())

	e := Diagnostic{Severity: DiagnosticError, Code: "missing_doc", Field: "Token", Message: "boom", Err: errBoom}
	assert.Equal(t, "[missing_doc] boom", e.String())

	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
