package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())
	assert.True(t, d.IsValid())

	d.AddWarning(CodeNothingToPreload, "asset field is never preloaded", "Shape::Sprite", "0")
	require.NoError(t, d.Error())

	d.AddError(CodeConflictingPolicy, "asset and entity are mutually exclusive", "Shape::Icon", "target")
	d.AddError(CodeMissingName, "variant without a name", "Shape", "")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"[Shape::Icon] field `target`: [conflicting_policy] asset and entity are mutually exclusive; "+
			"[Shape]: [missing_name] variant without a name",
		err.Error())
	assert.Equal(t, []string{CodeConflictingPolicy, CodeMissingName}, d.Codes())
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("x", "info", "", "")
	b.AddError("y", "error", "", "")
	b.AddWarning("z", "warning", "", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticWarning, all[1].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)
	assert.Equal(t, "warning", all[1].Severity.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
