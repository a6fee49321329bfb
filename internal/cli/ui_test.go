package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestStatusPrinters(t *testing.T) {
	buf := captureStdout(t)

	printSuccess("Rendered %d slide(s)", 2)
	printWarning("%s: logos not defined", "Main")
	printFile("out/deck_Main.svg")
	printKeyValue("Entries", "3")

	out := buf.String()
	assert.Contains(t, out, "✓ Rendered 2 slide(s)")
	assert.Contains(t, out, "! Main: logos not defined")
	assert.Contains(t, out, "  → out/deck_Main.svg")
	assert.Contains(t, out, "Entries      3")
}

func TestSlideSummary(t *testing.T) {
	tests := []struct {
		name    string
		missing int
		cached  bool
		want    string
	}{
		{"fresh", 0, false, "  Main · 4 logos · fresh"},
		{"cached with missing", 2, true, "  Main · 4 logos · 2 missing · cached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slideSummary("Main", 4, tt.missing, tt.cached)
			assert.Equal(t, tt.want, strings.TrimRight(got, " "))
		})
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, errors.New(errors.ErrCodeInvalidConfig, "variant %q: duplicate name", "Main"))
	assert.Contains(t, buf.String(), `✗ INVALID_CONFIG: variant "Main": duplicate name`)
	assert.Contains(t, buf.String(), "fix the document")

	buf.Reset()
	ReportError(&buf, errors.New(errors.ErrCodeInvalidInput, "no input"))
	assert.NotContains(t, buf.String(), "fix the document")
}
