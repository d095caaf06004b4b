package envcheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Valid:               false,
		MissingVars:         []string{"API_KEY"},
		PresentVars:         []string{"DATABASE_URL", "PORT"},
		OptionalPresentVars: []string{"DEBUG"},
		OptionalMissingVars: []string{"LOG_LEVEL", "SENTRY_DSN"},
		ValidationErrors:    []string{"Variable PORT must be <= 65535"},
		TransformedVars: map[string]any{
			"DATABASE_URL": "postgresql://localhost/db",
			"PORT":         float64(70000),
			"DEBUG":        true,
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, "[APP]", sampleResult()))

	want := "[APP] Environment variables summary:\n" +
		"  Required variables present: 2/3\n" +
		"  Optional variables present: 1/3\n" +
		"  Missing variables: API_KEY\n" +
		"  Missing optional variables: LOG_LEVEL, SENTRY_DSN\n" +
		"  Validation errors:\n" +
		"    - Variable PORT must be <= 65535\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSummary_AllPresent(t *testing.T) {
	var buf bytes.Buffer
	res := &Result{Valid: true, PresentVars: []string{"A"}}
	require.NoError(t, WriteSummary(&buf, DefaultErrorPrefix, res))

	assert.Equal(t, "[ENV-CHECKER] Environment variables summary:\n"+
		"  Required variables present: 1/1\n"+
		"  Optional variables present: 0/0\n", buf.String())
}

func TestWriteSummary_NilResult(t *testing.T) {
	assert.Error(t, WriteSummary(&bytes.Buffer{}, "", nil))
}

func TestDumpResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DumpResult(&buf, sampleResult()))

	assert.Equal(t, "DATABASE_URL: postgresql://localhost/db\nDEBUG: true\nPORT: 70000\n", buf.String())
}

func TestDumpResult_TextWithSourcesAndRedaction(t *testing.T) {
	prov := &Provenance{}
	prov.add("DATABASE_URL", "file:.env")

	var buf bytes.Buffer
	require.NoError(t, DumpResult(&buf, sampleResult(), WithSources(prov), WithRedact("DATABASE_URL")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"DATABASE_URL: ***redacted*** (source: file:.env)",
		"DEBUG: true (source: env)",
		"PORT: 70000 (source: env)",
	}, lines)
}

func TestDumpResult_JSON(t *testing.T) {
	res := sampleResult()
	res.TransformedVars["RATIO"] = math.NaN()
	res.TransformedVars["ORIGINS"] = []string{"a.com", "b.com"}

	var buf bytes.Buffer
	require.NoError(t, DumpResult(&buf, res, AsJSON(), WithIndent(""), WithRedact("DATABASE_URL")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"DATABASE_URL": RedactedValue,
		"DEBUG":        true,
		"PORT":         float64(70000),
		"RATIO":        "NaN",
		"ORIGINS":      []any{"a.com", "b.com"},
	}, got)
}

func TestDumpResult_JSONWithSources(t *testing.T) {
	prov := &Provenance{}
	prov.add("PORT", "file:.env.local")

	var buf bytes.Buffer
	require.NoError(t, DumpResult(&buf, sampleResult(), AsJSON(), WithSources(nil), WithSources(prov)))

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "file:.env.local", got["PORT"]["source"])
	assert.Equal(t, "env", got["DEBUG"]["source"])
	assert.Equal(t, true, got["DEBUG"]["value"])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpResult_WriteError(t *testing.T) {
	err := DumpResult(failingWriter{}, sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = WriteSummary(failingWriter{}, "", sampleResult())
	require.Error(t, err)
}

func TestDumpResult_NilResult(t *testing.T) {
	assert.Error(t, DumpResult(&bytes.Buffer{}, nil))
}
