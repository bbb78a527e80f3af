package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", quiet: true, expected: OutputIssues},
		{name: "explicit issues format", formatFlag: "issues", expected: OutputIssues},
		{name: "explicit summary format", formatFlag: "summary", expected: OutputSummary},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "unknown format falls back to issues", formatFlag: "xml", expected: OutputIssues},
		{name: "default format is issues", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	result := Result{
		FilesScanned: 10,
		ClassNames:   42,
		Issues:       sampleIssues(),
		Warnings:     []string{"src/broken.tsx: permission denied"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)

	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Warnings)
	assert.Equal(t, 10, output.Summary.FilesScanned)
	assert.Equal(t, 42, output.Summary.ClassNames)

	require.Len(t, output.Issues, 2)
	assert.Equal(t, "src/b.tsx", output.Issues[0].File)
	assert.Equal(t, 3, output.Issues[0].Line)
	assert.Equal(t, 12, output.Issues[0].Column)
	assert.Equal(t, "warning", output.Issues[0].Severity)
	assert.Equal(t, "skribble", output.Issues[0].Linter)
	assert.Contains(t, output.Issues[0].Source, "c.sm")

	assert.Equal(t, []string{"src/broken.tsx: permission denied"}, output.Warnings)
}

func TestBuildJSONOutput_Empty(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	output := buildJSONOutput(Result{}, now)

	assert.Equal(t, "2026-01-02T03:04:05Z", output.Timestamp)
	assert.NotNil(t, output.Issues)
	assert.NotNil(t, output.Warnings)
	assert.Zero(t, output.Summary.TotalIssues)
}

func TestWriteOutput(t *testing.T) {
	result := Result{FilesScanned: 2, ClassNames: 5, Issues: sampleIssues(), Warnings: []string{"skipped"}}

	tests := []struct {
		name     string
		format   OutputFormat
		contains []string
		excludes []string
	}{
		{
			name:     "issues",
			format:   OutputIssues,
			contains: []string{"src/a.tsx:7:3:", "2 issues"},
			excludes: []string{"Skribble Statistics"},
		},
		{
			name:     "summary",
			format:   OutputSummary,
			contains: []string{"Skribble Statistics", "Class Names:          5", "• skipped"},
			excludes: []string{"src/a.tsx:7:3:"},
		},
		{
			name:     "full",
			format:   OutputFull,
			contains: []string{"src/a.tsx:7:3:", "Skribble Statistics", "Invalid Class Names:  1"},
		},
		{
			name:     "json",
			format:   OutputJSON,
			contains: []string{`"files_scanned": 2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			var buf bytes.Buffer
			WriteOutput(&buf, result, tt.format, Options{})
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
