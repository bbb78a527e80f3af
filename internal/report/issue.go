// Package report formats lint results: golangci-lint style issue lists for
// terminals and CI, plus statistics and a JSON export for tooling.
package report

// Issue represents a single lint violation in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "skribble"
	Text        string   `json:"Text"`        // "invalid class name \"sm:md:p::$px\": ..."
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.tsx"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 23 (1-based, start of the class name chain)
}

// LinterName is reported as FromLinter for every issue.
const LinterName = "skribble"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueInvalidClassName    = "invalid class name %q: %v"
	IssueIncompleteClassName = "class name %q has no value and produces no CSS"
)

// Result is everything a reporter prints.
type Result struct {
	FilesScanned   int
	ClassNames     int // valid class names found
	Issues         []Issue
	Warnings       []string
	TruncatedCount int
}

// Errors returns the number of error severity issues.
func (r Result) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning severity issues.
func (r Result) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
