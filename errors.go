package listingqa

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Check failures
	CodeSchemaMismatch     = "schema_mismatch"
	CodeUnexpectedCategory = "unexpected_category"
	CodeMissingCategory    = "missing_category"
	CodeOutOfBounds        = "out_of_bounds"
	CodeDistributionDrift  = "distribution_drift"
	// Loading failures (cells that cannot be decoded into a Listing)
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	// Missing collaborator (dataset or parameter not supplied to a check)
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single check violation.
type Issue struct {
	Path    string // JSON Pointer into the dataset (for example: /rows/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Rule records the name of the check that produced this issue.
	Rule string
}

// Issues is a collection of check violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. out_of_bounds at /rows/3/price: 1 records outside [10, 100]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// WithRule returns a copy of the issues with Rule set on every entry that does
// not carry one yet.
func (iss Issues) WithRule(rule string) Issues {
	if len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Rule == "" {
			it.Rule = rule
		}
		out[i] = it
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issuesOrNil converts an empty collection into a nil error so checks can
// return their accumulator directly.
func issuesOrNil(iss Issues) error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}
