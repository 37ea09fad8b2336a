package listingqa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/listingqa/i18n"
)

// IssueAt creates an Issue at the given path with provided code, message and params map.
// An empty msg is filled from the current i18n Translator.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	if msg == "" {
		msg = i18n.T(code, stringParams(params))
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = formatParam(v)
	}
	return out
}

func formatParam(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// IssueParams returns the issue's parameters formatted as strings, the form
// used for messages and serialized reports. Non-finite numbers become "+Inf",
// "-Inf" or "NaN".
func IssueParams(it Issue) map[string]string {
	return stringParams(it.Params)
}
