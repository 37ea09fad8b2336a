// Package codec converts between the textual cells of a dataset file and the
// typed values of a listingqa.Listing.
//
// Decode failures are returned as listingqa.Issues rooted at "/"; callers
// re-anchor them at the offending cell.
package codec

import listingqa "github.com/reoring/listingqa"

// Codec performs bidirectional transformation between a wire string and the
// domain value T.
type Codec[T any] interface {
	Decode(s string) (T, error)
	Encode(v T) string
}

func invalid(code, msg, got string, cause error) error {
	return listingqa.Issues{{
		Path:    "/",
		Code:    code,
		Message: msg,
		Cause:   cause,
		Params:  map[string]any{"got": got},
	}}
}
