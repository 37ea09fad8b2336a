package codec

import (
	"strings"
	"time"

	listingqa "github.com/reoring/listingqa"
)

// Date returns a Codec for timestamps such as last_review. Decoding accepts a
// plain date, a date with a wall-clock time, and RFC3339. Empty input decodes
// to nil.
func Date() Codec[*time.Time] { return dateCodec{} }

type dateCodec struct{}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339Nano,
}

func (dateCodec) Decode(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, invalid(listingqa.CodeInvalidFormat, "invalid date", s, firstErr)
}

// Encode writes midnight timestamps as a plain date and everything else with
// its wall-clock time, both in UTC. Nil encodes to the empty string.
func (dateCodec) Encode(t *time.Time) string {
	if t == nil {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(time.DateOnly)
	}
	return u.Format(time.DateTime)
}
