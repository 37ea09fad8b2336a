package codec

import (
	"math"
	"strconv"
	"strings"

	listingqa "github.com/reoring/listingqa"
)

// Int returns a Codec for integer columns. Integral float spellings such as
// "12.0" are accepted because dataframe exports write them for integer
// columns that once held nulls.
func Int() Codec[int64] { return intCodec{} }

// Float returns a Codec for required float columns.
func Float() Codec[float64] { return floatCodec{} }

// NullableFloat returns a Codec for optional float columns; empty input
// decodes to nil.
func NullableFloat() Codec[*float64] { return nullableFloatCodec{} }

type intCodec struct{}

func (intCodec) Decode(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr == nil && f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return int64(f), nil
	}
	return 0, invalid(listingqa.CodeInvalidType, "expected integer", s, err)
}

func (intCodec) Encode(v int64) string { return strconv.FormatInt(v, 10) }

type floatCodec struct{}

func (floatCodec) Decode(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid(listingqa.CodeInvalidType, "expected number", s, err)
	}
	return f, nil
}

func (floatCodec) Encode(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

type nullableFloatCodec struct{}

func (nullableFloatCodec) Decode(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	f, err := floatCodec{}.Decode(s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (nullableFloatCodec) Encode(v *float64) string {
	if v == nil {
		return ""
	}
	return floatCodec{}.Encode(*v)
}
