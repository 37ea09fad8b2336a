package source

import (
	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/codec"
)

// maxDecodeIssues bounds how many bad cells are collected before decoding
// gives up.
const maxDecodeIssues = 50

// setter stores a decoded cell into a Listing.
type setter func(l *listingqa.Listing, cell string) error

var (
	intCodec      = codec.Int()
	floatCodec    = codec.Float()
	nullableFloat = codec.NullableFloat()
	dateCodec     = codec.Date()
)

func str(dst func(*listingqa.Listing) *string) setter {
	return func(l *listingqa.Listing, cell string) error {
		*dst(l) = cell
		return nil
	}
}

func integer(dst func(*listingqa.Listing) *int64) setter {
	return func(l *listingqa.Listing, cell string) error {
		v, err := intCodec.Decode(cell)
		if err != nil {
			return err
		}
		*dst(l) = v
		return nil
	}
}

func float(dst func(*listingqa.Listing) *float64) setter {
	return func(l *listingqa.Listing, cell string) error {
		v, err := floatCodec.Decode(cell)
		if err != nil {
			return err
		}
		*dst(l) = v
		return nil
	}
}

var setters = map[string]setter{
	listingqa.ColID:                 integer(func(l *listingqa.Listing) *int64 { return &l.ID }),
	listingqa.ColName:               str(func(l *listingqa.Listing) *string { return &l.Name }),
	listingqa.ColHostID:             integer(func(l *listingqa.Listing) *int64 { return &l.HostID }),
	listingqa.ColHostName:           str(func(l *listingqa.Listing) *string { return &l.HostName }),
	listingqa.ColNeighbourhoodGroup: str(func(l *listingqa.Listing) *string { return &l.NeighbourhoodGroup }),
	listingqa.ColNeighbourhood:      str(func(l *listingqa.Listing) *string { return &l.Neighbourhood }),
	listingqa.ColLatitude:           float(func(l *listingqa.Listing) *float64 { return &l.Latitude }),
	listingqa.ColLongitude:          float(func(l *listingqa.Listing) *float64 { return &l.Longitude }),
	listingqa.ColRoomType:           str(func(l *listingqa.Listing) *string { return &l.RoomType }),
	listingqa.ColPrice:              float(func(l *listingqa.Listing) *float64 { return &l.Price }),
	listingqa.ColMinimumNights:      integer(func(l *listingqa.Listing) *int64 { return &l.MinimumNights }),
	listingqa.ColNumberOfReviews:    integer(func(l *listingqa.Listing) *int64 { return &l.NumberOfReviews }),
	listingqa.ColLastReview: func(l *listingqa.Listing, cell string) error {
		v, err := dateCodec.Decode(cell)
		if err != nil {
			return err
		}
		l.LastReview = v
		return nil
	},
	listingqa.ColReviewsPerMonth: func(l *listingqa.Listing, cell string) error {
		v, err := nullableFloat.Decode(cell)
		if err != nil {
			return err
		}
		l.ReviewsPerMonth = v
		return nil
	},
	listingqa.ColCalculatedHostListingsCount: integer(func(l *listingqa.Listing) *int64 { return &l.CalculatedHostListingsCount }),
	listingqa.ColAvailability365:             integer(func(l *listingqa.Listing) *int64 { return &l.Availability365 }),
}

// rowBuilder maps cells to Listing fields by header position. Columns outside
// the canonical schema are ignored; canonical columns absent from the header
// keep their zero value so the schema check can report them.
type rowBuilder struct {
	header  []string
	setters []setter
	issues  listingqa.Issues
}

func newRowBuilder(header []string) *rowBuilder {
	b := &rowBuilder{header: header, setters: make([]setter, len(header))}
	for i, col := range header {
		b.setters[i] = setters[col]
	}
	return b
}

// build decodes one row. Bad cells are recorded as issues; build reports
// false once maxDecodeIssues is reached.
func (b *rowBuilder) build(row int, cells []string) (listingqa.Listing, bool) {
	var l listingqa.Listing
	for i, cell := range cells {
		if i >= len(b.setters) || b.setters[i] == nil {
			continue
		}
		if err := b.setters[i](&l, cell); err != nil {
			b.addIssue(row, b.header[i], cell, err)
			if len(b.issues) >= maxDecodeIssues {
				return l, false
			}
		}
	}
	return l, true
}

func (b *rowBuilder) addIssue(row int, col, cell string, err error) {
	code := listingqa.CodeInvalidType
	var cause error = err
	if iss, ok := listingqa.AsIssues(err); ok && len(iss) > 0 {
		code = iss[0].Code
		cause = iss[0].Cause
	}
	b.issues = append(b.issues, listingqa.IssueAt(listingqa.RowPath(row, col), code, "",
		map[string]any{"column": col, "got": cell}))
	b.issues[len(b.issues)-1].Cause = cause
}

// addSchemaIssue records a row whose keys differ from the header. It reports
// false once maxDecodeIssues is reached.
func (b *rowBuilder) addSchemaIssue(row int, want, got []string) bool {
	b.issues = append(b.issues, listingqa.IssueAt(listingqa.Root().Field("rows").Index(row), listingqa.CodeSchemaMismatch, "",
		map[string]any{"expected": append([]string(nil), want...), "got": append([]string(nil), got...)}))
	return len(b.issues) < maxDecodeIssues
}

// err returns the collected issues, or nil.
func (b *rowBuilder) err() error {
	if len(b.issues) == 0 {
		return nil
	}
	return b.issues
}

// cells encodes a Listing in the order of columns. Columns outside the
// canonical schema encode as empty cells.
func cells(l *listingqa.Listing, columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = cell(l, col)
	}
	return out
}

func cell(l *listingqa.Listing, col string) string {
	switch col {
	case listingqa.ColID:
		return intCodec.Encode(l.ID)
	case listingqa.ColName:
		return l.Name
	case listingqa.ColHostID:
		return intCodec.Encode(l.HostID)
	case listingqa.ColHostName:
		return l.HostName
	case listingqa.ColNeighbourhoodGroup:
		return l.NeighbourhoodGroup
	case listingqa.ColNeighbourhood:
		return l.Neighbourhood
	case listingqa.ColLatitude:
		return floatCodec.Encode(l.Latitude)
	case listingqa.ColLongitude:
		return floatCodec.Encode(l.Longitude)
	case listingqa.ColRoomType:
		return l.RoomType
	case listingqa.ColPrice:
		return floatCodec.Encode(l.Price)
	case listingqa.ColMinimumNights:
		return intCodec.Encode(l.MinimumNights)
	case listingqa.ColNumberOfReviews:
		return intCodec.Encode(l.NumberOfReviews)
	case listingqa.ColLastReview:
		return dateCodec.Encode(l.LastReview)
	case listingqa.ColReviewsPerMonth:
		return nullableFloat.Encode(l.ReviewsPerMonth)
	case listingqa.ColCalculatedHostListingsCount:
		return intCodec.Encode(l.CalculatedHostListingsCount)
	case listingqa.ColAvailability365:
		return intCodec.Encode(l.Availability365)
	default:
		return ""
	}
}
