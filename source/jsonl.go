package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"

	listingqa "github.com/reoring/listingqa"
)

// jsonlDriver handles JSON Lines: one flat object per line. The key order of
// the first object defines the dataset columns; a later object with other
// keys or another order is a schema_mismatch at its row.
type jsonlDriver struct{}

func (jsonlDriver) Name() string { return "jsonl" }

func (jsonlDriver) Decode(r io.Reader) (*listingqa.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	d := &listingqa.Dataset{}
	var b *rowBuilder
	var index map[string]int
	for row := 0; ; row++ {
		keys, values, err := readObject(dec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseIssue(listingqa.Root().Field("rows").Index(row), err)
		}
		if b == nil {
			d.Columns = keys
			b = newRowBuilder(keys)
			index = make(map[string]int, len(keys))
			for i, k := range keys {
				index[k] = i
			}
		}
		if row > 0 && !slices.Equal(keys, d.Columns) {
			if !b.addSchemaIssue(row, d.Columns, keys) {
				break
			}
		}
		cells := make([]string, len(d.Columns))
		for i, k := range keys {
			if j, ok := index[k]; ok {
				cells[j] = values[i]
			}
		}
		l, ok := b.build(row, cells)
		if !ok {
			break
		}
		d.Rows = append(d.Rows, l)
	}
	if b != nil {
		if err := b.err(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// readObject consumes one flat JSON object and returns its keys in input
// order with each value rendered as a cell string (null becomes "").
func readObject(dec *json.Decoder) ([]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys, values []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected key, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		var v string
		switch x := tok.(type) {
		case string:
			v = x
		case json.Number:
			v = x.String()
		case float64:
			v = strconv.FormatFloat(x, 'g', -1, 64)
		case bool:
			v = strconv.FormatBool(x)
		case nil:
			v = ""
		default:
			return nil, nil, fmt.Errorf("unsupported value for %q: nested values are not allowed", key)
		}
		keys = append(keys, key)
		values = append(values, v)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, nil, err
	}
	return keys, values, nil
}

func (jsonlDriver) Encode(w io.Writer, d *listingqa.Dataset) error {
	columns := d.Columns
	if len(columns) == 0 {
		columns = listingqa.ExpectedColumns()
	}
	bw := bufio.NewWriter(w)
	var buf bytes.Buffer
	for i := range d.Rows {
		buf.Reset()
		buf.WriteByte('{')
		for j, col := range columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(col)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			v, err := json.Marshal(jsonValue(&d.Rows[i], col))
			if err != nil {
				return err
			}
			buf.Write(v)
		}
		buf.WriteString("}\n")
		if _, err := bw.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// jsonValue returns the typed JSON value of a column; NaN and nulls become nil.
func jsonValue(l *listingqa.Listing, col string) any {
	switch col {
	case listingqa.ColID:
		return l.ID
	case listingqa.ColHostID:
		return l.HostID
	case listingqa.ColMinimumNights:
		return l.MinimumNights
	case listingqa.ColNumberOfReviews:
		return l.NumberOfReviews
	case listingqa.ColCalculatedHostListingsCount:
		return l.CalculatedHostListingsCount
	case listingqa.ColAvailability365:
		return l.Availability365
	case listingqa.ColLatitude:
		return finite(l.Latitude)
	case listingqa.ColLongitude:
		return finite(l.Longitude)
	case listingqa.ColPrice:
		return finite(l.Price)
	case listingqa.ColReviewsPerMonth:
		if l.ReviewsPerMonth == nil {
			return nil
		}
		return finite(*l.ReviewsPerMonth)
	case listingqa.ColLastReview:
		if l.LastReview == nil {
			return nil
		}
		return cell(l, col)
	default:
		return cell(l, col)
	}
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
