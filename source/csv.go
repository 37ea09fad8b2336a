package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	listingqa "github.com/reoring/listingqa"
)

type csvDriver struct{}

func (csvDriver) Name() string { return "csv" }

// Decode reads a header row followed by records. An empty input yields an
// empty dataset without columns.
func (csvDriver) Decode(r io.Reader) (*listingqa.Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &listingqa.Dataset{}, nil
	}
	if err != nil {
		return nil, parseIssue(listingqa.Root().Field("columns"), err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	d := &listingqa.Dataset{Columns: header}
	b := newRowBuilder(header)
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseIssue(listingqa.Root().Field("rows").Index(row), err)
		}
		l, ok := b.build(row, rec)
		if !ok {
			break
		}
		d.Rows = append(d.Rows, l)
	}
	if err := b.err(); err != nil {
		return nil, err
	}
	return d, nil
}

func (csvDriver) Encode(w io.Writer, d *listingqa.Dataset) error {
	columns := d.Columns
	if len(columns) == 0 {
		columns = listingqa.ExpectedColumns()
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for i := range d.Rows {
		if err := cw.Write(cells(&d.Rows[i], columns)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseIssue(p listingqa.PathRef, err error) error {
	it := listingqa.IssueAt(p, listingqa.CodeParseError, "", nil)
	it.Message = it.Message + ": " + err.Error()
	it.Cause = err
	return listingqa.Issues{it}
}
