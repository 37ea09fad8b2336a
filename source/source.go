// Package source reads and writes listing datasets.
//
// A Driver handles one file format (CSV or JSON Lines). The format and the
// compression (gzip, zstd, lz4) are chosen from the artifact name, and
// compression is additionally sniffed from the stream's magic bytes so a
// mislabelled file still loads.
package source

import (
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	listingqa "github.com/reoring/listingqa"
)

// Format identifies a dataset file format.
type Format int

const (
	FormatCSV Format = iota
	FormatJSONL
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSONL:
		return "jsonl"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Driver decodes and encodes one dataset format.
type Driver interface {
	Decode(r io.Reader) (*listingqa.Dataset, error)
	Encode(w io.Writer, d *listingqa.Dataset) error
	Name() string
}

var (
	driverMu sync.RWMutex
	drivers  = map[Format]Driver{
		FormatCSV:   csvDriver{},
		FormatJSONL: jsonlDriver{},
	}
)

// SetDriver replaces the driver for a format; nil values are ignored.
func SetDriver(f Format, d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	drivers[f] = d
	driverMu.Unlock()
}

func getDriver(f Format) (Driver, error) {
	driverMu.RLock()
	d, ok := drivers[f]
	driverMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source: no driver for %s", f)
	}
	return d, nil
}

// Detect derives format and compression from a file or artifact name such as
// "clean_sample.csv.gz". Unknown extensions default to CSV without
// compression.
func Detect(name string) (Format, Compression) {
	base := strings.ToLower(path.Base(name))
	comp := CompressionNone
	switch {
	case strings.HasSuffix(base, ".gz"):
		comp = CompressionGzip
	case strings.HasSuffix(base, ".zst"):
		comp = CompressionZstd
	case strings.HasSuffix(base, ".lz4"):
		comp = CompressionLZ4
	}
	if comp != CompressionNone {
		base = strings.TrimSuffix(base, path.Ext(base))
	}
	switch path.Ext(base) {
	case ".jsonl", ".ndjson":
		return FormatJSONL, comp
	default:
		return FormatCSV, comp
	}
}

// Read decodes the dataset named name from r. The returned Dataset carries
// name as its Name.
func Read(r io.Reader, name string) (*listingqa.Dataset, error) {
	format, _ := Detect(name)
	dr, err := getDriver(format)
	if err != nil {
		return nil, err
	}
	rc, err := decompress(r)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	defer rc.Close()
	d, err := dr.Decode(rc)
	if err != nil {
		if _, ok := listingqa.AsIssues(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	d.Name = name
	return d, nil
}

// Write encodes d in the format and compression implied by name.
func Write(w io.Writer, d *listingqa.Dataset, name string) error {
	format, comp := Detect(name)
	dr, err := getDriver(format)
	if err != nil {
		return err
	}
	wc, err := compress(w, comp)
	if err != nil {
		return err
	}
	if err := dr.Encode(wc, d); err != nil {
		_ = wc.Close()
		return fmt.Errorf("source: encode %s: %w", name, err)
	}
	return wc.Close()
}
