package codec

import (
	"testing"
	"time"

	listingqa "github.com/reoring/listingqa"
)

func TestDate_Codec_Basic(t *testing.T) {
	c := Date()

	got, err := c.Decode("2019-05-21")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got == nil || !got.Equal(time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := c.Encode(got); out != "2019-05-21" {
		t.Fatalf("roundtrip mismatch: %s", out)
	}
}

func TestDate_Codec_Layouts(t *testing.T) {
	c := Date()
	want := time.Date(2019, 7, 5, 13, 4, 5, 0, time.UTC)
	for _, in := range []string{"2019-07-05 13:04:05", "2019-07-05T13:04:05Z"} {
		got, err := c.Decode(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("decode %q: got %v", in, got)
		}
	}
	if out := c.Encode(&want); out != "2019-07-05 13:04:05" {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestDate_Codec_EmptyIsNull(t *testing.T) {
	c := Date()
	got, err := c.Decode("  ")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %v, %v", got, err)
	}
	if out := c.Encode(nil); out != "" {
		t.Fatalf("expected empty encoding, got %q", out)
	}
}

func TestDate_Codec_InvalidIsIssue(t *testing.T) {
	_, err := Date().Decode("21/05/2019")
	iss, ok := listingqa.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != listingqa.CodeInvalidFormat || iss[0].Cause == nil {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}
