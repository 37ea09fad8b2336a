package codec

import (
	"testing"

	listingqa "github.com/reoring/listingqa"
)

func TestInt_Codec(t *testing.T) {
	c := Int()
	for in, want := range map[string]int64{"42": 42, " 7 ": 7, "12.0": 12, "-3": -3} {
		got, err := c.Decode(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("decode %q: want %d, got %d", in, want, got)
		}
	}
	for _, in := range []string{"", "1.5", "abc"} {
		_, err := c.Decode(in)
		iss, ok := listingqa.AsIssues(err)
		if !ok || iss[0].Code != listingqa.CodeInvalidType {
			t.Fatalf("decode %q: expected invalid_type, got %v", in, err)
		}
	}
	if c.Encode(15) != "15" {
		t.Fatalf("unexpected encoding")
	}
}

func TestFloat_Codec(t *testing.T) {
	c := Float()
	got, err := c.Decode("-73.98")
	if err != nil || got != -73.98 {
		t.Fatalf("unexpected decode: %v, %v", got, err)
	}
	if _, err := c.Decode(""); err == nil {
		t.Fatalf("expected error for empty required float")
	}
	if c.Encode(149) != "149" || c.Encode(0.21) != "0.21" {
		t.Fatalf("unexpected encoding: %s %s", c.Encode(149), c.Encode(0.21))
	}
}

func TestNullableFloat_Codec(t *testing.T) {
	c := NullableFloat()
	got, err := c.Decode("")
	if err != nil || got != nil {
		t.Fatalf("expected null, got %v, %v", got, err)
	}
	got, err = c.Decode("0.38")
	if err != nil || got == nil || *got != 0.38 {
		t.Fatalf("unexpected decode: %v, %v", got, err)
	}
	if c.Encode(nil) != "" || c.Encode(got) != "0.38" {
		t.Fatalf("unexpected encoding")
	}
}
