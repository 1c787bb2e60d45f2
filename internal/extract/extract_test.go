package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSupported(t *testing.T) {
	cases := []struct {
		mime string
		want bool
	}{
		{"application/pdf", true},
		{"image/png", true},
		{"image/jpeg", true},
		{"Application/PDF", true},
		{"application/pdf; charset=binary", true},
		{"image/gif", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Supported(tc.mime); got != tc.want {
			t.Errorf("Supported(%q) = %v, want %v", tc.mime, got, tc.want)
		}
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/png") || !IsImage("IMAGE/JPEG") {
		t.Fatalf("png and jpeg are image types")
	}
	if IsImage("application/pdf") {
		t.Fatalf("pdf is not an image type")
	}
}

func TestNormalizeMimeType(t *testing.T) {
	if got := NormalizeMimeType(" Application/PDF; charset=binary "); got != "application/pdf" {
		t.Fatalf("got %q", got)
	}
}

func TestReadable(t *testing.T) {
	if Readable("   short   ") {
		t.Fatalf("whitespace must not count toward the threshold")
	}
	if !Readable(strings.Repeat("x", MinReadableChars)) {
		t.Fatalf("threshold length is readable")
	}
	if Readable(strings.Repeat("x", MinReadableChars-1)) {
		t.Fatalf("one char under the threshold is unreadable")
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short", 1000); got != "short" {
		t.Fatalf("short text passes through, got %q", got)
	}
	long := strings.Repeat("a", 1500)
	if got := Excerpt(long, 1000); len(got) != 1000 {
		t.Fatalf("expected a 1000-char excerpt, got %d", len(got))
	}
}

func TestExcerptNeverSplitsRunes(t *testing.T) {
	// Two-byte runes with an odd cut point land mid-rune.
	text := strings.Repeat("é", 10)
	got := Excerpt(text, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if len(got) != 4 {
		t.Fatalf("expected back-off to the rune boundary at 4 bytes, got %d", len(got))
	}
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	if _, err := PDFText([]byte("not a pdf at all")); err == nil {
		t.Fatalf("expected an error for non-PDF bytes")
	}
}
