package coverstudio

import (
	"bytes"
	"image"
	"testing"
)

func TestEncodeFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("Encode png: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("png output missing signature")
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatJPEG); err != nil {
		t.Fatalf("Encode jpeg: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xff, 0xd8}) {
		t.Error("jpeg output missing SOI marker")
	}
}

func TestFormatNames(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", FormatPNG},
		{"jpeg", FormatJPEG},
		{"jpg", FormatJPEG},
		{"", FormatPNG},
		{"bmp", FormatPNG},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.name); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if FormatJPEG.String() != "jpeg" || FormatPNG.String() != "png" {
		t.Error("format names must round-trip")
	}
}

func TestPatternNamesRoundTrip(t *testing.T) {
	kinds := []PatternKind{
		PatternNone, PatternGrid, PatternBrick, PatternDiamonds,
		PatternMirror, PatternRandom, PatternSpread,
	}
	for _, k := range kinds {
		if got := ParsePattern(k.String()); got != k {
			t.Errorf("ParsePattern(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := ParsePattern("zigzag"); got != PatternNone {
		t.Errorf("unknown pattern name = %v, want none", got)
	}
}
