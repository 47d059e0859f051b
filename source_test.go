package coverstudio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// solidSource builds a fully opaque w x h source.
func solidSource(w, h int) *Source {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i-3] = 200
		img.Pix[i] = 255
	}
	return NewSourceFromImage(img)
}

// paddedSource builds a w x h source whose opaque content is the
// centered rect inset by pad transparent pixels on every side.
func paddedSource(w, h, pad int) *Source {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := pad; y < h-pad; y++ {
		for x := pad; x < w-pad; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	return NewSourceFromImage(img)
}

// encodePNG renders a source-sized solid image to PNG bytes.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeSourcePNG(t *testing.T) {
	src, err := DecodeSource(bytes.NewReader(encodePNG(t, 40, 30)))
	if err != nil {
		t.Fatalf("DecodeSource: %v", err)
	}
	w, h := src.Size()
	if w != 40 || h != 30 {
		t.Errorf("Size() = %dx%d, want 40x30", w, h)
	}
}

func TestDecodeSourceGarbage(t *testing.T) {
	if _, err := DecodeSource(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOpaqueRect(t *testing.T) {
	src := paddedSource(100, 80, 10)
	want := image.Rect(10, 10, 90, 70)
	if got := src.OpaqueRect(); got != want {
		t.Errorf("OpaqueRect() = %v, want %v", got, want)
	}
}

func TestOpaqueRectFullyTransparent(t *testing.T) {
	src := NewSourceFromImage(image.NewNRGBA(image.Rect(0, 0, 20, 10)))
	// Fully transparent sources fall back to the full image rect.
	want := image.Rect(0, 0, 20, 10)
	if got := src.OpaqueRect(); got != want {
		t.Errorf("OpaqueRect() = %v, want %v", got, want)
	}
}

func TestAlphaAt(t *testing.T) {
	src := paddedSource(20, 20, 5)

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"opaque center", 10, 10, 255},
		{"transparent corner", 0, 0, 0},
		{"out of bounds negative", -1, 5, 0},
		{"out of bounds positive", 25, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := src.AlphaAt(tt.x, tt.y); got != tt.want {
				t.Errorf("AlphaAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNewSourceFromImageConvertsNonNRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(5, 5, 25, 15))
	src := NewSourceFromImage(rgba)
	w, h := src.Size()
	if w != 20 || h != 10 {
		t.Errorf("Size() = %dx%d, want 20x10", w, h)
	}
	if b := src.Pixels().Bounds(); b.Min != (image.Point{}) {
		t.Errorf("pixels not rebased to origin: %v", b)
	}
}

func TestThumbnailFitsSquare(t *testing.T) {
	src := solidSource(1000, 500)
	b := src.Thumbnail().Bounds()
	if b.Dx() != thumbnailSize || b.Dy() != thumbnailSize {
		t.Fatalf("thumbnail bounds = %v, want %dx%d square", b, thumbnailSize, thumbnailSize)
	}

	// A 2:1 image scaled into the square leaves transparent bands above
	// and below the centered content.
	thumb := src.Thumbnail().(*image.NRGBA)
	if _, _, _, a := thumb.At(thumbnailSize/2, 2).RGBA(); a != 0 {
		t.Error("expected transparent band at the top")
	}
	if _, _, _, a := thumb.At(thumbnailSize/2, thumbnailSize/2).RGBA(); a == 0 {
		t.Error("expected opaque content at the center")
	}
}

func TestThumbnailNeverUpscales(t *testing.T) {
	src := solidSource(16, 16)
	thumb := src.Thumbnail().(*image.NRGBA)
	// A 16x16 image stays 16x16, centered in the square.
	if _, _, _, a := thumb.At(thumbnailSize/2, thumbnailSize/2).RGBA(); a == 0 {
		t.Error("expected opaque content at the center")
	}
	if _, _, _, a := thumb.At(thumbnailSize/2+10, thumbnailSize/2).RGBA(); a != 0 {
		t.Error("content should not be upscaled past its pixel size")
	}
}
