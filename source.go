package coverstudio

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	// Decoders for every upload format the studio accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// Source is a decoded raster backing one or more layers. It is immutable
// after creation and shared by reference: the live layer list and every
// history snapshot point at the same Source.
type Source struct {
	pix    *image.NRGBA // straight-alpha pixels, kept for alpha sampling
	opaque image.Rectangle
	thumb  *image.NRGBA

	// texture is created lazily on first draw so that pure-logic code
	// (geometry, alignment, history) never touches the GPU.
	texture *ebiten.Image

	// Path is the file the source was decoded from, when known.
	// Used by document save/load; empty for in-memory sources.
	Path string
}

// DecodeSource decodes uploaded image bytes into a Source. The opaque
// content rect is scanned and the square thumbnail rendered once, here.
// A decode failure returns an error and no Source.
func DecodeSource(r io.Reader) (*Source, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return NewSourceFromImage(img), nil
}

// LoadSource decodes the image file at path.
func LoadSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	src, err := DecodeSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// NewSourceFromImage wraps an already-decoded image as a Source.
func NewSourceFromImage(img image.Image) *Source {
	pix, ok := img.(*image.NRGBA)
	if !ok || pix.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		pix = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(pix, pix.Rect, img, b.Min, draw.Src)
	}
	s := &Source{pix: pix}
	s.opaque = scanOpaqueRect(pix)
	s.thumb = renderThumbnail(pix, thumbnailSize)
	return s
}

// Size returns the pixel dimensions of the source.
func (s *Source) Size() (w, h int) {
	return s.pix.Rect.Dx(), s.pix.Rect.Dy()
}

// AlphaAt returns the 8-bit alpha of the pixel at (x, y).
// Out-of-bounds coordinates return 0.
func (s *Source) AlphaAt(x, y int) uint8 {
	if !(image.Point{x, y}).In(s.pix.Rect) {
		return 0
	}
	return s.pix.Pix[y*s.pix.Stride+x*4+3]
}

// OpaqueRect returns the tightest rect containing any pixel with
// alpha > 0. Fully transparent sources fall back to the full image rect.
func (s *Source) OpaqueRect() image.Rectangle {
	return s.opaque
}

// Thumbnail returns the fixed-size square preview rendered at creation.
// Never regenerated; transform changes do not affect it.
func (s *Source) Thumbnail() image.Image {
	return s.thumb
}

// Pixels returns the decoded image. The returned image MUST NOT be mutated.
func (s *Source) Pixels() image.Image {
	return s.pix
}

// Texture returns the GPU image for drawing, creating it on first use.
func (s *Source) Texture() *ebiten.Image {
	if s.texture == nil {
		s.texture = ebiten.NewImageFromImage(s.pix)
	}
	return s.texture
}

// scanOpaqueRect walks the alpha channel once and returns the tightest
// rect containing any alpha > 0 pixel, or the full rect if none exist.
func scanOpaqueRect(pix *image.NRGBA) image.Rectangle {
	w, h := pix.Rect.Dx(), pix.Rect.Dy()
	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := pix.Pix[y*pix.Stride : y*pix.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rect(0, 0, w, h)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// renderThumbnail scales the image to fit a size x size square,
// centered, preserving aspect ratio.
func renderThumbnail(pix *image.NRGBA, size int) *image.NRGBA {
	w, h := pix.Rect.Dx(), pix.Rect.Dy()
	thumb := image.NewNRGBA(image.Rect(0, 0, size, size))
	if w == 0 || h == 0 {
		return thumb
	}
	scale := float64(size) / float64(w)
	if sh := float64(size) / float64(h); sh < scale {
		scale = sh
	}
	if scale > 1 {
		scale = 1
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	dst := image.Rect((size-dw)/2, (size-dh)/2, (size-dw)/2+dw, (size-dh)/2+dh)
	xdraw.ApproxBiLinear.Scale(thumb, dst, pix, pix.Rect, xdraw.Over, nil)
	return thumb
}
