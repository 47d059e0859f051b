package coverstudio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderImage paints the document onto an off-screen surface at
// width*multiplier x height*multiplier and returns the straight-alpha
// pixels. It runs the identical paint routine as the live preview, so
// exported output matches the on-screen composition at any multiplier.
func RenderImage(doc *Document, multiplier int) (*image.NRGBA, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("render: invalid multiplier %d", multiplier)
	}
	w, h := doc.Size()
	off := ebiten.NewImage(w*multiplier, h*multiplier)
	defer off.Deallocate()
	paintScaled(off, doc, float64(multiplier))

	ow, oh := w*multiplier, h*multiplier
	pixels := make([]byte, 4*ow*oh)
	off.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img, nil
}

// Encode writes the image in the given format: PNG losslessly, JPEG at
// the fixed quality setting.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

// ExportFile renders the document at the given multiplier and writes it
// to path in the given format.
func ExportFile(doc *Document, path string, multiplier int, format Format) error {
	img, err := RenderImage(doc, multiplier)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
