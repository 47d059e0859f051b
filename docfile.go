package coverstudio

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// documentFile is the JSON layout of a saved document. Only image paths
// are persisted, never raster data; loading re-decodes every source and
// rebuilds the scatter caches.
type documentFile struct {
	Version    int         `json:"version"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Background string      `json:"background"` // "transparent" or #rrggbb
	MaxLayers  int         `json:"maxLayers,omitempty"`
	Layers     []layerFile `json:"layers"`
}

type layerFile struct {
	ID       string  `json:"id"`
	Path     string  `json:"path"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pattern  string  `json:"pattern,omitempty"`
	Spacing  float64 `json:"spacing,omitempty"`
}

const documentFileVersion = 1

// Save writes the document as JSON. Layers whose source has no file path
// (in-memory images) cannot round-trip and are reported as an error.
func (d *Document) Save(w io.Writer) error {
	df := documentFile{
		Version:   documentFileVersion,
		Width:     d.width,
		Height:    d.height,
		MaxLayers: d.MaxLayers,
	}
	if d.Background.Transparent {
		df.Background = "transparent"
	} else {
		c := d.Background.Color
		df.Background = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	for _, l := range d.layers {
		if l.Source.Path == "" {
			return fmt.Errorf("save: layer %s has no source path", l.ID)
		}
		df.Layers = append(df.Layers, layerFile{
			ID:       l.ID.String(),
			Path:     l.Source.Path,
			Scale:    l.Scale,
			Rotation: l.Rotation,
			Opacity:  l.Opacity,
			X:        l.Position.X,
			Y:        l.Position.Y,
			Pattern:  l.Fill.Kind.String(),
			Spacing:  l.Fill.Spacing,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(df); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// SaveFile writes the document to a JSON file at path.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadDocument reads a saved document, re-decodes every layer's image,
// and rebuilds derived state. Layer ids are preserved when parseable and
// regenerated otherwise.
func LoadDocument(r io.Reader) (*Document, error) {
	var df documentFile
	if err := json.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if df.Width < 1 || df.Height < 1 {
		return nil, fmt.Errorf("load document: invalid canvas %dx%d", df.Width, df.Height)
	}

	d := NewDocument(CanvasPreset{Name: "custom", Width: df.Width, Height: df.Height})
	if df.MaxLayers > 0 {
		d.MaxLayers = df.MaxLayers
	}
	if df.Background == "transparent" {
		d.Background = TransparentBackground
	} else if len(df.Background) == 7 && df.Background[0] == '#' {
		if v, err := strconv.ParseUint(df.Background[1:], 16, 32); err == nil {
			d.Background.Color = color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
		}
	}

	for _, lf := range df.Layers {
		if len(d.layers) >= d.MaxLayers {
			return nil, fmt.Errorf("load document: more than %d layers", d.MaxLayers)
		}
		src, err := LoadSource(lf.Path)
		if err != nil {
			return nil, fmt.Errorf("load document: %w", err)
		}
		l := newLayer(src, d.width, d.height)
		if id, err := uuid.Parse(lf.ID); err == nil {
			l.ID = id
		}
		l.Scale = lf.Scale
		l.Rotation = lf.Rotation
		l.Opacity = lf.Opacity
		l.Position = Vec2{lf.X, lf.Y}
		l.Fill = PatternFill{Kind: ParsePattern(lf.Pattern), Spacing: lf.Spacing}
		l.clamp()
		// The saved transform is the reference point for reset and
		// unmodified checks, not the recomputed fit-to-canvas state.
		l.initial = l.State()
		if l.Fill.Kind.Scattered() {
			l.Fill.scatter = computeScatter(d.rng, l, d.width, d.height)
		}
		d.layers = append(d.layers, l)
	}
	// The loaded state is the baseline: undo must not strip the document
	// back to an empty canvas.
	d.hist = history{}
	d.hist.push(snapshotLayers(d.layers))
	return d, nil
}

// LoadDocumentFile reads a saved document from a JSON file at path.
func LoadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadDocument(f)
}
