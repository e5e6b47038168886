package neon

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphMetrics describes a string set at one font size, in pixels.
//
// Ascent and Descent are measured from the ink bounding box, not the
// font's nominal line metrics, so Ascent+Descent is the height the glyphs
// actually cover.
type GlyphMetrics struct {
	Advance float64 `json:"advance"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// Height returns Ascent + Descent.
func (m GlyphMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Shaper measures and rasterizes a single line of text at a pixel size.
type Shaper interface {
	// Measure returns the metrics of text at size pixels.
	Measure(text string, size int) GlyphMetrics

	// DrawMask rasterizes text into dst with its baseline origin at (x, y).
	// Coverage is added with the over operator.
	DrawMask(dst *image.Alpha, text string, size int, x, y float64)
}

// FontShaper is a Shaper backed by an OpenType font.
//
// Faces are cached per size. opentype faces are not safe for concurrent use,
// so every operation holds the shaper's lock; one FontShaper may still be
// shared by goroutines rendering different images.
type FontShaper struct {
	mu     sync.Mutex
	font   *opentype.Font
	family string
	source string
	faces  map[int]font.Face
}

// NewFontShaper loads the first readable font among paths and falls back to
// the embedded Go Bold face when none can be used. Unreadable or malformed
// candidates are skipped; the returned skipped slice explains why.
func NewFontShaper(paths ...string) (*FontShaper, []error, error) {
	var skipped []error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("read font %q: %w", path, err))
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("parse font %q: %w", path, err))
			continue
		}
		return newFontShaper(f, path), skipped, nil
	}

	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, skipped, fmt.Errorf("parse embedded font: %w", err)
	}
	return newFontShaper(f, "embedded:gobold"), skipped, nil
}

func newFontShaper(f *opentype.Font, source string) *FontShaper {
	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || family == "" {
		family = "unknown"
	}
	return &FontShaper{
		font:   f,
		family: family,
		source: source,
		faces:  make(map[int]font.Face),
	}
}

// Family returns the font family name recorded in the font file.
func (s *FontShaper) Family() string { return s.family }

// Source returns the path the font was loaded from, or "embedded:gobold".
func (s *FontShaper) Source() string { return s.source }

// Measure implements Shaper.
func (s *FontShaper) Measure(text string, size int) GlyphMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds, advance := font.BoundString(s.face(size), text)
	m := GlyphMetrics{Advance: fromFixed(advance)}
	if !bounds.Empty() {
		m.Ascent = -fromFixed(bounds.Min.Y)
		m.Descent = fromFixed(bounds.Max.Y)
	}
	return m
}

// DrawMask implements Shaper.
func (s *FontShaper) DrawMask(dst *image.Alpha, text string, size int, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: s.face(size),
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
}

// Close releases every cached face.
func (s *FontShaper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for size, f := range s.faces {
		f.Close()
		delete(s.faces, size)
	}
	return nil
}

// face returns the cached face for size. Callers hold s.mu.
func (s *FontShaper) face(size int) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Only reachable with a broken font table; keep rendering legible text.
		return basicfont.Face7x13
	}
	s.faces[size] = f
	return f
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
