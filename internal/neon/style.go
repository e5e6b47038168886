package neon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a CSS-style color: 8-bit channels with an alpha between 0 and 1.
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// NRGBA converts c to a non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// GradientStop is one color stop of the fill gradient. Color is a hex
// string such as "#0ac8ff"; Offset runs from 0 (left edge of the text) to 1
// (right edge).
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Offset is a whole-pixel displacement applied to one paint of a pass.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GlowStyle configures a filled pass that casts a blurred halo.
type GlowStyle struct {
	Enabled bool `json:"enabled"`

	// Color fills the glyph shapes.
	Color RGBA `json:"color"`

	// ShadowColor tints the halo. Its alpha is multiplied by Color.A.
	ShadowColor RGBA `json:"shadow_color"`

	// Blur is the halo blur in canvas units: the Gaussian's standard
	// deviation is Blur/2. Zero disables the halo.
	Blur float64 `json:"blur"`

	// Passes is how many times the fill is repeated to build up opacity.
	Passes int `json:"passes"`
}

// OutlineStyle configures the dark contrast stroke.
type OutlineStyle struct {
	Enabled     bool    `json:"enabled"`
	Color       RGBA    `json:"color"`
	ShadowColor RGBA    `json:"shadow_color"`
	ShadowBlur  float64 `json:"shadow_blur"`

	// The stroke is max(MinWidth, fontSize*WidthFactor) pixels wide,
	// centered on the glyph outline.
	WidthFactor float64 `json:"width_factor"`
	MinWidth    float64 `json:"min_width"`

	// Offsets repeats the stroke at small displacements to thicken it.
	Offsets []Offset `json:"offsets"`
}

// Style holds every tunable of the neon text renderer.
type Style struct {
	// Font-size search: start at floor(rect.height*InitialSizeFactor) and
	// step down by SizeStep while the text is wider than
	// MaxWidthFraction*rect.width or the size exceeds
	// MaxHeightFraction*rect.height, stopping at MinFontSize.
	InitialSizeFactor float64 `json:"initial_size_factor"`
	MaxWidthFraction  float64 `json:"max_width_fraction"`
	MaxHeightFraction float64 `json:"max_height_fraction"`
	MinFontSize       int     `json:"min_font_size"`
	SizeStep          int     `json:"size_step"`

	// PaddingFactor sizes the transparent margin around the text as a
	// fraction of the font size. It leaves room for the glow.
	PaddingFactor float64 `json:"padding_factor"`

	// Paint passes, applied in this order.
	OuterGlow GlowStyle      `json:"outer_glow"`
	InnerGlow GlowStyle      `json:"inner_glow"`
	Outline   OutlineStyle   `json:"outline"`
	Fill      []GradientStop `json:"fill"`
	Highlight GlowStyle      `json:"highlight"`
}

// DefaultStyle returns the cyan-to-magenta neon look of the welcome card.
func DefaultStyle() Style {
	cyan := RGBA{R: 60, G: 220, B: 255, A: 1}
	return Style{
		InitialSizeFactor: 1.1,
		MaxWidthFraction:  0.92,
		MaxHeightFraction: 0.96,
		MinFontSize:       10,
		SizeStep:          2,
		PaddingFactor:     0.5,
		OuterGlow: GlowStyle{
			Enabled:     true,
			Color:       RGBA{R: 60, G: 220, B: 255, A: 0.8},
			ShadowColor: cyan,
			Blur:        24,
			Passes:      2,
		},
		InnerGlow: GlowStyle{
			Enabled:     false,
			Color:       RGBA{R: 60, G: 220, B: 255, A: 0.6},
			ShadowColor: cyan,
			Blur:        15,
			Passes:      1,
		},
		Outline: OutlineStyle{
			Enabled:     true,
			Color:       RGBA{R: 2, G: 2, B: 6, A: 1},
			ShadowColor: RGBA{R: 2, G: 2, B: 6, A: 1},
			ShadowBlur:  3,
			WidthFactor: 0.04,
			MinWidth:    2,
			Offsets: []Offset{
				{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1},
			},
		},
		Fill: []GradientStop{
			{Offset: 0, Color: "#0ac8ff"},
			{Offset: 1, Color: "#c81eff"},
		},
		Highlight: GlowStyle{
			Enabled:     true,
			Color:       RGBA{R: 240, G: 250, B: 255, A: 0.78},
			ShadowColor: RGBA{R: 255, G: 255, B: 255, A: 0.8},
			Blur:        2,
			Passes:      1,
		},
	}
}

// Validate reports the first field of s that cannot produce a rendering.
func (s Style) Validate() error {
	if s.InitialSizeFactor <= 0 {
		return fmt.Errorf("initial_size_factor must be positive, got %g", s.InitialSizeFactor)
	}
	if s.MaxWidthFraction <= 0 || s.MaxHeightFraction <= 0 {
		return errors.New("max_width_fraction and max_height_fraction must be positive")
	}
	if s.MinFontSize < 1 {
		return fmt.Errorf("min_font_size must be at least 1, got %d", s.MinFontSize)
	}
	if s.SizeStep < 1 {
		return fmt.Errorf("size_step must be at least 1, got %d", s.SizeStep)
	}
	if s.PaddingFactor < 0 {
		return fmt.Errorf("padding_factor must not be negative, got %g", s.PaddingFactor)
	}
	glows := []struct {
		name string
		g    GlowStyle
	}{
		{"outer_glow", s.OuterGlow},
		{"inner_glow", s.InnerGlow},
		{"highlight", s.Highlight},
	}
	for _, entry := range glows {
		name, g := entry.name, entry.g
		if !g.Enabled {
			continue
		}
		if g.Blur < 0 {
			return fmt.Errorf("%s: blur must not be negative", name)
		}
		if g.Passes < 1 {
			return fmt.Errorf("%s: passes must be at least 1", name)
		}
		if !alphaInRange(g.Color) || !alphaInRange(g.ShadowColor) {
			return fmt.Errorf("%s: alpha must be between 0 and 1", name)
		}
	}
	if s.Outline.Enabled {
		if s.Outline.WidthFactor < 0 || s.Outline.MinWidth < 0 || s.Outline.ShadowBlur < 0 {
			return errors.New("outline: width and blur must not be negative")
		}
		if !alphaInRange(s.Outline.Color) || !alphaInRange(s.Outline.ShadowColor) {
			return errors.New("outline: alpha must be between 0 and 1")
		}
	}
	if _, err := parseStops(s.Fill); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// offsetPoints converts configured offsets to image points, defaulting to a
// single undisplaced paint.
func (o OutlineStyle) offsetPoints() []image.Point {
	if len(o.Offsets) == 0 {
		return []image.Point{{}}
	}
	pts := make([]image.Point, len(o.Offsets))
	for i, off := range o.Offsets {
		pts[i] = image.Pt(off.X, off.Y)
	}
	return pts
}

// lineWidth is the stroke width for the given font size.
func (o OutlineStyle) lineWidth(size int) float64 {
	return math.Max(o.MinWidth, float64(size)*o.WidthFactor)
}

type colorStop struct {
	offset float64
	color  colorful.Color
}

func parseStops(stops []GradientStop) ([]colorStop, error) {
	if len(stops) == 0 {
		return nil, errors.New("at least one gradient stop is required")
	}
	parsed := make([]colorStop, len(stops))
	prev := 0.0
	for i, s := range stops {
		if s.Offset < 0 || s.Offset > 1 {
			return nil, fmt.Errorf("stop %d: offset %g outside [0, 1]", i, s.Offset)
		}
		if s.Offset < prev {
			return nil, fmt.Errorf("stop %d: offsets must not decrease", i)
		}
		c, err := colorful.Hex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		parsed[i] = colorStop{offset: s.Offset, color: c}
		prev = s.Offset
	}
	return parsed, nil
}

func alphaInRange(c RGBA) bool {
	return c.A >= 0 && c.A <= 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
