package neon

import (
	"image"
	"image/draw"
)

// RenderResult reports how a string was laid out and where it was pasted.
type RenderResult struct {
	Fit   Fit           `json:"fit"`
	Layer LayerGeometry `json:"layer"`

	// Paste is the layer rectangle in destination coordinates. It may extend
	// past the target rectangle (the padding is larger than the margin) and
	// past the destination, in which case drawing is clipped.
	Paste image.Rectangle `json:"paste"`

	// Clipped reports whether part of the layer fell outside the destination.
	Clipped bool `json:"clipped"`

	// OutlineWidth is the stroke width used for the contrast outline.
	OutlineWidth float64 `json:"outline_width"`
}

// Compositor renders glowing text into a rectangle of a base image.
// It holds no per-render state; concurrent renders onto different images
// are safe when the Shaper is.
type Compositor struct {
	shaper Shaper
	style  Style
	stops  []colorStop
}

// NewCompositor returns a compositor drawing with shaper in the given style.
// The style is validated; use DefaultStyle as a starting point.
func NewCompositor(shaper Shaper, style Style) (*Compositor, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	stops, err := parseStops(style.Fill)
	if err != nil {
		return nil, err
	}
	return &Compositor{shaper: shaper, style: style, stops: stops}, nil
}

// Style returns the compositor's style.
func (c *Compositor) Style() Style {
	return c.style
}

// RenderLayer fits text to rect and paints it into a new transparent layer
// without touching any base image. The returned result's Paste rectangle is
// where Render would place the layer.
//
// text must be non-empty; callers reject blank input before rendering.
func (c *Compositor) RenderLayer(text string, rect image.Rectangle) (*image.RGBA, *RenderResult) {
	fit := FitFontSize(c.shaper, text, rect, c.style)
	geo := Layout(fit.Size, fit.Metrics, c.style)

	layer := image.NewRGBA(image.Rect(0, 0, geo.Width, geo.Height))
	glyphs := image.NewAlpha(layer.Bounds())
	c.shaper.DrawMask(glyphs, text, fit.Size, geo.OriginX, geo.OriginY)

	// Later passes sit inside the wider earlier ones; the order is fixed.
	paintGlow(layer, glyphs, c.style.OuterGlow)
	paintGlow(layer, glyphs, c.style.InnerGlow)
	outline := paintOutline(layer, glyphs, c.style.Outline, fit.Size)
	paintGradient(layer, glyphs, c.stops, geo.OriginX, geo.OriginX+fit.Metrics.Advance)
	paintGlow(layer, glyphs, c.style.Highlight)

	origin := PastePoint(rect, geo.Width, geo.Height)
	return layer, &RenderResult{
		Fit:          fit,
		Layer:        geo,
		Paste:        image.Rectangle{Min: origin, Max: origin.Add(layer.Rect.Size())},
		OutlineWidth: outline,
	}
}

// Render draws text centered in rect on dst and returns the layout used.
//
// Only pixels under the pasted layer change, and only where the layer has
// paint; the layer's transparent margin leaves dst untouched. Drawing is
// clipped to dst's bounds, so rectangles near an edge are safe.
func (c *Compositor) Render(dst draw.Image, text string, rect image.Rectangle) *RenderResult {
	layer, result := c.RenderLayer(text, rect)
	result.Clipped = !result.Paste.In(dst.Bounds())
	draw.Draw(dst, result.Paste, layer, image.Point{}, draw.Over)
	return result
}

// PastePoint returns the top-left corner that centers a w x h layer in rect:
// rect.Min + floor((rect.Size - (w, h)) / 2), rounding toward negative
// infinity when the layer is larger than the rectangle.
func PastePoint(rect image.Rectangle, w, h int) image.Point {
	return image.Pt(
		rect.Min.X+floorDiv(rect.Dx()-w, 2),
		rect.Min.Y+floorDiv(rect.Dy()-h, 2),
	)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
