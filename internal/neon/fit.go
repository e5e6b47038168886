package neon

import (
	"image"
	"math"
)

// Fit is the outcome of the font-size search.
type Fit struct {
	Size    int          `json:"size"`
	Metrics GlyphMetrics `json:"metrics"`

	// Steps counts the decrements taken from the initial size.
	Steps int `json:"steps"`

	// Overflow is set when the search stopped at the size floor with the
	// text still wider than the allowed fraction of the rectangle.
	Overflow bool `json:"overflow"`
}

// FitFontSize finds the font size for text inside rect.
//
// The search starts at floor(rect.height*InitialSizeFactor) and steps down
// by SizeStep while the advance exceeds MaxWidthFraction*rect.width or the
// size exceeds MaxHeightFraction*rect.height, as long as the size is above
// MinFontSize. It always terminates: at most
// (initial-MinFontSize)/SizeStep+1 steps are taken, and overflow at the floor
// is accepted rather than treated as an error. The size is never below 1.
func FitFontSize(shaper Shaper, text string, rect image.Rectangle, style Style) Fit {
	maxW := style.MaxWidthFraction * float64(rect.Dx())
	maxH := style.MaxHeightFraction * float64(rect.Dy())
	step := style.SizeStep
	if step < 1 {
		step = 1
	}

	size := int(math.Floor(float64(rect.Dy())*style.InitialSizeFactor + 1e-9))
	if size < 1 {
		size = 1
	}

	fit := Fit{Size: size, Metrics: shaper.Measure(text, size)}
	tooBig := func() bool {
		return fit.Metrics.Advance > maxW || float64(fit.Size) > maxH
	}

	for tooBig() && fit.Size > style.MinFontSize && fit.Size > 1 {
		fit.Size -= step
		if fit.Size < 1 {
			fit.Size = 1
		}
		fit.Metrics = shaper.Measure(text, fit.Size)
		fit.Steps++
	}

	fit.Overflow = fit.Metrics.Advance > maxW
	return fit
}

// LayerGeometry is the size and text placement of the offscreen layer.
type LayerGeometry struct {
	Padding int `json:"padding"`
	Width   int `json:"width"`
	Height  int `json:"height"`

	// OriginX and OriginY locate the text baseline origin inside the layer.
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}

// Layout sizes the layer for text set at fontSize with metrics m:
// a padding of floor(fontSize*PaddingFactor) on every side of the ink box,
// dimensions floored to whole pixels, and the baseline at
// (padding, padding+ascent).
func Layout(fontSize int, m GlyphMetrics, style Style) LayerGeometry {
	pad := int(math.Floor(float64(fontSize) * style.PaddingFactor))
	w := int(math.Floor(m.Advance + 2*float64(pad)))
	h := int(math.Floor(m.Height() + 2*float64(pad)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return LayerGeometry{
		Padding: pad,
		Width:   w,
		Height:  h,
		OriginX: float64(pad),
		OriginY: float64(pad) + m.Ascent,
	}
}
