package neon

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// stamp is a coverage mask plus the optional blurred copy used as its halo.
type stamp struct {
	coverage *image.Alpha
	halo     *image.Alpha
}

// newStamp prepares coverage for painting. blur follows the canvas
// shadowBlur convention: the halo is a Gaussian with sigma = blur/2.
func newStamp(coverage *image.Alpha, blurAmount float64) stamp {
	s := stamp{coverage: coverage}
	if blurAmount > 0 {
		s.halo = blurMask(coverage, blurAmount/2)
	}
	return s
}

// paint draws the halo in shadow (when both exist) and then the coverage
// filled with src, both displaced by off. src is sampled in layer
// coordinates. Everything is composited with the over operator.
func (s stamp) paint(layer *image.RGBA, off image.Point, src image.Image, shadow *color.NRGBA) {
	r := layer.Bounds()
	mp := r.Min.Sub(off)
	if s.halo != nil && shadow != nil && shadow.A > 0 {
		draw.DrawMask(layer, r, image.NewUniform(*shadow), image.Point{}, s.halo, mp, draw.Over)
	}
	draw.DrawMask(layer, r, src, r.Min, s.coverage, mp, draw.Over)
}

// paintGlow applies a GlowStyle: Passes fills of g.Color over the glyphs,
// each preceded by its halo.
func paintGlow(layer *image.RGBA, glyphs *image.Alpha, g GlowStyle) {
	if !g.Enabled || g.Passes < 1 {
		return
	}
	s := newStamp(glyphs, g.Blur)
	fill := image.NewUniform(g.Color.NRGBA())
	shadow := haloColor(g.ShadowColor, g.Color.A)
	for i := 0; i < g.Passes; i++ {
		s.paint(layer, image.Point{}, fill, &shadow)
	}
}

// paintOutline strokes the glyph outlines at every configured offset.
func paintOutline(layer *image.RGBA, glyphs *image.Alpha, o OutlineStyle, fontSize int) float64 {
	if !o.Enabled {
		return 0
	}
	width := o.lineWidth(fontSize)
	s := newStamp(strokeMask(glyphs, width), o.ShadowBlur)
	fill := image.NewUniform(o.Color.NRGBA())
	shadow := haloColor(o.ShadowColor, o.Color.A)
	for _, off := range o.offsetPoints() {
		s.paint(layer, off, fill, &shadow)
	}
	return width
}

// paintGradient fills the glyphs with the horizontal gradient spanning
// [x0, x1] in layer coordinates.
func paintGradient(layer *image.RGBA, glyphs *image.Alpha, stops []colorStop, x0, x1 float64) {
	grad := gradientImage(layer.Bounds(), stops, x0, x1)
	newStamp(glyphs, 0).paint(layer, image.Point{}, grad, nil)
}

// haloColor scales the shadow alpha by the alpha of the paint casting it,
// as a canvas shadow is derived from the painted pixels.
func haloColor(shadow RGBA, paintAlpha float64) color.NRGBA {
	c := shadow.NRGBA()
	c.A = uint8(math.Round(float64(c.A) * clamp01(paintAlpha)))
	return c
}

// blurMask returns a Gaussian-blurred copy of m with standard deviation sigma.
//
// bild's kernel is exp(-x²/4r) for radius r, i.e. a variance of 2r, so the
// radius passed is sigma²/2 rounded to a whole pixel to keep the kernel
// length odd and centered.
func blurMask(m *image.Alpha, sigma float64) *image.Alpha {
	if sigma <= 0 {
		return m
	}
	radius := math.Max(1, math.Round(sigma*sigma/2))
	return redToAlpha(blur.Gaussian(grayView(m), radius), m.Rect)
}

// strokeMask returns a band of the given width centered on the edges of
// fill: the dilation by width/2 minus the erosion by width/2.
func strokeMask(fill *image.Alpha, width float64) *image.Alpha {
	half := width / 2
	src := grayView(fill)
	outer := redToAlpha(effect.Dilate(src, half), fill.Rect)
	inner := redToAlpha(effect.Erode(src, half), fill.Rect)
	for i, v := range outer.Pix {
		if inner.Pix[i] >= v {
			outer.Pix[i] = 0
			continue
		}
		outer.Pix[i] = v - inner.Pix[i]
	}
	return outer
}

// gradientImage renders a horizontal linear gradient over bounds. Pixel
// centers left of x0 take the first stop, right of x1 the last, and between
// stops colors are interpolated in sRGB like a canvas gradient.
func gradientImage(bounds image.Rectangle, stops []colorStop, x0, x1 float64) *image.NRGBA {
	img := image.NewNRGBA(bounds)
	if len(stops) == 0 || bounds.Empty() {
		return img
	}

	row := make([]byte, bounds.Dx()*4)
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		t := 0.0
		if x1 > x0 {
			t = clamp01((float64(x) + 0.5 - x0) / (x1 - x0))
		}
		c := colorAt(stops, t)
		i := (x - bounds.Min.X) * 4
		row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		copy(img.Pix[img.PixOffset(bounds.Min.X, y):], row)
	}
	return img
}

// colorAt samples the stop list at t in [0, 1].
func colorAt(stops []colorStop, t float64) color.NRGBA {
	if t <= stops[0].offset {
		return opaque(stops[0])
	}
	for i := 1; i < len(stops); i++ {
		prev, next := stops[i-1], stops[i]
		if t > next.offset {
			continue
		}
		span := next.offset - prev.offset
		if span <= 0 {
			return opaque(next)
		}
		c := prev.color.BlendRgb(next.color, (t-prev.offset)/span).Clamped()
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return opaque(stops[len(stops)-1])
}

func opaque(s colorStop) color.NRGBA {
	r, g, b := s.color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// grayView shares m's coverage bytes as a grayscale image so the bild
// filters can read it without a copy.
func grayView(m *image.Alpha) *image.Gray {
	return &image.Gray{Pix: m.Pix, Stride: m.Stride, Rect: m.Rect}
}

// redToAlpha reads the red channel of a filter result back into a mask with
// the given bounds. bild results may be rebased to the origin, so pixels are
// matched by their offset from each image's minimum point.
func redToAlpha(src *image.RGBA, bounds image.Rectangle) *image.Alpha {
	out := image.NewAlpha(bounds)
	sb := src.Bounds()
	w := min(bounds.Dx(), sb.Dx())
	h := min(bounds.Dy(), sb.Dy())
	for y := 0; y < h; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := out.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < w; x++ {
			out.Pix[di+x] = src.Pix[si+x*4]
		}
	}
	return out
}
