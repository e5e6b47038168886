package neon

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"
)

// blockShaper is a monospace Shaper that draws every non-space rune as a
// solid block. Its metrics are exact, which makes size-search tests exact.
type blockShaper struct {
	measured int
}

const (
	blockAdvance = 0.6
	blockAscent  = 0.7
	blockDescent = 0.2
)

func (b *blockShaper) Measure(text string, size int) GlyphMetrics {
	b.measured++
	return GlyphMetrics{
		Advance: float64(utf8.RuneCountInString(text)) * float64(size) * blockAdvance,
		Ascent:  float64(size) * blockAscent,
		Descent: float64(size) * blockDescent,
	}
}

func (b *blockShaper) DrawMask(dst *image.Alpha, text string, size int, x, y float64) {
	adv := float64(size) * blockAdvance
	top := int(math.Round(y - float64(size)*blockAscent))
	bottom := int(math.Round(y + float64(size)*blockDescent))
	i := 0
	for _, r := range text {
		if r != ' ' {
			left := int(math.Round(x + float64(i)*adv + adv*0.1))
			right := int(math.Round(x + float64(i+1)*adv - adv*0.1))
			for py := top; py < bottom; py++ {
				for px := left; px < right; px++ {
					dst.SetAlpha(px, py, color.Alpha{A: 0xff})
				}
			}
		}
		i++
	}
}

// createBaseImage creates a dark background with a white bar
func createBaseImage(width, height int, bar image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{15, 12, 30, 255}
			if image.Pt(x, y).In(bar) {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mean(c color.RGBA) float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}
