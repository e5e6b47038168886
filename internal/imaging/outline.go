package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultOutlineColor marks a detected bar.
const DefaultOutlineColor = "#ff00ff"

// OutlineRegion returns a copy of img with a rectangle of the given
// thickness drawn just inside rect and a "WxH" size label above it (or
// below its top edge when there is no room). It is a debugging aid for
// checking which region a card will be drawn into.
//
// colorHex is "#RRGGBB" or "#RRGGBBAA"; an unparsable value falls back to
// DefaultOutlineColor.
func OutlineRegion(img image.Image, rect image.Rectangle, colorHex string, thickness int) *image.NRGBA {
	out := imaging.Clone(img)
	// Clone rebases to the origin.
	rect = rect.Sub(img.Bounds().Min)

	c, err := parseHexColor(colorHex)
	if err != nil {
		c, _ = parseHexColor(DefaultOutlineColor)
	}
	if thickness < 1 {
		thickness = 1
	}

	stroke := image.NewUniform(c)
	t := thickness
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t),
		image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y),
		image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(out, e.Intersect(out.Bounds()), stroke, image.Point{}, draw.Over)
	}

	label := fmt.Sprintf("%dx%d", rect.Dx(), rect.Dy())
	ly := rect.Min.Y - labelHeight - 1
	if ly < 0 {
		ly = rect.Min.Y + t + 1
	}
	drawLabel(out, rect.Min.X+1, ly, label, color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 180})

	return out
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	alpha := uint8(255)
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

const (
	glyphWidth  = 4
	labelHeight = 7
)

// labelGlyphs is a 3x5 pixel font covering the characters of a size label.
var labelGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'x': {"000", "101", "010", "101", "000"},
}

// drawLabel draws text on a translucent box with its top-left at (x, y),
// clipped to img.
func drawLabel(img draw.Image, x, y int, text string, fg, bg color.NRGBA) {
	box := image.Rect(x-1, y-1, x+len(text)*glyphWidth, y+labelHeight-1)
	draw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(bg), image.Point{}, draw.Over)

	bounds := img.Bounds()
	cx := x
	for _, ch := range text {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			cx += glyphWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				p := image.Pt(cx+col, y+row)
				if pixel == '1' && p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += glyphWidth
	}
}
