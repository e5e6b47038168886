package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestOutlineRegion(t *testing.T) {
	base := createInMemoryImage(100, 100, color.RGBA{0, 0, 0, 255})
	rect := image.Rect(20, 40, 80, 60)

	out := OutlineRegion(base, rect, "#00ff00", 2)

	tests := []struct {
		name string
		p    image.Point
		want color.NRGBA
	}{
		{"top edge", image.Pt(50, 40), color.NRGBA{0, 255, 0, 255}},
		{"top edge second row", image.Pt(50, 41), color.NRGBA{0, 255, 0, 255}},
		{"bottom edge", image.Pt(50, 59), color.NRGBA{0, 255, 0, 255}},
		{"left edge", image.Pt(20, 50), color.NRGBA{0, 255, 0, 255}},
		{"right edge", image.Pt(79, 50), color.NRGBA{0, 255, 0, 255}},
		{"interior untouched", image.Pt(50, 50), color.NRGBA{0, 0, 0, 255}},
		{"outside untouched", image.Pt(50, 70), color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := out.NRGBAAt(tt.p.X, tt.p.Y); got != tt.want {
				t.Errorf("pixel %v = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if base.RGBAAt(50, 40) != (color.RGBA{0, 0, 0, 255}) {
		t.Error("OutlineRegion modified its input")
	}
}

func TestOutlineRegion_LabelPlacement(t *testing.T) {
	base := createInMemoryImage(100, 100, color.RGBA{0, 0, 0, 255})

	// Room above: the label's white glyph pixels sit above the rectangle.
	out := OutlineRegion(base, image.Rect(10, 50, 90, 70), "#ff0000", 1)
	if !hasWhite(out, image.Rect(10, 40, 90, 50)) {
		t.Error("label should be drawn above the rectangle")
	}

	// No room above: the label moves inside.
	out = OutlineRegion(base, image.Rect(10, 0, 90, 30), "#ff0000", 1)
	if !hasWhite(out, image.Rect(10, 1, 90, 12)) {
		t.Error("label should be drawn inside the rectangle")
	}
}

func TestOutlineRegion_InvalidColorFallsBack(t *testing.T) {
	base := createInMemoryImage(50, 50, color.RGBA{0, 0, 0, 255})
	out := OutlineRegion(base, image.Rect(10, 20, 40, 30), "not-a-color", 0)

	if got := out.NRGBAAt(25, 20); got != (color.NRGBA{255, 0, 255, 255}) {
		t.Errorf("fallback outline = %v, want magenta", got)
	}
}

func TestOutlineRegion_ClipsAtEdges(t *testing.T) {
	base := createInMemoryImage(30, 30, color.RGBA{0, 0, 0, 255})
	out := OutlineRegion(base, image.Rect(-10, -10, 50, 50), "#ffffff", 3)
	if out.Bounds() != base.Bounds() {
		t.Errorf("bounds = %v, want %v", out.Bounds(), base.Bounds())
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.NRGBA{0, 0, 255, 128}, false},
		{"", color.NRGBA{}, true},
		{"#FFF", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
		{"#FF0000ZZ", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func hasWhite(img *image.NRGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) == (color.NRGBA{255, 255, 255, 255}) {
				return true
			}
		}
	}
	return false
}
