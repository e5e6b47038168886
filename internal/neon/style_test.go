package neon

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultStyle_Valid(t *testing.T) {
	if err := DefaultStyle().Validate(); err != nil {
		t.Fatalf("default style invalid: %v", err)
	}
}

func TestStyle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Style)
		wantErr bool
	}{
		{"zero initial factor", func(s *Style) { s.InitialSizeFactor = 0 }, true},
		{"zero width fraction", func(s *Style) { s.MaxWidthFraction = 0 }, true},
		{"min font size zero", func(s *Style) { s.MinFontSize = 0 }, true},
		{"size step zero", func(s *Style) { s.SizeStep = 0 }, true},
		{"negative padding", func(s *Style) { s.PaddingFactor = -0.1 }, true},
		{"outer glow without passes", func(s *Style) { s.OuterGlow.Passes = 0 }, true},
		{"negative blur", func(s *Style) { s.OuterGlow.Blur = -1 }, true},
		{"disabled inner glow ignored", func(s *Style) { s.InnerGlow.Passes = 0 }, false},
		{"highlight alpha above one", func(s *Style) { s.Highlight.Color.A = 1.5 }, true},
		{"negative outline width", func(s *Style) { s.Outline.MinWidth = -1 }, true},
		{"disabled outline ignored", func(s *Style) {
			s.Outline.Enabled = false
			s.Outline.MinWidth = -1
		}, false},
		{"no stops", func(s *Style) { s.Fill = nil }, true},
		{"bad hex", func(s *Style) { s.Fill[0].Color = "#zz0000" }, true},
		{"offset out of range", func(s *Style) { s.Fill[1].Offset = 1.5 }, true},
		{"decreasing offsets", func(s *Style) {
			s.Fill = []GradientStop{{0.6, "#000000"}, {0.4, "#ffffff"}}
		}, true},
		{"three stops", func(s *Style) {
			s.Fill = []GradientStop{{0, "#0ac8ff"}, {0.5, "#ffffff"}, {1, "#c81eff"}}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRGBA_NRGBA(t *testing.T) {
	tests := []struct {
		in   RGBA
		want color.NRGBA
	}{
		{RGBA{60, 220, 255, 0.8}, color.NRGBA{60, 220, 255, 204}},
		{RGBA{1, 2, 3, 1}, color.NRGBA{1, 2, 3, 255}},
		{RGBA{1, 2, 3, 2}, color.NRGBA{1, 2, 3, 255}},
		{RGBA{1, 2, 3, -1}, color.NRGBA{1, 2, 3, 0}},
	}
	for _, tt := range tests {
		if got := tt.in.NRGBA(); got != tt.want {
			t.Errorf("%v.NRGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutlineStyle_Geometry(t *testing.T) {
	o := DefaultStyle().Outline

	if got := o.lineWidth(10); got != 2 {
		t.Errorf("lineWidth(10) = %g, want the 2px minimum", got)
	}
	if got := o.lineWidth(100); got != 4 {
		t.Errorf("lineWidth(100) = %g, want 4", got)
	}

	want := []image.Point{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if diff := cmp.Diff(want, o.offsetPoints()); diff != "" {
		t.Errorf("offsetPoints mismatch (-want +got):\n%s", diff)
	}

	o.Offsets = nil
	if diff := cmp.Diff([]image.Point{{}}, o.offsetPoints()); diff != "" {
		t.Errorf("empty offsets mismatch (-want +got):\n%s", diff)
	}
}
