package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fakeRecognizer returns a fixed reading and records its input.
type fakeRecognizer struct {
	text string
	err  error

	gotSize image.Point
	gotLang string
}

func (f *fakeRecognizer) Recognize(img image.Image, language string) (string, error) {
	f.gotSize = img.Bounds().Size()
	f.gotLang = language
	return f.text, f.err
}

// createImageWithText draws text in black on white with basicfont, scaled
// up by an integer factor so Tesseract has something to read.
func createImageWithText(text string, scale int) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, len(text)*7+20, 30))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(10), Y: fixed.I(20)},
	}
	d.DrawString(text)

	b := small.Bounds()
	big := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < big.Rect.Dy(); y++ {
		for x := 0; x < big.Rect.Dx(); x++ {
			big.Set(x, y, small.At(x/scale, y/scale))
		}
	}
	return big
}

func TestVerifyText(t *testing.T) {
	img := createImageWithText("TEAM ROCKET", 1)
	rect := image.Rect(5, 2, 90, 28)

	tests := []struct {
		name      string
		read      string
		wantMatch bool
	}{
		{"exact", "TEAM ROCKET", true},
		{"case and spacing", "team  rocket\n", true},
		{"one misread", "TEAM R0CKET", true},
		{"garbage", "~~~", false},
		{"different word", "MEOWTH", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecognizer{text: tt.read}
			result, err := VerifyText(rec, img, rect, "TEAM ROCKET", "")
			if err != nil {
				t.Fatalf("VerifyText failed: %v", err)
			}
			if result.Match != tt.wantMatch {
				t.Errorf("Match = %v (similarity %.2f), want %v", result.Match, result.Similarity, tt.wantMatch)
			}
			if result.Recognized != tt.read {
				t.Errorf("Recognized = %q, want %q", result.Recognized, tt.read)
			}
			if rec.gotLang != DefaultLanguage {
				t.Errorf("language = %q, want %q", rec.gotLang, DefaultLanguage)
			}
			if rec.gotSize != image.Pt(170, 52) {
				t.Errorf("recognizer saw %v, want the crop enlarged to 170x52", rec.gotSize)
			}
		})
	}
}

func TestVerifyText_Errors(t *testing.T) {
	img := createImageWithText("X", 1)

	if _, err := VerifyText(&fakeRecognizer{}, img, image.Rect(0, 0, 500, 10), "X", "eng"); err == nil {
		t.Error("rectangle outside the image should fail")
	}

	boom := errors.New("engine down")
	_, err := VerifyText(&fakeRecognizer{err: boom}, img, image.Rect(0, 0, 10, 10), "X", "eng")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"TEAM ROCKET", "TEAM ROCKET", 1},
		{"Team Rocket", "TEAMROCKET", 1},
		{"ABCD", "ABCE", 0.75},
		{"ABC", "", 0},
		{"", "", 1},
		{"!!!", "...", 1},
		{"kitten", "sitting", 1 - 3.0/7},
		{"café", "CAFÉ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %g, want %g", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTesseract_ReadsRenderedText(t *testing.T) {
	img := createImageWithText("HELLO", 4)

	result, err := VerifyText(Tesseract{}, img, img.Bounds(), "HELLO", "eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if result.Similarity < 0.6 {
		t.Errorf("read %q for HELLO (similarity %.2f)", result.Recognized, result.Similarity)
	}
}
