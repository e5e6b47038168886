package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestSaveJPEG(t *testing.T) {
	img := createInMemoryImage(40, 30, color.RGBA{200, 30, 255, 255})

	// The extension is irrelevant: cards are always JPEG.
	path := filepath.Join(t.TempDir(), "card.png")
	if err := SaveJPEG(path, img, DefaultJPEGQuality); err != nil {
		t.Fatalf("SaveJPEG failed: %v", err)
	}

	decoded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if decoded.Bounds().Size() != image.Pt(40, 30) {
		t.Errorf("size = %v, want 40x30", decoded.Bounds().Size())
	}

	if err := SaveJPEG(filepath.Join(t.TempDir(), "missing", "card.jpg"), img, 95); err == nil {
		t.Error("SaveJPEG into a missing directory should fail")
	}
}

func TestSavePNG(t *testing.T) {
	img := createInMemoryImage(20, 10, color.RGBA{10, 200, 255, 255})
	path := filepath.Join(t.TempDir(), "preview.jpg")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if got := color.RGBAModel.Convert(decoded.At(3, 3)); got != (color.RGBA{10, 200, 255, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, createInMemoryImage(16, 16, color.White), DefaultJPEGQuality); err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	if _, err := jpeg.Decode(&buf); err != nil {
		t.Errorf("output is not a JPEG: %v", err)
	}
}

func TestEncodeBase64(t *testing.T) {
	img := createInMemoryImage(12, 8, color.Black)

	tests := []struct {
		name     string
		format   imaging.Format
		wantMime string
		decode   func([]byte) error
	}{
		{"png", imaging.PNG, "image/png", func(b []byte) error {
			_, err := png.Decode(bytes.NewReader(b))
			return err
		}},
		{"jpeg", imaging.JPEG, "image/jpeg", func(b []byte) error {
			_, err := jpeg.Decode(bytes.NewReader(b))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EncodeBase64(img, tt.format, DefaultJPEGQuality)
			if err != nil {
				t.Fatalf("EncodeBase64 failed: %v", err)
			}
			if result.MimeType != tt.wantMime {
				t.Errorf("MimeType = %q, want %q", result.MimeType, tt.wantMime)
			}
			if result.Width != 12 || result.Height != 8 {
				t.Errorf("dimensions: got %dx%d, want 12x8", result.Width, result.Height)
			}
			raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
			if err != nil {
				t.Fatalf("bad base64: %v", err)
			}
			if err := tt.decode(raw); err != nil {
				t.Errorf("payload does not decode: %v", err)
			}
		})
	}

	if _, err := EncodeBase64(img, imaging.GIF, 0); err == nil {
		t.Error("GIF output should be rejected")
	}
}
