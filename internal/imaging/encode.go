package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is the quality used for downloaded cards.
const DefaultJPEGQuality = 95

// EncodeResult carries an encoded image for transport in a JSON response.
type EncodeResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeJPEG writes img to w as a JPEG. Qualities outside 1..100 are
// clamped by the encoder.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}

// SaveJPEG writes img to path as a JPEG regardless of the file extension.
func SaveJPEG(path string, img image.Image, quality int) error {
	return saveFile(path, func(w io.Writer) error { return EncodeJPEG(w, img, quality) })
}

// SavePNG writes img to path as a PNG regardless of the file extension.
func SavePNG(path string, img image.Image) error {
	return saveFile(path, func(w io.Writer) error {
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	})
}

func saveFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, cerr)
		}
	}()
	return encode(f)
}

// EncodeBase64 encodes img as PNG or JPEG and wraps it for transport.
// quality only applies to JPEG.
func EncodeBase64(img image.Image, format imaging.Format, quality int) (*EncodeResult, error) {
	var mime string
	switch format {
	case imaging.PNG:
		mime = "image/png"
	case imaging.JPEG:
		mime = "image/jpeg"
	default:
		return nil, fmt.Errorf("unsupported output format: %v", format)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodeResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    mime,
	}, nil
}
