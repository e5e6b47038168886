package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Recognizer reads a single line of text from an image.
type Recognizer interface {
	Recognize(img image.Image, language string) (string, error)
}

// Tesseract is a Recognizer backed by the Tesseract engine through gosseract.
// A zero value uses the system tessdata directory.
type Tesseract struct {
	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string
}

// Recognize implements Recognizer. img is expected to hold one line of text,
// such as a cropped name bar.
func (t Tesseract) Recognize(img image.Image, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		client.TessdataPrefix = t.TessdataPrefix
	}
	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("failed to set page segmentation: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode OCR input: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
