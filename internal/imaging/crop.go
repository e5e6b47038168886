package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion copies rect out of img and optionally rescales it.
//
// rect is in img's coordinate space and must lie inside its bounds. A scale
// of 1 (or any non-positive value) keeps the native size; other values
// resize with a Lanczos filter, which keeps thin glyph strokes legible when
// a bar is enlarged for inspection or OCR.
func CropRegion(img image.Image, rect image.Rectangle, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: width and height must be positive", rect)
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %g collapses %v to nothing", scale, rect.Size())
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}

// Crop is CropRegion followed by PNG encoding for transport.
func Crop(img image.Image, rect image.Rectangle, scale float64) (*EncodeResult, error) {
	cropped, err := CropRegion(img, rect, scale)
	if err != nil {
		return nil, err
	}
	return EncodeBase64(cropped, imaging.PNG, 0)
}
