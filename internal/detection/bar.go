package detection

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Rectangle is an axis-aligned pixel rectangle. X and Y locate the top-left
// corner in image coordinates; Width and Height are non-negative.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds converts r to an image.Rectangle.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BarConfig holds the tunable thresholds of the bar detector.
//
// Fractions are relative to the image dimensions. The zero value is not
// useful; start from DefaultBarConfig and override individual fields.
type BarConfig struct {
	// ScanStart and ScanEnd bound the scanned rows as fractions of the
	// image height: rows [floor(ScanStart*h), floor(ScanEnd*h)).
	ScanStart float64 `json:"scan_start"`
	ScanEnd   float64 `json:"scan_end"`

	// BrightnessThreshold is the mean RGB value (0-255) a pixel must
	// exceed to count as bright. Alpha is ignored.
	BrightnessThreshold float64 `json:"brightness_threshold"`

	// RowActivity is the fraction of the image width that must be bright
	// for a row to be part of a run.
	RowActivity float64 `json:"row_activity"`

	// MinAreaFraction rejects candidates whose area does not exceed this
	// fraction of the image area.
	MinAreaFraction float64 `json:"min_area_fraction"`

	// MinAspect rejects candidates whose width/(height+1) does not exceed it.
	MinAspect float64 `json:"min_aspect"`

	// Fallback geometry, used when no candidate is accepted.
	FallbackWidth  float64 `json:"fallback_width"`
	FallbackHeight float64 `json:"fallback_height"`
	FallbackY      float64 `json:"fallback_y"`
}

// DefaultBarConfig returns the detector tuning used for the welcome card.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		ScanStart:           0.35,
		ScanEnd:             0.80,
		BrightnessThreshold: 200,
		RowActivity:         0.30,
		MinAreaFraction:     0.001,
		MinAspect:           4,
		FallbackWidth:       0.7,
		FallbackHeight:      0.075,
		FallbackY:           0.55,
	}
}

// Validate reports the first field of c that makes detection meaningless.
func (c BarConfig) Validate() error {
	if c.ScanStart < 0 || c.ScanEnd > 1 || c.ScanStart >= c.ScanEnd {
		return fmt.Errorf("scan band [%g, %g) must satisfy 0 <= start < end <= 1", c.ScanStart, c.ScanEnd)
	}
	if c.BrightnessThreshold < 0 || c.BrightnessThreshold >= 255 {
		return fmt.Errorf("brightness_threshold must be in [0, 255), got %g", c.BrightnessThreshold)
	}
	if c.RowActivity < 0 || c.RowActivity >= 1 {
		return fmt.Errorf("row_activity must be in [0, 1), got %g", c.RowActivity)
	}
	if c.MinAreaFraction < 0 || c.MinAspect < 0 {
		return errors.New("min_area_fraction and min_aspect must not be negative")
	}
	if c.FallbackWidth <= 0 || c.FallbackWidth > 1 || c.FallbackHeight <= 0 || c.FallbackHeight > 1 {
		return errors.New("fallback_width and fallback_height must be in (0, 1]")
	}
	if c.FallbackY < 0 || c.FallbackY+c.FallbackHeight > 1 {
		return fmt.Errorf("fallback_y %g places the fallback bar outside the image", c.FallbackY)
	}
	return nil
}

// BarCandidate is one run of active rows measured by the detector.
type BarCandidate struct {
	Rect     Rectangle `json:"rect"`
	Area     int       `json:"area"`
	Aspect   float64   `json:"aspect"`
	Accepted bool      `json:"accepted"`
}

// BarResult describes the outcome of a bar scan.
type BarResult struct {
	// Rect is the selected bar, or the fallback rectangle when Detected is false.
	Rect Rectangle `json:"rect"`

	// Detected reports whether Rect came from the image rather than the fallback.
	Detected bool `json:"detected"`

	// Candidates lists every run found, in scan order, accepted or not.
	Candidates []BarCandidate `json:"candidates"`
}

// LocateBar returns the bar rectangle of img using DefaultBarConfig.
// It never fails: when nothing qualifies the fallback rectangle is returned.
func LocateBar(img image.Image) Rectangle {
	return DetectBar(img, DefaultBarConfig()).Rect
}

// DetectBar scans img for the widest bright horizontal band.
//
// # Algorithm
//
// Rows in the scan band are classified one at a time. A row is active when
// its count of bright pixels exceeds cfg.RowActivity*width. Consecutive
// active rows form a run; while a run is open the detector keeps the
// minimum and maximum x of every bright pixel seen, so ragged anti-aliased
// edges still collapse into one rectangle. A run closes on the first
// inactive row or at the end of the band and is then measured:
//
//	rectW  = maxX - minX + 1
//	rectH  = number of rows in the run
//	aspect = rectW / (rectH + 1)
//
// A run is accepted when rectW*rectH > cfg.MinAreaFraction*w*h and
// aspect > cfg.MinAspect. The widest accepted run wins; on ties the
// earliest run is kept.
//
// The image is only read, so repeated calls on the same image return
// identical results.
func DetectBar(img image.Image, cfg BarConfig) *BarResult {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	result := &BarResult{Candidates: []BarCandidate{}}

	startY := floorFrac(height, cfg.ScanStart)
	endY := floorFrac(height, cfg.ScanEnd)
	if startY < 0 {
		startY = 0
	}
	if endY > height {
		endY = height
	}

	rowThreshold := cfg.RowActivity * float64(width)
	minArea := cfg.MinAreaFraction * float64(width) * float64(height)
	cutoff := cfg.BrightnessThreshold * 3

	var (
		inRun    bool
		runStart int
		minX     int
		maxX     int
	)

	closeRun := func(endRow int) {
		rect := Rectangle{
			X:      bounds.Min.X + minX,
			Y:      bounds.Min.Y + runStart,
			Width:  maxX - minX + 1,
			Height: endRow - runStart,
		}
		area := rect.Width * rect.Height
		aspect := float64(rect.Width) / float64(rect.Height+1)
		result.Candidates = append(result.Candidates, BarCandidate{
			Rect:     rect,
			Area:     area,
			Aspect:   math.Round(aspect*100) / 100,
			Accepted: float64(area) > minArea && aspect > cfg.MinAspect,
		})
		inRun = false
	}

	for y := startY; y < endY; y++ {
		count, rowMin, rowMax := scanRow(img, bounds, y, cutoff)
		if float64(count) <= rowThreshold || count == 0 {
			if inRun {
				closeRun(y)
			}
			continue
		}
		if !inRun {
			inRun = true
			runStart = y
			minX, maxX = rowMin, rowMax
			continue
		}
		if rowMin < minX {
			minX = rowMin
		}
		if rowMax > maxX {
			maxX = rowMax
		}
	}
	if inRun {
		closeRun(endY)
	}

	best := -1
	for i, c := range result.Candidates {
		if !c.Accepted {
			continue
		}
		// Strictly greater keeps the earliest of equally wide candidates.
		if best < 0 || c.Rect.Width > result.Candidates[best].Rect.Width {
			best = i
		}
	}

	if best >= 0 {
		result.Rect = result.Candidates[best].Rect
		result.Detected = true
		return result
	}

	fallback := FallbackRect(width, height, cfg)
	fallback.X += bounds.Min.X
	fallback.Y += bounds.Min.Y
	result.Rect = fallback
	return result
}

// FallbackRect returns the rectangle used when no bar is detected in a
// width x height image: horizontally centered, cfg.FallbackWidth of the
// width wide, cfg.FallbackHeight of the height tall, with its top edge at
// cfg.FallbackY of the height. Coordinates are relative to the image origin.
func FallbackRect(width, height int, cfg BarConfig) Rectangle {
	w := float64(width)
	return Rectangle{
		X:      int(math.Floor((w-w*cfg.FallbackWidth)/2 + epsilon)),
		Y:      floorFrac(height, cfg.FallbackY),
		Width:  floorFrac(width, cfg.FallbackWidth),
		Height: floorFrac(height, cfg.FallbackHeight),
	}
}

// scanRow counts the bright pixels of row y (relative to bounds.Min) and
// returns the count with the first and last bright x, also relative. A pixel
// is bright when R+G+B of its non-premultiplied 8-bit sample exceeds cutoff,
// which is the mean test without the division.
func scanRow(img image.Image, bounds image.Rectangle, y int, cutoff float64) (count, minX, maxX int) {
	minX, maxX = -1, -1
	width := bounds.Dx()
	mark := func(x int, r, g, b uint8) {
		if float64(int(r)+int(g)+int(b)) > cutoff {
			if minX < 0 {
				minX = x
			}
			maxX = x
			count++
		}
	}

	switch src := img.(type) {
	case *image.NRGBA:
		row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			i := x * 4
			mark(x, row[i], row[i+1], row[i+2])
		}
	case *image.RGBA:
		row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			i := x * 4
			r, g, b, a := row[i], row[i+1], row[i+2], row[i+3]
			if a != 0xff && a != 0 {
				c := color.NRGBAModel.Convert(color.RGBA{r, g, b, a}).(color.NRGBA)
				r, g, b = c.R, c.G, c.B
			}
			mark(x, r, g, b)
		}
	default:
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			mark(x, c.R, c.G, c.B)
		}
	}
	return count, minX, maxX
}

// epsilon absorbs binary rounding in products such as 0.55*600 so that
// fractions with integral results floor to the intended value.
const epsilon = 1e-9

func floorFrac(n int, f float64) int {
	return int(math.Floor(float64(n)*f + epsilon))
}
