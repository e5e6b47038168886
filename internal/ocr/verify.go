package ocr

import (
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"

	localimaging "github.com/ironsheep/neon-card/internal/imaging"
)

// MatchThreshold is the similarity at or above which a read-back counts as
// the requested text.
const MatchThreshold = 0.8

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Glowing strokes are thin at small sizes; doubling the crop helps the
// recognizer more than any threshold tuning.
const upscale = 2

// VerifyResult reports how well a rendered card reads back.
type VerifyResult struct {
	Want       string  `json:"want"`
	Recognized string  `json:"recognized"`
	Similarity float64 `json:"similarity"`
	Match      bool    `json:"match"`
}

// VerifyText crops rect out of img, prepares it for recognition and checks
// that rec reads want back from it.
//
// Both strings are reduced to upper-case letters and digits before they are
// compared, so glow artifacts read as punctuation and case differences do
// not count against the match.
func VerifyText(rec Recognizer, img image.Image, rect image.Rectangle, want, language string) (*VerifyResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	crop, err := localimaging.CropRegion(img, rect, upscale)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare OCR input: %w", err)
	}
	prepared := imaging.AdjustContrast(imaging.Grayscale(crop), 20)

	got, err := rec.Recognize(prepared, language)
	if err != nil {
		return nil, err
	}

	sim := Similarity(want, got)
	return &VerifyResult{
		Want:       want,
		Recognized: got,
		Similarity: sim,
		Match:      sim >= MatchThreshold,
	}, nil
}

// Similarity returns 1 - editDistance/maxLen over the normalized forms of a
// and b: 1 for identical text, 0 for nothing in common.
func Similarity(a, b string) float64 {
	ra, rb := []rune(normalize(a)), []rune(normalize(b))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
