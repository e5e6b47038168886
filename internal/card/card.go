package card

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/text/unicode/norm"

	"github.com/ironsheep/neon-card/internal/detection"
	"github.com/ironsheep/neon-card/internal/neon"
)

// ErrEmptyText is returned when the requested text is blank.
var ErrEmptyText = errors.New("card text is empty")

// NormalizeText trims surrounding whitespace and converts s to Unicode NFC,
// so that accented names typed with combining marks shape as single glyphs.
func NormalizeText(s string) (string, error) {
	text := norm.NFC.String(strings.TrimSpace(s))
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// Card is a generated welcome card.
type Card struct {
	// Image is the finished card. Its bounds start at the origin.
	Image *image.NRGBA

	// Text is the normalized text that was drawn.
	Text string

	Bar    *detection.BarResult
	Render *neon.RenderResult
}

// Generator draws names onto template images.
//
// A Generator is safe for concurrent use when its compositor's Shaper is;
// neon.FontShaper is.
type Generator struct {
	bar        detection.BarConfig
	compositor *neon.Compositor
}

// NewGenerator returns a Generator that locates bars with bar and draws
// with compositor.
func NewGenerator(bar detection.BarConfig, compositor *neon.Compositor) (*Generator, error) {
	if compositor == nil {
		return nil, errors.New("card: nil compositor")
	}
	if err := bar.Validate(); err != nil {
		return nil, fmt.Errorf("card: bar config: %w", err)
	}
	return &Generator{bar: bar, compositor: compositor}, nil
}

// Generate draws text into the name bar of a copy of base.
//
// base is never modified. The bar is located on the copy, and text is
// rendered into it (or into the fallback rectangle when no bar is found).
// The only error is ErrEmptyText.
func (g *Generator) Generate(base image.Image, text string) (*Card, error) {
	text, err := NormalizeText(text)
	if err != nil {
		return nil, err
	}

	img := imaging.Clone(base)
	bar := detection.DetectBar(img, g.bar)
	render := g.compositor.Render(img, text, bar.Rect.Bounds())

	return &Card{
		Image:  img,
		Text:   text,
		Bar:    bar,
		Render: render,
	}, nil
}

// FileName returns the download name for a card: "card_", the text with
// every whitespace run replaced by "_", "_", the Unix time in milliseconds
// and ".jpg". Path separators in the text are replaced too, so the result
// is always a single path element.
func FileName(text string, t time.Time) string {
	var b strings.Builder
	b.WriteString("card_")
	inSpace := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		case r == '/' || r == '\\':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
		inSpace = false
	}
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(t.UnixMilli(), 10))
	b.WriteString(".jpg")
	return b.String()
}
