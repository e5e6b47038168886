package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/neon-card/internal/card"
	"github.com/ironsheep/neon-card/internal/config"
	"github.com/ironsheep/neon-card/internal/detection"
	"github.com/ironsheep/neon-card/internal/imaging"
	"github.com/ironsheep/neon-card/internal/ocr"
)

// runRender renders a single card and prints the result as JSON.
func runRender(args []string, cfg config.Config, gen *card.Generator, rec ocr.Recognizer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	base := fs.String("base", "", "template image (required)")
	text := fs.String("text", "", "text to draw (required)")
	out := fs.String("out", "", "output JPEG (default: card_<text>_<ms>.jpg next to the template)")
	verify := fs.Bool("verify", false, "read the bar back with OCR")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *base == "" || *text == "" {
		fmt.Fprintln(os.Stderr, "render: -base and -text are required")
		fs.Usage()
		return 2
	}

	img, err := imaging.NewImageCache().Load(*base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}
	c, err := gen.Generate(img, *text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}

	path := *out
	if path == "" {
		path = filepath.Join(filepath.Dir(*base), card.FileName(c.Text, time.Now()))
	}
	if err := imaging.SaveJPEG(path, c.Image, imaging.DefaultJPEGQuality); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}

	result := map[string]interface{}{
		"output_path": path,
		"text":        c.Text,
		"bar":         c.Bar,
		"render":      c.Render,
	}
	if *verify {
		res, err := ocr.VerifyText(rec, c.Image, c.Bar.Rect.Bounds(), c.Text, cfg.OCRLanguage)
		if err != nil {
			result["verify_error"] = err.Error()
		} else {
			result["verify"] = res
		}
	}
	return printJSON(result)
}

// runLocate prints the detected bar, optionally saving an outlined preview.
func runLocate(args []string, cfg config.Config) int {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	base := fs.String("base", "", "template image (required)")
	outline := fs.String("outline", "", "write a PNG preview with the bar outlined")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *base == "" {
		fmt.Fprintln(os.Stderr, "locate: -base is required")
		fs.Usage()
		return 2
	}

	img, err := imaging.NewImageCache().Load(*base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "locate: %v\n", err)
		return 1
	}
	bar := detection.DetectBar(img, cfg.Bar)

	if *outline != "" {
		preview := imaging.OutlineRegion(img, bar.Rect.Bounds(), imaging.DefaultOutlineColor, 2)
		if err := imaging.SavePNG(*outline, preview); err != nil {
			fmt.Fprintf(os.Stderr, "locate: %v\n", err)
			return 1
		}
	}
	return printJSON(bar)
}

func printJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		return 1
	}
	return 0
}
