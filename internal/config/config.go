package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/neon-card/internal/detection"
	"github.com/ironsheep/neon-card/internal/neon"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel = "NEON_CARD_LOG_LEVEL"
	EnvFonts    = "NEON_CARD_FONTS"
	EnvStyle    = "NEON_CARD_STYLE"
	EnvOCRLang  = "NEON_CARD_OCR_LANG"
	EnvTessdata = "NEON_CARD_TESSDATA"
)

// DefaultOCRLanguage is the Tesseract language used for legibility checks.
const DefaultOCRLanguage = "eng"

// Config is the resolved runtime configuration.
type Config struct {
	Debug          bool
	FontPaths      []string
	StylePath      string
	OCRLanguage    string
	TessdataPrefix string

	Style neon.Style
	Bar   detection.BarConfig
}

// StyleFile is the on-disk tuning format. Fields left out keep their
// defaults, so a file may override a single threshold:
//
//	{"bar": {"row_activity": 0.1}, "style": {"outer_glow": {"blur": 30}}}
type StyleFile struct {
	Style neon.Style          `json:"style"`
	Bar   detection.BarConfig `json:"bar"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OCRLanguage: DefaultOCRLanguage,
		Style:       neon.DefaultStyle(),
		Bar:         detection.DefaultBarConfig(),
	}
}

// FromEnv builds a Config from the process environment. See Load for how
// the style file is treated.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from the variables returned by getenv.
//
// NEON_CARD_LOG_LEVEL=debug turns on debug logging. NEON_CARD_FONTS is a
// path list (":" separated on Unix) of font files tried in order.
// NEON_CARD_STYLE names a JSON StyleFile; a missing or empty file leaves the
// defaults in place, while unreadable, malformed or out-of-range content is
// an error.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	cfg.Debug = strings.EqualFold(strings.TrimSpace(getenv(EnvLogLevel)), "debug")
	for _, p := range filepath.SplitList(getenv(EnvFonts)) {
		if p = strings.TrimSpace(p); p != "" {
			cfg.FontPaths = append(cfg.FontPaths, p)
		}
	}
	if lang := strings.TrimSpace(getenv(EnvOCRLang)); lang != "" {
		cfg.OCRLanguage = lang
	}
	cfg.TessdataPrefix = strings.TrimSpace(getenv(EnvTessdata))

	cfg.StylePath = strings.TrimSpace(getenv(EnvStyle))
	file, err := LoadStyleFile(cfg.StylePath)
	if err != nil {
		return cfg, err
	}
	cfg.Style, cfg.Bar = file.Style, file.Bar
	logDebug("config: fonts=%v style=%q ocr=%s", cfg.FontPaths, cfg.StylePath, cfg.OCRLanguage)
	return cfg, nil
}

// LoadStyleFile reads a StyleFile from path on top of the defaults.
func LoadStyleFile(path string) (StyleFile, error) {
	file := StyleFile{Style: neon.DefaultStyle(), Bar: detection.DefaultBarConfig()}
	if path == "" {
		return file, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logDebug("config: style file %q not found, using defaults", path)
			return file, nil
		}
		return file, fmt.Errorf("load style: open %q: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return file, fmt.Errorf("load style: read %q: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("load style: parse %q: %w", path, err)
	}
	if err := file.Style.Validate(); err != nil {
		return file, fmt.Errorf("load style: %q: style: %w", path, err)
	}
	if err := file.Bar.Validate(); err != nil {
		return file, fmt.Errorf("load style: %q: bar: %w", path, err)
	}
	return file, nil
}
