package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/neon-card/internal/detection"
	"github.com/ironsheep/neon-card/internal/neon"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(envMap(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty environment mismatch (-want +got):\n%s", diff)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("OCRLanguage = %q, want eng", cfg.OCRLanguage)
	}
}

func TestLoad_Environment(t *testing.T) {
	fonts := strings.Join([]string{"/fonts/Anton.ttf", " ", "/fonts/Oswald-Bold.ttf"}, string(os.PathListSeparator))
	cfg, err := Load(envMap(map[string]string{
		EnvLogLevel: "DEBUG",
		EnvFonts:    fonts,
		EnvOCRLang:  "deu",
		EnvTessdata: "/opt/tessdata",
		EnvStyle:    filepath.Join(t.TempDir(), "absent.json"),
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug should be enabled")
	}
	if diff := cmp.Diff([]string{"/fonts/Anton.ttf", "/fonts/Oswald-Bold.ttf"}, cfg.FontPaths); diff != "" {
		t.Errorf("FontPaths mismatch (-want +got):\n%s", diff)
	}
	if cfg.OCRLanguage != "deu" || cfg.TessdataPrefix != "/opt/tessdata" {
		t.Errorf("ocr settings = %q, %q", cfg.OCRLanguage, cfg.TessdataPrefix)
	}
	if diff := cmp.Diff(neon.DefaultStyle(), cfg.Style); diff != "" {
		t.Errorf("missing style file should keep defaults (-want +got):\n%s", diff)
	}
}

func TestLoadStyleFile_PartialOverride(t *testing.T) {
	path := writeFile(t, `{
		"bar": {"row_activity": 0.1},
		"style": {"outer_glow": {"blur": 30}, "inner_glow": {"enabled": true}}
	}`)

	file, err := LoadStyleFile(path)
	if err != nil {
		t.Fatalf("LoadStyleFile: %v", err)
	}

	wantBar := detection.DefaultBarConfig()
	wantBar.RowActivity = 0.1
	if diff := cmp.Diff(wantBar, file.Bar); diff != "" {
		t.Errorf("bar mismatch (-want +got):\n%s", diff)
	}

	wantStyle := neon.DefaultStyle()
	wantStyle.OuterGlow.Blur = 30
	wantStyle.InnerGlow.Enabled = true
	if diff := cmp.Diff(wantStyle, file.Style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadStyleFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file", "  \n", false},
		{"malformed json", `{"bar": `, true},
		{"wrong type", `{"bar": {"row_activity": "high"}}`, true},
		{"invalid bar", `{"bar": {"scan_start": 0.9}}`, true},
		{"invalid style", `{"style": {"fill": []}}`, true},
		{"bad colour", `{"style": {"fill": [{"offset": 0, "color": "cyan"}]}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStyleFile(writeFile(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadStyleFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidStyleFile(t *testing.T) {
	path := writeFile(t, `not json`)
	if _, err := Load(envMap(map[string]string{EnvStyle: path})); err == nil {
		t.Error("Load should report a malformed style file")
	}
}

func TestLoadStyleFile_Directory(t *testing.T) {
	if _, err := LoadStyleFile(t.TempDir()); err == nil {
		t.Error("a directory is not a style file")
	}
}
