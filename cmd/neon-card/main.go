package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/neon-card/internal/card"
	"github.com/ironsheep/neon-card/internal/config"
	"github.com/ironsheep/neon-card/internal/neon"
	"github.com/ironsheep/neon-card/internal/ocr"
	"github.com/ironsheep/neon-card/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("neon-card %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	config.SetDebugLogging(cfg.Debug)
	server.SetDebugLogging(cfg.Debug)
	if cfg.Debug {
		log.Printf("Neon Card v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	gen, closeFonts, err := newGenerator(cfg)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}
	defer closeFonts()
	rec := ocr.Tesseract{TessdataPrefix: cfg.TessdataPrefix}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "render":
			os.Exit(runRender(os.Args[2:], cfg, gen, rec))
		case "locate":
			os.Exit(runLocate(os.Args[2:], cfg))
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q; see neon-card --help\n", os.Args[1])
			os.Exit(2)
		}
	}

	srv := server.New(server.Options{
		Generator:   gen,
		Bar:         cfg.Bar,
		Recognizer:  rec,
		OCRLanguage: cfg.OCRLanguage,
		Version:     Version,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// newGenerator builds the rendering pipeline from cfg. Font files that
// fail to load are logged and skipped.
func newGenerator(cfg config.Config) (*card.Generator, func(), error) {
	shaper, skipped, err := neon.NewFontShaper(cfg.FontPaths...)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range skipped {
		log.Printf("Skipping font: %v", e)
	}
	if cfg.Debug {
		log.Printf("Using font %s (%s)", shaper.Family(), shaper.Source())
	}

	comp, err := neon.NewCompositor(shaper, cfg.Style)
	if err != nil {
		shaper.Close()
		return nil, nil, err
	}
	gen, err := card.NewGenerator(cfg.Bar, comp)
	if err != nil {
		shaper.Close()
		return nil, nil, err
	}
	return gen, func() { shaper.Close() }, nil
}

func printUsage() {
	fmt.Println("neon-card - neon welcome card generator and MCP server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  neon-card                      Serve MCP over stdin/stdout")
	fmt.Println("  neon-card render [flags]       Render one card to a JPEG")
	fmt.Println("  neon-card locate [flags]       Print the detected name bar")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  NEON_CARD_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  NEON_CARD_FONTS=a.ttf:b.otf  Font files tried in order")
	fmt.Println("  NEON_CARD_STYLE=style.json   Style and bar detection overrides")
	fmt.Println("  NEON_CARD_OCR_LANG=eng       Tesseract language for verification")
	fmt.Println("  NEON_CARD_TESSDATA=/path     Tesseract data directory")
	fmt.Println()
	fmt.Println("In server mode the MCP protocol is spoken over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
