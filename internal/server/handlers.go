package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	dimaging "github.com/disintegration/imaging"

	"github.com/ironsheep/neon-card/internal/card"
	"github.com/ironsheep/neon-card/internal/detection"
	"github.com/ironsheep/neon-card/internal/imaging"
	"github.com/ironsheep/neon-card/internal/neon"
	"github.com/ironsheep/neon-card/internal/ocr"
)

// errInvalidArgs marks tool errors caused by the caller's arguments. They are
// reported with the invalid-params code rather than as tool failures.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "card_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments return -32602; any other tool error returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logDebug("tool %s failed: %v", params.Name, err)
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Template Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Bar Detection
	case "card_locate_bar":
		return s.handleLocateBar(args)
	case "card_outline_bar":
		return s.handleOutlineBar(args)

	// Card Rendering
	case "card_render":
		return s.handleCardRender(args)
	case "card_verify_text":
		return s.handleVerifyText(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and checks that path is present.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	if v.path() == "" {
		return fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return nil
}

// === Template Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (a *pathArgs) path() string { return a.Path }

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Bar Detection Handlers ===

type locateBarResult struct {
	Width  int `json:"image_width"`
	Height int `json:"image_height"`
	*detection.BarResult
}

func (s *Server) handleLocateBar(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &locateBarResult{
		Width:     b.Dx(),
		Height:    b.Dy(),
		BarResult: detection.DetectBar(img, s.bar),
	}, nil
}

type outlineBarArgs struct {
	pathArgs
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
}

type outlineBarResult struct {
	Bar      detection.Rectangle `json:"bar"`
	Detected bool                `json:"detected"`
	*imaging.EncodeResult
}

func (s *Server) handleOutlineBar(args json.RawMessage) (interface{}, error) {
	var a outlineBarArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOutlineColor
	}
	if a.Thickness == 0 {
		a.Thickness = 2
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	bar := detection.DetectBar(img, s.bar)
	outlined := imaging.OutlineRegion(img, bar.Rect.Bounds(), a.Color, a.Thickness)

	encoded, err := imaging.EncodeBase64(outlined, dimaging.PNG, 0)
	if err != nil {
		return nil, err
	}
	return &outlineBarResult{Bar: bar.Rect, Detected: bar.Detected, EncodeResult: encoded}, nil
}

// === Card Rendering Handlers ===

type cardRenderArgs struct {
	pathArgs
	Text         string `json:"text"`
	OutputPath   string `json:"output_path"`
	IncludeImage bool   `json:"include_image"`
	Verify       bool   `json:"verify"`
}

type cardRenderResult struct {
	OutputPath  string                `json:"output_path"`
	Text        string                `json:"text"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Bar         *detection.BarResult  `json:"bar"`
	Render      *neon.RenderResult    `json:"render"`
	Image       *imaging.EncodeResult `json:"image,omitempty"`
	Verify      *ocr.VerifyResult     `json:"verify,omitempty"`
	VerifyError string                `json:"verify_error,omitempty"`
}

func (s *Server) handleCardRender(args json.RawMessage) (interface{}, error) {
	var a cardRenderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, errors.New("card rendering is not configured")
	}

	base, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := s.generator.Generate(base, a.Text)
	if err != nil {
		if errors.Is(err, card.ErrEmptyText) {
			return nil, fmt.Errorf("%w: %w", errInvalidArgs, err)
		}
		return nil, err
	}

	out := a.OutputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(a.Path), card.FileName(c.Text, s.now()))
	}
	if err := imaging.SaveJPEG(out, c.Image, imaging.DefaultJPEGQuality); err != nil {
		return nil, err
	}
	logDebug("card %q written to %s (font %dpx)", c.Text, out, c.Render.Fit.Size)

	b := c.Image.Bounds()
	result := &cardRenderResult{
		OutputPath: out,
		Text:       c.Text,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Bar:        c.Bar,
		Render:     c.Render,
	}
	if a.IncludeImage {
		result.Image, err = imaging.EncodeBase64(c.Image, dimaging.JPEG, imaging.DefaultJPEGQuality)
		if err != nil {
			return nil, err
		}
	}
	if a.Verify {
		// The card is already saved; a failed read-back is reported, not fatal.
		result.Verify, err = s.verify(c.Image, c.Bar.Rect, c.Text, "")
		if err != nil {
			result.VerifyError = err.Error()
		}
	}
	return result, nil
}

type verifyTextArgs struct {
	pathArgs
	Text     string               `json:"text"`
	Region   *detection.Rectangle `json:"region"`
	Language string               `json:"language"`
}

type verifyTextResult struct {
	Region detection.Rectangle `json:"region"`
	*ocr.VerifyResult
}

func (s *Server) handleVerifyText(args json.RawMessage) (interface{}, error) {
	var a verifyTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	want, err := card.NormalizeText(a.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArgs, err)
	}

	// Cards are rewritten in place, so never trust a cached decode.
	s.cache.Evict(a.Path)
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region detection.Rectangle
	if a.Region != nil {
		region = *a.Region
	} else {
		region = detection.DetectBar(img, s.bar).Rect
	}

	res, err := s.verify(img, region, want, a.Language)
	if err != nil {
		return nil, err
	}
	return &verifyTextResult{Region: region, VerifyResult: res}, nil
}

func (s *Server) verify(img image.Image, region detection.Rectangle, want, language string) (*ocr.VerifyResult, error) {
	if s.recognizer == nil {
		return nil, errors.New("OCR is not configured")
	}
	if language == "" {
		language = s.ocrLang
	}
	return ocr.VerifyText(s.recognizer, img, region.Bounds(), want, language)
}
