package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Template Information
		{
			Name:        "image_load",
			Description: "Load a template image and return its dimensions, format and file size. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Bar Detection
		{
			Name:        "card_locate_bar",
			Description: "Find the bright horizontal name bar of a template. Returns the bar rectangle, whether it was detected or is the fallback, and every candidate band the scan measured.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the template image"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "card_outline_bar",
			Description: "Draw the detected name bar as an outlined rectangle with its size, returned as base64-encoded PNG. Use this to check which region a card will be drawn into.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the template image"),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (e.g., '#FF00FF' or '#FF00FF80'). Default magenta",
						"default":     "#FF00FF",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline thickness in pixels. Default 2",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},

		// Card Rendering
		{
			Name:        "card_render",
			Description: "Render text as glowing neon lettering into the name bar of a template and save the card as JPEG. Returns the output path, the bar used and the fitted font size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the template image"),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to draw, typically a team or guest name",
					},
					"output_path": pathProperty("Where to write the JPEG. Default: card_<text>_<millis>.jpg next to the template"),
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the card as base64-encoded JPEG. Default false",
						"default":     false,
					},
					"verify": map[string]interface{}{
						"type":        "boolean",
						"description": "Read the rendered bar back with OCR and report whether it matches the text. Default false",
						"default":     false,
					},
				},
				"required": []string{"path", "text"},
			},
		},
		{
			Name:        "card_verify_text",
			Description: "Read the text in a card's name bar with OCR and compare it with the expected text. The bar is detected unless a region is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the rendered card"),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text the bar should contain",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional bar rectangle; detected when omitted",
						"properties": map[string]interface{}{
							"x":      map[string]interface{}{"type": "integer"},
							"y":      map[string]interface{}{"type": "integer"},
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x", "y", "width", "height"},
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default from NEON_CARD_OCR_LANG or 'eng'",
					},
				},
				"required": []string{"path", "text"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
