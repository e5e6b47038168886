// Package server exposes the card generator as an MCP (Model Context
// Protocol) server.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Template Information:
//   - image_load: Load a template and get its metadata
//   - image_dimensions: Get width and height
//
// Bar Detection:
//   - card_locate_bar: Find the name bar and list every candidate band
//   - card_outline_bar: Preview the detected bar as an outlined PNG
//
// Card Rendering:
//   - card_render: Draw neon text into the bar and save the JPEG card
//   - card_verify_text: Read a card's bar back with OCR
//
// # Image Caching
//
// Templates are decoded once and cached by path for the life of the
// process. card_verify_text always re-reads its input, since cards are
// often regenerated under the same name.
//
// # Error Handling
//
//   - -32601: unknown JSON-RPC method
//   - -32602: malformed params, unknown tool, missing path or blank text
//   - -32000: the tool ran and failed (unreadable image, write error, OCR)
package server
