// Package imaging handles base-image and card I/O around the neon renderer.
//
// It loads templates from disk (with a path-keyed cache and EXIF
// orientation), crops and rescales regions, draws a debug outline around a
// detected bar, and encodes results as JPEG files or base64 payloads for the
// MCP server. The heavy lifting is done by github.com/disintegration/imaging.
//
// # Coordinate System
//
// Rectangles use the image's own coordinate space: (0,0) is the top-left
// of an image whose bounds start at the origin, X grows rightward and Y
// downward. Min is inclusive and Max exclusive, as in image.Rectangle.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached images are shared, so
// callers must not draw on them; every function here that produces pixels
// returns a new image.
package imaging
