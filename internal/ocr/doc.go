// Package ocr reads rendered cards back with Tesseract to check that the
// neon text is legible.
//
// It is not general-purpose OCR. VerifyText crops the name bar, enlarges it
// and compares what the recognizer sees with the text that was requested.
// The Tesseract recognizer goes through github.com/otiai10/gosseract/v2,
// which needs the Tesseract and Leptonica libraries at build and run time:
//
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Other languages use their Tesseract codes ("deu", "fra", ...) and need the
// matching traineddata installed, or a TessdataPrefix pointing at it.
package ocr
