// Package neon renders text as a glowing neon sign and composites it into
// a rectangle of a base image.
//
// # Pipeline
//
// Compositor.Render runs four steps:
//
//  1. Font-size search: the size starts slightly above the rectangle height
//     and steps down until the text fits 92% of the width and 96% of the
//     height, or the size floor of 10px is reached.
//  2. Layer sizing: a transparent layer tightly wraps the ink box of the
//     text plus a padding of half the font size, which leaves room for the
//     glow to fade out.
//  3. Paint passes, each composited over the previous ones:
//     outer glow (blurred cyan halo, painted twice), an optional tighter
//     inner glow, a dark contrast outline stroked at small offsets, the
//     cyan-to-magenta gradient fill, and a near-white highlight.
//  4. Composite: the layer is centered in the rectangle and drawn onto the
//     base image with the over operator.
//
// # Paint Surface
//
// Glyph coverage comes from a Shaper (FontShaper wraps
// golang.org/x/image/font/opentype). Halos are Gaussian blurs of the
// coverage from github.com/anthonynsimon/bild/blur, the outline is a
// dilate-minus-erode band from github.com/anthonynsimon/bild/effect, and
// gradient stops are interpolated with github.com/lucasb-eyer/go-colorful.
// Blur amounts follow the HTML canvas shadowBlur convention, where the
// Gaussian's standard deviation is half the blur value.
//
// # Failure Modes
//
// There are none once the text is non-empty: text too wide for the
// rectangle at the size floor is drawn anyway, and layers larger than the
// rectangle or the image are clipped by image/draw.
package neon
