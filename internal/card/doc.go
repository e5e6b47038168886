// Package card ties bar detection and neon rendering into the welcome-card
// pipeline: normalize the name, copy the template, find its name bar, draw
// the name and hand back the finished image with everything that was
// measured along the way.
package card
