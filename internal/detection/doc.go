// Package detection locates the blank name bar inside a card background.
//
// The bar is a wide, short, near-white band that the artwork reserves for
// overlaid text. Its exact position varies between backgrounds, so it is
// found by scanning pixel brightness rather than hardcoding coordinates.
//
// # Algorithm Overview
//
// DetectBar follows a simple pipeline:
//
//  1. Band restriction: only rows between 35% and 80% of the height are
//     scanned, where the layout places the bar.
//  2. Classification: a pixel is bright when the mean of its red, green and
//     blue channels exceeds the brightness threshold (200 of 255).
//  3. Run building: rows with enough bright pixels form runs; each run
//     tracks the leftmost and rightmost bright pixel across its rows.
//  4. Filtering: runs that are too small or not wide enough relative to
//     their height are discarded, which rejects logos and highlights.
//  5. Selection: the widest remaining run is the bar. When none remains,
//     a fixed fallback rectangle is returned instead of an error.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Rectangle.Bounds is inclusive at the top-left and exclusive at the
//     bottom-right
//
// # Tuning
//
// Every threshold is a field of BarConfig. DefaultBarConfig uses a row
// activity of 30% of the width; backgrounds whose bar is narrower can lower
// it toward 10%.
package detection
