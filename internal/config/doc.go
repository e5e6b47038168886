// Package config resolves the card generator's settings from environment
// variables and an optional JSON tuning file.
//
// Every detector threshold and paint parameter has a built-in default, so
// nothing needs configuring for the stock welcome card. The tuning file only
// lists the fields it changes.
package config
