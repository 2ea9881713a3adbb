// Package env keeps names of environment variables with special significance to
// treesh.
package env

// Environment variables with special significance to treesh.
const (
	// Disables colored output when set to a non-empty value.
	NO_COLOR        = "NO_COLOR"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_DATA_HOME   = "XDG_DATA_HOME"
)
