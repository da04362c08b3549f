// Package style ships the default diagram style and loads user
// style files. Styles are themselves fact-language text.
package style

import (
	_ "embed"
	"os"
)

//go:embed default.style
var defaultStyle string

// Default returns the embedded default style text.
func Default() string {
	return defaultStyle
}

// Load reads a user style file. A trailing newline is appended so
// a file missing its final terminator still parses.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
