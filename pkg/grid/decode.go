package grid

import (
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	"bmp": true,
	"png": true,
	"gif": true,
}

// Decode opens path and decodes it as a Grid, dispatching on file
// extension: "bmp"/"png"/"gif" (case-insensitive) decode as an image,
// anything else is parsed as whitespace-separated hex tokens.
func Decode(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if imageExtensions[ext] {
		g, err := DecodeImage(f, ext)
		if err != nil {
			return nil, err
		}
		if g.Empty() {
			return nil, ErrEmptyGrid
		}
		return g, nil
	}

	g, err := DecodeText(f)
	if err != nil {
		return nil, err
	}
	if g.Empty() {
		return nil, ErrEmptyGrid
	}
	return g, nil
}
