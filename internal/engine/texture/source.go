package texture

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/pkg/encoding"
)

// CharFormat describes how character texture files are read.
type CharFormat struct {
	// Palette lists characters darkest first.
	Palette []rune
	// Charset names the file encoding. Empty means UTF-8.
	Charset string
}

// FromText decodes a character texture file in format.
func FromText(data []byte, format CharFormat) (*Texture, error) {
	text, err := encoding.Decode(data, format.Charset)
	if err != nil {
		return nil, err
	}
	return FromRows(strings.Split(text, "\n"), format.Palette)
}

// FromRows builds a texture from character rows, the format used by the
// built-in textures. A character's brightness is its index in palette divided
// by len(palette)-1; characters missing from the palette are black. Short rows
// are padded with black to the width of the longest row.
func FromRows(rows []string, palette []rune) (*Texture, error) {
	if len(palette) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 characters, got %d", len(palette))
	}

	lookup := make(map[rune]float64, len(palette))
	for i, r := range palette {
		if _, seen := lookup[r]; !seen {
			lookup[r] = float64(i) / float64(len(palette)-1)
		}
	}

	grid := make([][]rune, 0, len(rows))
	width := 0
	for _, row := range rows {
		row = strings.TrimRight(row, "\r")
		if row == "" {
			continue
		}
		runes := []rune(row)
		if len(runes) > width {
			width = len(runes)
		}
		grid = append(grid, runes)
	}
	if width == 0 || len(grid) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrEmptyTexture)
	}

	samples := make([]float64, width*len(grid))
	for y, runes := range grid {
		for x, r := range runes {
			samples[y*width+x] = lookup[r]
		}
	}
	return New(width, len(grid), samples)
}

// FromImage converts an image to a brightness texture using Rec. 601 luma.
func FromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d image", ErrEmptyTexture, width, height)
	}

	samples := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			samples[y*width+x] = luma / 0xffff
		}
	}
	return New(width, height, samples)
}

// Decode reads a PNG, JPEG, GIF or BMP image and converts it to a texture.
func Decode(r io.Reader) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	logger.Named("texture").Debug("decoded texture image",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return FromImage(img)
}

// LoadFile reads a texture from disk. Files ending in .txt are character
// textures read with format; everything else is decoded as an image.
func LoadFile(path string, format CharFormat) (*Texture, error) {
	t, err := LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path), format)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return t, nil
}

// LoadFS is LoadFile for a file inside fsys.
func LoadFS(fsys fs.FS, name string, format CharFormat) (*Texture, error) {
	if strings.EqualFold(path.Ext(name), ".txt") {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		return FromText(data, format)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
