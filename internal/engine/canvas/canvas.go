// Package canvas provides the character grid a frame is drawn into.
package canvas

import (
	"errors"
	"fmt"
	"strings"
)

// Background is the rune of cells that show no sphere.
const Background = ' '

// ErrEmptyCanvas is returned when the requested size yields no cells.
var ErrEmptyCanvas = errors.New("canvas has no cells")

// CellSize is how many pixels one character covers.
type CellSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultCellSize approximates a terminal glyph, twice as tall as wide.
var DefaultCellSize = CellSize{Width: 4, Height: 8}

// Canvas is a fixed-size grid of runes, row-major, top row first.
type Canvas struct {
	pixelW, pixelH int
	cell           CellSize
	cols, rows     int
	cells          []rune
}

// New creates a canvas covering pixelW x pixelH pixels split into cells of
// the given size. Partial cells at the right and bottom edges are dropped.
func New(pixelW, pixelH int, cell CellSize) (*Canvas, error) {
	if cell.Width <= 0 || cell.Height <= 0 {
		return nil, fmt.Errorf("%w: cell size %dx%d", ErrEmptyCanvas, cell.Width, cell.Height)
	}
	cols, rows := pixelW/cell.Width, pixelH/cell.Height
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d pixels with %dx%d cells",
			ErrEmptyCanvas, pixelW, pixelH, cell.Width, cell.Height)
	}

	c := &Canvas{
		pixelW: cols * cell.Width,
		pixelH: rows * cell.Height,
		cell:   cell,
		cols:   cols,
		rows:   rows,
		cells:  make([]rune, cols*rows),
	}
	c.Clear()
	return c, nil
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.cols }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.rows }

// CellSize returns the pixel size of a cell.
func (c *Canvas) CellSize() CellSize { return c.cell }

// Aspect returns the canvas pixel width over its pixel height.
func (c *Canvas) Aspect() float64 {
	return float64(c.pixelW) / float64(c.pixelH)
}

// Clear fills every cell with Background.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Background
	}
}

// Set writes a rune. Out-of-range coordinates are ignored.
func (c *Canvas) Set(col, row int, r rune) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = r
}

// At returns the rune at a cell, or Background outside the grid.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Background
	}
	return c.cells[row*c.cols+col]
}

// Row returns one row as a string.
func (c *Canvas) Row(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	return string(c.cells[row*c.cols : (row+1)*c.cols])
}

// Rows returns all rows top to bottom.
func (c *Canvas) Rows() []string {
	rows := make([]string, c.rows)
	for i := range rows {
		rows[i] = c.Row(i)
	}
	return rows
}

// RowSlice exposes the backing runes of one row for writers that fill
// whole rows. Callers must not keep it past the next Clear.
func (c *Canvas) RowSlice(row int) []rune {
	return c.cells[row*c.cols : (row+1)*c.cols]
}

// String renders the grid with a newline after every row.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.cols + 1) * c.rows * 2)
	for row := 0; row < c.rows; row++ {
		b.WriteString(c.Row(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Fit creates the largest square canvas that fits a terminal of cols x rows
// characters.
func Fit(cols, rows int, cell CellSize) (*Canvas, error) {
	side := cols * cell.Width
	if h := rows * cell.Height; h < side {
		side = h
	}
	return New(side, side, cell)
}
