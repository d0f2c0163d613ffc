package canvas

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	c, err := New(160, 160, DefaultCellSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Width() != 40 || c.Height() != 20 {
		t.Errorf("size = %dx%d, want 40x20", c.Width(), c.Height())
	}
	if c.Aspect() != 1 {
		t.Errorf("Aspect() = %v, want 1", c.Aspect())
	}
	for _, row := range c.Rows() {
		if strings.Trim(row, " ") != "" {
			t.Fatalf("new canvas not blank: %q", row)
		}
	}
}

func TestNewDropsPartialCells(t *testing.T) {
	c, err := New(43, 19, DefaultCellSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Width() != 10 || c.Height() != 2 {
		t.Errorf("size = %dx%d, want 10x2", c.Width(), c.Height())
	}
	if c.Aspect() != 40.0/16.0 {
		t.Errorf("Aspect() = %v, want 2.5", c.Aspect())
	}
}

func TestNewEmpty(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		cell CellSize
	}{
		{"zero width", 0, 80, DefaultCellSize},
		{"narrower than a cell", 3, 80, DefaultCellSize},
		{"shorter than a cell", 80, 7, DefaultCellSize},
		{"zero cell", 80, 80, CellSize{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.cell); !errors.Is(err, ErrEmptyCanvas) {
				t.Errorf("New() error = %v, want ErrEmptyCanvas", err)
			}
		})
	}
}

func TestSetAt(t *testing.T) {
	c, _ := New(12, 16, DefaultCellSize)
	c.Set(1, 1, '@')
	c.Set(-1, 0, 'x')
	c.Set(3, 0, 'x')
	c.Set(0, 2, 'x')

	if c.At(1, 1) != '@' {
		t.Errorf("At(1,1) = %q, want '@'", c.At(1, 1))
	}
	if c.At(5, 5) != Background {
		t.Errorf("At outside = %q, want background", c.At(5, 5))
	}
	if got := c.String(); got != "   \n @ \n" {
		t.Errorf("String() = %q", got)
	}

	c.Clear()
	if c.At(1, 1) != Background {
		t.Error("Clear() left a cell set")
	}
}

func TestRowSlice(t *testing.T) {
	c, _ := New(12, 8, DefaultCellSize)
	copy(c.RowSlice(0), []rune("abc"))
	if c.Row(0) != "abc" {
		t.Errorf("Row(0) = %q, want abc", c.Row(0))
	}
	if c.Row(3) != "" {
		t.Errorf("Row(3) = %q, want empty", c.Row(3))
	}
}

func TestRamp(t *testing.T) {
	r, err := NewRamp(DefaultRamp)
	if err != nil {
		t.Fatal(err)
	}
	n := len(r)
	tests := []struct {
		b    float64
		want rune
	}{
		{-1, ' '},
		{0, ' '},
		{1, '@'},
		{2, '@'},
		{1.0 / float64(n-1), '.'},
		{0.5, r[9]},
	}
	for _, tt := range tests {
		if got := r.Char(tt.b); got != tt.want {
			t.Errorf("Char(%v) = %q, want %q", tt.b, got, tt.want)
		}
	}

	prev := -1
	for i := 0; i <= 100; i++ {
		idx := strings.IndexRune(DefaultRamp, r.Char(float64(i)/100))
		if idx < prev {
			t.Fatalf("ramp not monotonic at %d", i)
		}
		prev = idx
	}

	if r.Level('@') != 1 || r.Level(' ') != 0 || r.Level('#') != -1 {
		t.Error("Level() mismatch")
	}
	if _, err := NewRamp("x"); err == nil {
		t.Error("NewRamp with one character should fail")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		cols, rows int
		wantW      int
		wantH      int
	}{
		{80, 24, 48, 24},
		{20, 40, 20, 10},
		{100, 50, 100, 50},
	}
	for _, tt := range tests {
		c, err := Fit(tt.cols, tt.rows, DefaultCellSize)
		if err != nil {
			t.Fatalf("Fit(%d, %d) error = %v", tt.cols, tt.rows, err)
		}
		if c.Width() != tt.wantW || c.Height() != tt.wantH {
			t.Errorf("Fit(%d, %d) = %dx%d, want %dx%d", tt.cols, tt.rows, c.Width(), c.Height(), tt.wantW, tt.wantH)
		}
		if c.Aspect() != 1 {
			t.Errorf("Fit(%d, %d) aspect = %v, want 1", tt.cols, tt.rows, c.Aspect())
		}
	}
	if _, err := Fit(0, 10, DefaultCellSize); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("Fit(0, 10) error = %v, want ErrEmptyCanvas", err)
	}
}
