package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"
)

func checkerboard(t *testing.T) *Texture {
	t.Helper()
	// 2x2: NW=0, NE=1, SW=1, SE=0
	tex, err := New(2, 2, []float64{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tex
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(0, 4, nil); !errors.Is(err, ErrEmptyTexture) {
		t.Errorf("New(0, 4) error = %v, want ErrEmptyTexture", err)
	}
	if _, err := New(2, 2, []float64{1}); err == nil {
		t.Error("New() with short sample slice should fail")
	}
}

func TestNewClampsSamples(t *testing.T) {
	tex, err := New(2, 1, []float64{-1, 3})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tex.At(0, 0) != 0 || tex.At(1, 0) != 1 {
		t.Errorf("samples = %v, %v, want 0, 1", tex.At(0, 0), tex.At(1, 0))
	}
}

func TestIndexQuadrants(t *testing.T) {
	tex := checkerboard(t)
	tests := []struct {
		name     string
		lat, lon float64
		x, y     int
	}{
		{"north-west", 45, -90, 0, 0},
		{"north-east", 45, 90, 1, 0},
		{"south-west", -45, -90, 0, 1},
		{"south-east", -45, 90, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tex.Index(tt.lat, tt.lon)
			if x != tt.x || y != tt.y {
				t.Errorf("Index(%v, %v) = (%d, %d), want (%d, %d)", tt.lat, tt.lon, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestIndexWrapsLongitude(t *testing.T) {
	tex, err := Uniform(8, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, lon := range []float64{10, 370, -350, 730} {
		x, _ := tex.Index(0, lon)
		if x != 4 {
			t.Errorf("Index(0, %v) x = %d, want 4", lon, x)
		}
	}
	// -180 and +180 are the same meridian
	x1, _ := tex.Index(0, -180)
	x2, _ := tex.Index(0, 180)
	if x1 != x2 || x1 != 0 {
		t.Errorf("antimeridian columns = %d, %d, want 0, 0", x1, x2)
	}
}

func TestIndexClampsLatitude(t *testing.T) {
	tex, err := Uniform(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, y := tex.Index(90, 0); y != 0 {
		t.Errorf("north pole row = %d, want 0", y)
	}
	if _, y := tex.Index(-90, 0); y != 3 {
		t.Errorf("south pole row = %d, want 3", y)
	}
	if _, y := tex.Index(120, 0); y != 0 {
		t.Errorf("lat 120 row = %d, want 0", y)
	}
}

func TestSamplerRejectsMismatchedNight(t *testing.T) {
	day, _ := Uniform(4, 2, 1)
	night, _ := Uniform(2, 2, 0)
	if _, err := NewSampler(day, night); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("NewSampler() error = %v, want ErrSizeMismatch", err)
	}
	if _, err := NewSampler(nil, nil); !errors.Is(err, ErrEmptyTexture) {
		t.Errorf("NewSampler(nil) error = %v, want ErrEmptyTexture", err)
	}
}

func TestSamplerSample(t *testing.T) {
	day := checkerboard(t)
	night, _ := Uniform(2, 2, 0.25)

	s, err := NewSampler(day, night)
	if err != nil {
		t.Fatalf("NewSampler() error = %v", err)
	}
	d, n := s.Sample(45, 90)
	if d != 1 || n != 0.25 {
		t.Errorf("Sample() = (%v, %v), want (1, 0.25)", d, n)
	}

	dayOnly, _ := NewSampler(day, nil)
	if dayOnly.HasNight() {
		t.Error("HasNight() = true for day-only sampler")
	}
	if _, n := dayOnly.Sample(45, 90); n != 0 {
		t.Errorf("night sample without night texture = %v, want 0", n)
	}
}

func TestFromRows(t *testing.T) {
	palette := []rune(" .:@")
	tex, err := FromRows([]string{"@. ", ":", ""}, palette)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width(), tex.Height())
	}
	if tex.At(0, 0) != 1 {
		t.Errorf("'@' = %v, want 1", tex.At(0, 0))
	}
	if got := tex.At(0, 1); got != 2.0/3.0 {
		t.Errorf("':' = %v, want 2/3", got)
	}
	if tex.At(2, 1) != 0 {
		t.Errorf("padding = %v, want 0", tex.At(2, 1))
	}
}

func TestFromRowsEmpty(t *testing.T) {
	if _, err := FromRows([]string{"", ""}, []rune(" #")); !errors.Is(err, ErrEmptyTexture) {
		t.Errorf("FromRows() error = %v, want ErrEmptyTexture", err)
	}
}

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	tex, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tex.At(0, 0) != 0 || tex.At(1, 0) < 0.999 {
		t.Errorf("samples = %v, %v, want 0, 1", tex.At(0, 0), tex.At(1, 0))
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	tex, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Errorf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
}

func TestLoadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.txt")
	if err := os.WriteFile(path, []byte("# \n #\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tex, err := LoadFile(path, CharFormat{Palette: []rune(" #")})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if tex.At(0, 0) != 1 || tex.At(1, 0) != 0 {
		t.Errorf("row 0 = %v %v, want 1 0", tex.At(0, 0), tex.At(1, 0))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.png"), CharFormat{}); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tex/day.txt": {Data: []byte("@ \n")},
	}
	tex, err := LoadFS(fsys, "tex/day.txt", CharFormat{Palette: []rune(" @")})
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if tex.Width() != 2 || tex.At(0, 0) != 1 {
		t.Errorf("unexpected texture %dx%d, At(0,0) = %v", tex.Width(), tex.Height(), tex.At(0, 0))
	}
	if _, err := LoadFS(fsys, "tex/missing.png", CharFormat{}); err == nil {
		t.Error("LoadFS() on missing file should fail")
	}
}

func TestFromTextCharset(t *testing.T) {
	// Code page 437 shade blocks, light to full.
	data := []byte{0x20, 0xb0, 0xb1, 0xb2, 0xdb, '\r', '\n'}
	tex, err := FromText(data, CharFormat{Palette: []rune(" ░▒▓█"), Charset: "cp437"})
	if err != nil {
		t.Fatalf("FromText() error = %v", err)
	}
	if tex.Width() != 5 || tex.Height() != 1 {
		t.Fatalf("size = %dx%d, want 5x1", tex.Width(), tex.Height())
	}
	if got := tex.At(4, 0); got != 1 {
		t.Errorf("full block = %v, want 1", got)
	}
	if got := tex.At(2, 0); got != 0.5 {
		t.Errorf("medium shade = %v, want 0.5", got)
	}

	if _, err := FromText(data, CharFormat{Palette: []rune(" #"), Charset: "klingon"}); err == nil {
		t.Error("unknown charset should fail")
	}
}
