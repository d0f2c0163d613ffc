package animation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadCoord is returned for a coordinate record that cannot be parsed.
var ErrBadCoord = errors.New("bad coordinate")

// Coord is a geographic location in degrees.
type Coord struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// CoordFormat selects how the two numbers of a record are read.
type CoordFormat int

const (
	// Normalized records are "x,y" in [0,1]: x spans longitude west to
	// east, y spans latitude south to north.
	Normalized CoordFormat = iota
	// Signed records are "lon,lat" in degrees.
	Signed
)

// FromNormalized converts a normalized x,y pair to a coordinate.
func FromNormalized(x, y float64) Coord {
	return Coord{Lat: y*180 - 90, Lon: x*360 - 180}
}

// ParseCoord parses one "a,b" record.
func ParseCoord(record string, format CoordFormat) (Coord, error) {
	parts := strings.Split(record, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q: want two comma-separated numbers", ErrBadCoord, record)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %v", ErrBadCoord, record, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %v", ErrBadCoord, record, err)
	}

	switch format {
	case Signed:
		if a < -180 || a > 180 || b < -90 || b > 90 {
			return Coord{}, fmt.Errorf("%w: %q out of range", ErrBadCoord, record)
		}
		return Coord{Lat: b, Lon: a}, nil
	default:
		if a < 0 || a > 1 || b < 0 || b > 1 {
			return Coord{}, fmt.Errorf("%w: %q outside [0,1]", ErrBadCoord, record)
		}
		return FromNormalized(a, b), nil
	}
}

// SplitRecords splits a ";"-separated list and drops blank records.
func SplitRecords(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ";") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// ParseCoords parses a ";"-separated list of records. Errors name the
// zero-based index of the failing record among the non-blank ones.
func ParseCoords(s string, format CoordFormat) ([]Coord, error) {
	records := SplitRecords(s)
	coords := make([]Coord, 0, len(records))
	for i, r := range records {
		c, err := ParseCoord(r, format)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
