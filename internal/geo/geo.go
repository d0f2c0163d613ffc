// Package geo places IP addresses on the globe using a MaxMind City
// database, so coordinate lists can mix addresses with plain coordinates.
package geo

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/animation"
	"github.com/Faultbox/globe/internal/logger"
)

// ErrNotFound is returned for addresses the database cannot place.
var ErrNotFound = errors.New("no location for address")

// ErrNoDatabase is returned when a record needs a lookup but no database
// was configured.
var ErrNoDatabase = errors.New("no geoip database configured")

// Locator turns an IP address into a coordinate.
type Locator interface {
	Locate(ip net.IP) (animation.Coord, error)
}

// Resolver looks addresses up in a City database and caches the results.
type Resolver struct {
	db    *geoip2.Reader
	cache map[string]animation.Coord
	mu    sync.Mutex
	log   *zap.Logger
}

// Open opens a GeoLite2-City or GeoIP2-City database file.
func Open(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening geoip database %s: %w", path, err)
	}
	return &Resolver{
		db:    db,
		cache: make(map[string]animation.Coord),
		log:   logger.Named("geo"),
	}, nil
}

// Close releases the database.
func (r *Resolver) Close() error {
	return r.db.Close()
}

// Locate returns the city-level coordinate of ip.
func (r *Resolver) Locate(ip net.IP) (animation.Coord, error) {
	key := ip.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[key]; ok {
		return c, nil
	}

	rec, err := r.db.City(ip)
	if err != nil {
		return animation.Coord{}, fmt.Errorf("looking up %s: %w", key, err)
	}
	loc := rec.Location
	if loc.AccuracyRadius == 0 && loc.Latitude == 0 && loc.Longitude == 0 {
		return animation.Coord{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	c := animation.Coord{Lat: loc.Latitude, Lon: loc.Longitude}
	r.cache[key] = c
	r.log.Debug("located address",
		zap.String("ip", key),
		zap.String("city", rec.City.Names["en"]),
		zap.String("country", rec.Country.IsoCode),
		zap.Float64("lat", c.Lat),
		zap.Float64("lon", c.Lon),
	)
	return c, nil
}

// ResolveRecords parses a ";"-separated list in which each record is a
// coordinate pair in format or an IP address placed with loc. loc may be
// nil when the list holds no addresses.
func ResolveRecords(s string, format animation.CoordFormat, loc Locator) ([]animation.Coord, error) {
	records := animation.SplitRecords(s)
	coords := make([]animation.Coord, 0, len(records))
	for i, rec := range records {
		if ip := net.ParseIP(rec); ip != nil {
			if loc == nil {
				return nil, fmt.Errorf("record %d: %s: %w", i, rec, ErrNoDatabase)
			}
			c, err := loc.Locate(ip)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			coords = append(coords, c)
			continue
		}

		c, err := animation.ParseCoord(rec, format)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
