// Package config handles globe configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/globe/internal/engine/animation"
	"github.com/Faultbox/globe/internal/engine/camera"
	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/engine/globe"
	"github.com/Faultbox/globe/internal/engine/lighting"
	"github.com/Faultbox/globe/pkg/encoding"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Globe    globe.Config         `yaml:"globe"`
	Camera   CameraConfig         `yaml:"camera"`
	Shading  lighting.ShadeConfig `yaml:"shading"`
	Render   RenderConfig         `yaml:"render"`
	Playback PlaybackConfig       `yaml:"playback"`
	Server   ServerConfig         `yaml:"server"`
	Logging  LoggingConfig        `yaml:"logging"`
}

// CameraConfig holds camera settings plus the starting location.
type CameraConfig struct {
	camera.Config `yaml:",inline"`
	// Location is the starting location as normalized "x,y".
	Location string `yaml:"location"`
}

// RenderConfig holds canvas and frame settings.
type RenderConfig struct {
	RefreshRate int             `yaml:"refresh_rate"` // frames per second
	CellSize    canvas.CellSize `yaml:"cell_size"`
	Workers     int             `yaml:"workers"`
	Ramp        string          `yaml:"ramp"`
	// RealSun places the terminator from the current date.
	RealSun bool `yaml:"real_sun"`
}

// PlaybackConfig holds listing mode settings.
type PlaybackConfig struct {
	Dwell time.Duration `yaml:"dwell"`
	// Signed reads records as degrees "lon,lat" instead of normalized pairs.
	Signed bool `yaml:"signed"`
	// GeoIPDB is a MaxMind City database used to place IP address records.
	GeoIPDB string `yaml:"geoip_db"`
}

// ServerConfig holds SSH screensaver settings.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Globe: globe.DefaultConfig(),
		Camera: CameraConfig{
			Config:   camera.DefaultConfig(),
			Location: "0.4,0.6",
		},
		Shading: lighting.DefaultShadeConfig(),
		Render: RenderConfig{
			RefreshRate: 60,
			CellSize:    canvas.DefaultCellSize,
			Workers:     1,
			Ramp:        canvas.DefaultRamp,
		},
		Playback: PlaybackConfig{},
		Server: ServerConfig{
			Addr:        ":2222",
			IdleTimeout: 10 * time.Minute,
			MaxSessions: 16,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// StartLocation parses the configured starting location.
func (c *Config) StartLocation() (animation.Coord, error) {
	return animation.ParseCoord(c.Camera.Location, animation.Normalized)
}

// CoordFormat returns the playback record format.
func (c *Config) CoordFormat() animation.CoordFormat {
	if c.Playback.Signed {
		return animation.Signed
	}
	return animation.Normalized
}

// TextureDirs returns the texture directories in ascending priority:
// textures in the config directory when it exists, then globe.texture_dirs.
func (c *Config) TextureDirs() []string {
	var dirs []string
	if dir := filepath.Join(ConfigDir(), "textures"); isDir(dir) {
		dirs = append(dirs, dir)
	}
	return append(dirs, c.Globe.TextureDirs...)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FrameInterval returns the time between frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.RefreshRate)
}

// Validate checks settings that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := globe.ParseTemplate(string(c.Globe.Template)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := encoding.Lookup(c.Globe.Charset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Globe.Radius <= 0 {
		return fmt.Errorf("%w: globe radius must be positive, got %v", ErrInvalid, c.Globe.Radius)
	}
	if err := c.Camera.Validate(c.Globe.Radius); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.StartLocation(); err != nil {
		return fmt.Errorf("%w: camera location: %v", ErrInvalid, err)
	}
	if c.Render.RefreshRate <= 0 {
		return fmt.Errorf("%w: refresh rate must be positive, got %d", ErrInvalid, c.Render.RefreshRate)
	}
	if c.Render.CellSize.Width <= 0 || c.Render.CellSize.Height <= 0 {
		return fmt.Errorf("%w: cell size %dx%d", ErrInvalid, c.Render.CellSize.Width, c.Render.CellSize.Height)
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Render.Workers)
	}
	if _, err := canvas.NewRamp(c.Render.Ramp); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("%w: max sessions must be at least 1, got %d", ErrInvalid, c.Server.MaxSessions)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
