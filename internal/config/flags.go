package config

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Faultbox/globe/internal/engine/globe"
)

// Flags are the command-line overrides. Only flags the user actually set
// override the file.
type Flags struct {
	sets []*pflag.FlagSet

	Config        string
	Debug         bool
	LogFile       string
	RefreshRate   int
	GlobeRotation float64
	CamRotation   float64
	Zoom          float64
	FocusSpeed    float64
	Location      string
	Night         bool
	Template      string
	Texture       string
	TextureNight  string
	Charset       string
	TextureDirs   []string
	Workers       int
	RealSun       bool

	Dwell   time.Duration
	Signed  bool
	GeoIPDB string

	Addr    string
	HostKey string
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{sets: []*pflag.FlagSet{fs}}

	fs.StringVar(&f.Config, "config", "", "path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "write logs to a rotating file")
	fs.IntVarP(&f.RefreshRate, "refresh-rate", "r", d.Render.RefreshRate, "refresh rate in frames per second")
	fs.Float64VarP(&f.GlobeRotation, "globe-rotation", "g", d.Globe.SpinSpeed, "starting globe rotation speed in degrees per second")
	fs.Float64VarP(&f.CamRotation, "cam-rotation", "c", d.Camera.OrbitSpeed, "starting camera rotation speed in degrees per second")
	fs.Float64VarP(&f.Zoom, "cam-zoom", "z", d.Camera.Distance, "starting camera distance in globe radii")
	fs.Float64VarP(&f.FocusSpeed, "focus-speed", "f", d.Camera.FocusSpeed, "target focusing animation speed")
	fs.StringVarP(&f.Location, "location", "l", d.Camera.Location, "starting location as normalized x,y")
	fs.BoolVarP(&f.Night, "night", "n", false, "show the night side of the globe")
	fs.StringVarP(&f.Template, "template", "t", string(d.Globe.Template), "built-in globe template")
	fs.StringVar(&f.Texture, "texture", "", "custom day texture file")
	fs.StringVar(&f.TextureNight, "texture-night", "", "custom night texture file")
	fs.StringSliceVar(&f.TextureDirs, "texture-dir", nil, "directory searched for texture names, repeatable")
	fs.StringVar(&f.Charset, "texture-charset", "", "encoding of character texture files, e.g. cp437")
	fs.IntVar(&f.Workers, "workers", d.Render.Workers, "goroutines rendering each frame")
	fs.BoolVar(&f.RealSun, "real-sun", false, "place the terminator from the current date")

	return f
}

// RegisterPlaybackFlags adds the location listing flags to fs.
func (f *Flags) RegisterPlaybackFlags(fs *pflag.FlagSet) {
	d := Default()
	f.sets = append(f.sets, fs)
	fs.DurationVar(&f.Dwell, "dwell", d.Playback.Dwell, "time to hold each location before the next")
	fs.BoolVar(&f.Signed, "signed", false, "read locations as signed degrees \"lon,lat\"")
	fs.StringVar(&f.GeoIPDB, "geoip-db", "", "MaxMind city database for IP address locations")
}

// RegisterServerFlags adds the SSH server flags to fs.
func (f *Flags) RegisterServerFlags(fs *pflag.FlagSet) {
	d := Default()
	f.sets = append(f.sets, fs)
	fs.StringVar(&f.Addr, "addr", d.Server.Addr, "address to listen on")
	fs.StringVar(&f.HostKey, "host-key", "", "host key file, generated when missing")
}

func (f *Flags) changed(name string) bool {
	for _, fs := range f.sets {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// apply copies flags the user set onto cfg.
func (f *Flags) apply(cfg *Config) error {
	if f.changed("debug") && f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.changed("refresh-rate") {
		cfg.Render.RefreshRate = f.RefreshRate
	}
	if f.changed("globe-rotation") {
		cfg.Globe.SpinSpeed = f.GlobeRotation
	}
	if f.changed("cam-rotation") {
		cfg.Camera.OrbitSpeed = f.CamRotation
	}
	if f.changed("cam-zoom") {
		cfg.Camera.Distance = f.Zoom
	}
	if f.changed("focus-speed") {
		cfg.Camera.FocusSpeed = f.FocusSpeed
	}
	if f.changed("location") {
		cfg.Camera.Location = f.Location
	}
	if f.changed("night") {
		cfg.Globe.Night = f.Night
	}
	if f.changed("template") {
		t, err := globe.ParseTemplate(f.Template)
		if err != nil {
			return err
		}
		cfg.Globe.Template = t
	}
	if f.changed("texture") {
		cfg.Globe.Texture = f.Texture
	}
	if f.changed("texture-night") {
		cfg.Globe.NightTexture = f.TextureNight
	}
	if f.changed("texture-dir") {
		cfg.Globe.TextureDirs = f.TextureDirs
	}
	if f.changed("texture-charset") {
		cfg.Globe.Charset = f.Charset
	}
	if f.changed("workers") {
		cfg.Render.Workers = f.Workers
	}
	if f.changed("real-sun") {
		cfg.Render.RealSun = f.RealSun
	}
	if f.changed("dwell") {
		cfg.Playback.Dwell = f.Dwell
	}
	if f.changed("signed") {
		cfg.Playback.Signed = f.Signed
	}
	if f.changed("geoip-db") {
		cfg.Playback.GeoIPDB = f.GeoIPDB
	}
	if f.changed("addr") {
		cfg.Server.Addr = f.Addr
	}
	if f.changed("host-key") {
		cfg.Server.HostKey = f.HostKey
	}
	return nil
}
