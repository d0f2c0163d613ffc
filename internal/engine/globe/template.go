package globe

import (
	"fmt"
	"strings"

	"github.com/Faultbox/globe/internal/assets"
	"github.com/Faultbox/globe/internal/engine/texture"
)

// Template names a preset of textures.
type Template string

const (
	// Earth uses the embedded Earth day and night textures.
	Earth Template = "earth"
	// Custom has no textures of its own; Config.Texture is required.
	Custom Template = "custom"
)

// Templates lists the known templates.
var Templates = []Template{Earth, Custom}

// ParseTemplate resolves a template name, case-insensitively.
func ParseTemplate(s string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Earth, Custom:
		return t, nil
	case "":
		return Earth, nil
	}
	return "", fmt.Errorf("unknown globe template %q", s)
}

// Load resolves the configured textures through the asset manager and
// builds the globe. A custom day texture drops the template's night
// texture unless NightTexture is also given, since the sizes rarely match.
func Load(cfg Config, m *assets.Manager) (*Globe, error) {
	tmpl, err := ParseTemplate(string(cfg.Template))
	if err != nil {
		return nil, err
	}

	var dayName, nightName string
	if tmpl == Earth {
		dayName, nightName = assets.EarthDay, assets.EarthNight
	}
	if cfg.Texture != "" {
		dayName, nightName = cfg.Texture, ""
	}
	if cfg.NightTexture != "" {
		nightName = cfg.NightTexture
	}
	if dayName == "" {
		return nil, fmt.Errorf("template %s: %w", tmpl, ErrNoTexture)
	}

	day, err := m.Load(dayName)
	if err != nil {
		return nil, fmt.Errorf("loading day texture: %w", err)
	}
	var night *texture.Texture
	if nightName != "" {
		if night, err = m.Load(nightName); err != nil {
			return nil, fmt.Errorf("loading night texture: %w", err)
		}
	}
	return New(cfg, day, night)
}
