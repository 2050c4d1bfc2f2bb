// Package settings carries the host-facing configuration schema. The
// engine core does not import it; a host passes FOVRadius to the engine
// (engine.WithFOVRadius), and everything else (tile size, audio,
// fullscreen, flavor text) is for the rendering host, which owns
// persistence.
package settings

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the full host configuration.
type Settings struct {
	TileSize     int     `yaml:"tile_size" json:"tile_size"`
	MasterVolume float64 `yaml:"master_volume" json:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume" json:"music_volume"`
	SFXVolume    float64 `yaml:"sfx_volume" json:"sfx_volume"`
	Fullscreen   bool    `yaml:"fullscreen" json:"fullscreen"`

	FOVRadius int `yaml:"fov_radius" json:"fov_radius"`

	FlavorText FlavorTextSettings `yaml:"flavor_text" json:"flavor_text"`
}

// FlavorTextSettings configures the optional external text generator the
// host may consult for room descriptions. The engine never reads it;
// Validate requires a URL when Enabled is set.
type FlavorTextSettings struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	URL     string        `yaml:"url,omitempty" json:"url,omitempty"`
	Model   string        `yaml:"model,omitempty" json:"model,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{
		TileSize:     32,
		MasterVolume: 0.8,
		MusicVolume:  0.6,
		SFXVolume:    0.8,
		Fullscreen:   false,
		FOVRadius:    8,
		FlavorText: FlavorTextSettings{
			Enabled: false,
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads settings from a YAML file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: reading %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates YAML settings data.
func LoadFromBytes(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parsing: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges. Volumes are fractions, the FOV radius must stay
// positive and small enough that shadowcasting cost stays bounded.
func (s Settings) Validate() error {
	if s.TileSize < 8 || s.TileSize > 128 {
		return fmt.Errorf("settings: tile_size %d out of range [8, 128]", s.TileSize)
	}
	for name, v := range map[string]float64{
		"master_volume": s.MasterVolume,
		"music_volume":  s.MusicVolume,
		"sfx_volume":    s.SFXVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("settings: %s %v out of range [0, 1]", name, v)
		}
	}
	if s.FOVRadius < 2 || s.FOVRadius > 20 {
		return fmt.Errorf("settings: fov_radius %d out of range [2, 20]", s.FOVRadius)
	}
	if s.FlavorText.Enabled && s.FlavorText.URL == "" {
		return fmt.Errorf("settings: flavor_text enabled without a url")
	}
	return nil
}

// Save writes settings to path as YAML.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("settings: writing %s: %w", path, err)
	}
	return nil
}
