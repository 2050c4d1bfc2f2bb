package settings_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tholloway/roguecore/pkg/settings"
)

func TestDefaultValidates(t *testing.T) {
	if err := settings.Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFromBytesOverridesDefaults(t *testing.T) {
	s, err := settings.LoadFromBytes([]byte("tile_size: 16\nfov_radius: 10\nfullscreen: true\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if s.TileSize != 16 || s.FOVRadius != 10 || !s.Fullscreen {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.MasterVolume != 0.8 {
		t.Fatalf("unset fields must keep defaults")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"tile size", "tile_size: 4\n", "tile_size"},
		{"volume", "master_volume: 1.5\n", "master_volume"},
		{"fov radius", "fov_radius: 1\n", "fov_radius"},
		{"flavor url", "flavor_text:\n  enabled: true\n", "url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := settings.LoadFromBytes([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := settings.Default()
	s.TileSize = 24
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.TileSize != 24 {
		t.Fatalf("tile_size lost: %d", loaded.TileSize)
	}
}
