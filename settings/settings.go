package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains everything the movement engine can be configured with.
type Settings struct {
	Ground struct {
		// MinMargin and MaxMargin bound the ground margin a caller may request.
		MinMargin float64 `toml:"min_margin" yaml:"min_margin"`
		MaxMargin float64 `toml:"max_margin" yaml:"max_margin"`
		// DefaultMargin is used when no margin is requested.
		DefaultMargin float64 `toml:"default_margin" yaml:"default_margin"`
	} `toml:"ground" yaml:"ground"`
	Versions struct {
		LegacyLiquidBelow  string `toml:"legacy_liquid_below" yaml:"legacy_liquid_below"`
		LegacyLavaBelow    string `toml:"legacy_lava_below" yaml:"legacy_lava_below"`
		LavaPushSince      string `toml:"lava_push_since" yaml:"lava_push_since"`
		LegacySurfaceUntil string `toml:"legacy_surface_until" yaml:"legacy_surface_until"`
	} `toml:"versions" yaml:"versions"`
	History struct {
		Capacity int `toml:"capacity" yaml:"capacity"`
	} `toml:"history" yaml:"history"`
	Memo struct {
		// Capacity is the maximum amount of environment snapshots kept at once.
		Capacity int `toml:"capacity" yaml:"capacity"`
	} `toml:"memo" yaml:"memo"`
	Workers struct {
		// Count is the amount of validator workers. Zero uses one worker per CPU.
		Count int `toml:"count" yaml:"count"`
	} `toml:"workers" yaml:"workers"`
	Entity struct {
		// StandingMargin is how far past the feet, horizontally, another entity's box still carries the entity.
		StandingMargin float64 `toml:"standing_margin" yaml:"standing_margin"`
	} `toml:"entity" yaml:"entity"`
	Debug struct {
		// StatsAddr is the address the runtime stats page is served on. Empty disables it.
		StatsAddr string `toml:"stats_addr" yaml:"stats_addr"`
	} `toml:"debug" yaml:"debug"`
}

const (
	MinHistoryCapacity = 3
	MaxHistoryCapacity = 16
)

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Ground.MinMargin = game.YOnGroundMin
	s.Ground.MaxMargin = game.YOnGroundMax
	s.Ground.DefaultMargin = game.YOnGroundDefault

	g := game.DefaultGates()
	s.Versions.LegacyLiquidBelow = g.LegacyLiquidBelow.String()
	s.Versions.LegacyLavaBelow = g.LegacyLavaBelow.String()
	s.Versions.LavaPushSince = g.LavaPushSince.String()
	s.Versions.LegacySurfaceUntil = g.LegacySurfaceUntil.String()

	s.History.Capacity = 7
	s.Memo.Capacity = 256
	s.Entity.StandingMargin = 0.25
	return s
}

// Gates returns the version gates of the settings. The gates not configurable keep their default.
func (s Settings) Gates() (game.Gates, error) {
	g := game.DefaultGates()
	for _, f := range []struct {
		name string
		raw  string
		dst  *game.ClientVersion
	}{
		{"legacy_liquid_below", s.Versions.LegacyLiquidBelow, &g.LegacyLiquidBelow},
		{"legacy_lava_below", s.Versions.LegacyLavaBelow, &g.LegacyLavaBelow},
		{"lava_push_since", s.Versions.LavaPushSince, &g.LavaPushSince},
		{"legacy_surface_until", s.Versions.LegacySurfaceUntil, &g.LegacySurfaceUntil},
	} {
		v, err := game.ParseVersion(f.raw)
		if err != nil {
			return game.Gates{}, oerror.InvalidConfiguration("versions.%s: %v", f.name, err)
		}
		*f.dst = v
	}
	if !g.Ordered() {
		return game.Gates{}, oerror.InvalidConfiguration("versions are not ordered (%v, %v, %v, %v)",
			g.LegacyLiquidBelow, g.LegacyLavaBelow, g.LavaPushSince, g.LegacySurfaceUntil)
	}
	return g, nil
}

// Validate returns an error of kind KindInvalidConfiguration if any setting is out of range.
func (s Settings) Validate() error {
	for _, m := range []struct {
		name string
		v    float64
	}{
		{"min_margin", s.Ground.MinMargin},
		{"max_margin", s.Ground.MaxMargin},
		{"default_margin", s.Ground.DefaultMargin},
	} {
		if m.v < game.YOnGroundMin || m.v > game.GroundMarginCeiling {
			return oerror.InvalidConfiguration("ground.%s %v outside [%v, %v]", m.name, m.v, game.YOnGroundMin, game.GroundMarginCeiling)
		}
	}
	if s.Ground.MinMargin > s.Ground.DefaultMargin || s.Ground.DefaultMargin > s.Ground.MaxMargin {
		return oerror.InvalidConfiguration("ground margins must satisfy min <= default <= max")
	}
	if _, err := s.Gates(); err != nil {
		return err
	}
	if s.History.Capacity < MinHistoryCapacity || s.History.Capacity > MaxHistoryCapacity {
		return oerror.InvalidConfiguration("history.capacity %d outside [%d, %d]", s.History.Capacity, MinHistoryCapacity, MaxHistoryCapacity)
	}
	if s.Memo.Capacity <= 0 {
		return oerror.InvalidConfiguration("memo.capacity must be positive")
	}
	if s.Workers.Count < 0 {
		return oerror.InvalidConfiguration("workers.count must not be negative")
	}
	if s.Entity.StandingMargin < 0 || s.Entity.StandingMargin > 1 {
		return oerror.InvalidConfiguration("entity.standing_margin %v outside [0, 1]", s.Entity.StandingMargin)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := marshal(path, DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %v", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist or
// holds invalid settings. Fields the file leaves out keep their default.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %v", err)
	}
	s := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = unmarshalTOML(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %v", err)
	}
	return s, s.Validate()
}

// unmarshalTOML decodes data over the settings in s, keeping the fields data leaves out.
func unmarshalTOML(data []byte, s *Settings) error {
	file, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	raw, err := toml.Marshal(*s)
	if err != nil {
		return err
	}
	base, err := toml.LoadBytes(raw)
	if err != nil {
		return err
	}
	merge(base, file)
	return base.Unmarshal(s)
}

func merge(dst, src *toml.Tree) {
	for _, k := range src.Keys() {
		v := src.Get(k)
		if sub, ok := v.(*toml.Tree); ok {
			if d, ok := dst.Get(k).(*toml.Tree); ok {
				merge(d, sub)
				continue
			}
		}
		dst.Set(k, v)
	}
}

func marshal(path string, s Settings) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
