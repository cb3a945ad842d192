package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	g, err := s.Gates()
	require.NoError(t, err)
	require.Equal(t, game.DefaultGates(), g)
}

func TestValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(s *Settings){
		"margin below floor":   func(s *Settings) { s.Ground.MinMargin = 1e-9 },
		"margin above ceiling": func(s *Settings) { s.Ground.MaxMargin = 0.07 },
		"default above max":    func(s *Settings) { s.Ground.DefaultMargin = 0.03 },
		"malformed version":    func(s *Settings) { s.Versions.LavaPushSince = "one.sixteen" },
		"unordered versions":   func(s *Settings) { s.Versions.LegacyLavaBelow = "1.12" },
		"history too small":    func(s *Settings) { s.History.Capacity = 2 },
		"history too large":    func(s *Settings) { s.History.Capacity = 17 },
		"memo":                 func(s *Settings) { s.Memo.Capacity = 0 },
		"workers":              func(s *Settings) { s.Workers.Count = -1 },
		"standing margin":      func(s *Settings) { s.Entity.StandingMargin = -0.1 },
	} {
		t.Run(name, func(t *testing.T) {
			s := DefaultSettings()
			mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, oerror.ErrInvalidConfiguration))
		})
	}
}

func TestSaveDefaultAndLoad(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveDefault(path))
			require.Error(t, SaveDefault(path))

			s, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, DefaultSettings(), s)
		})
	}
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[history]\ncapacity = 5\n"), 0644))
	s, err := Load(tomlPath)
	require.NoError(t, err)
	require.Equal(t, 5, s.History.Capacity)
	require.Equal(t, 256, s.Memo.Capacity)
	require.Equal(t, game.YOnGroundDefault, s.Ground.DefaultMargin)

	yamlPath := filepath.Join(dir, "partial.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("memo:\n  capacity: 32\n"), 0644))
	s, err = Load(yamlPath)
	require.NoError(t, err)
	require.Equal(t, 32, s.Memo.Capacity)
	require.Equal(t, 7, s.History.Capacity)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[memo]\ncapacity = -4\n"), 0644))
	_, err := Load(path)
	require.Equal(t, oerror.KindInvalidConfiguration, oerror.KindOf(err))

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
