package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
title: "Halo: Reach"
build: 11860.10.07.24.0147.omaha_relea
compress_strings: true
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "Halo: Reach", cfg.Title)
	assert.Equal(t, "11860.10.07.24.0147.omaha_relea", cfg.Build)
	assert.True(t, cfg.CompressStrings)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "titel: Halo 3\n"},
		{"bad level", "log_level: loud\n"},
		{"build without title", "build: 12070.08.09.05.2031.halo3_ship\n"},
		{"malformed", "title: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blfctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Halo 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Halo 3", cfg.Title)

	t.Setenv(EnvVar, path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Halo 3", cfg.Title)

	t.Setenv(EnvVar, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
