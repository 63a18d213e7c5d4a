package config

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "green", cfg.Color)
	assert.Equal(t, 10, cfg.Thickness)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, "screenbadge", cfg.Namespace)
	assert.Equal(t, 0, cfg.Monitor)
	assert.Equal(t, 2*time.Second, cfg.CloseTimeout.Duration())

	x, y := cfg.Position()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*BadgeConfig)
		wantErr string
	}{
		{"hex color", func(c *BadgeConfig) { c.Color = "#ff00aa" }, ""},
		{"rgba color", func(c *BadgeConfig) { c.Color = "rgba(255, 0, 0, 0.5)" }, ""},
		{"zero thickness", func(c *BadgeConfig) { c.Thickness = 0 }, ""},
		{"empty color", func(c *BadgeConfig) { c.Color = "" }, "color must not be empty"},
		{"css injection", func(c *BadgeConfig) { c.Color = "red; } window { opacity: 0" }, "invalid color"},
		{"zero width", func(c *BadgeConfig) { c.Width = 0 }, "width must be between"},
		{"huge height", func(c *BadgeConfig) { c.Height = 20000 }, "height must be between"},
		{"negative thickness", func(c *BadgeConfig) { c.Thickness = -1 }, "must not be negative"},
		{"thickness too large", func(c *BadgeConfig) { c.Thickness = 101 }, "does not fit"},
		{"thickness fills odd side", func(c *BadgeConfig) { c.Width = 21; c.Thickness = 10 }, ""},
		{"thickness near max int", func(c *BadgeConfig) { c.Thickness = math.MaxInt/2 + 1 }, "does not fit"},
		{"thickness max int", func(c *BadgeConfig) { c.Thickness = math.MaxInt }, "does not fit"},
		{"negative monitor", func(c *BadgeConfig) { c.Monitor = -1 }, "monitor must not be negative"},
		{"negative timeout", func(c *BadgeConfig) { c.CloseTimeout = Duration(-time.Second) }, "close_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/badge.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")

	content := `
color = "#ff0000"
thickness = 4
width = 320
height = 240
namespace = "recording"
monitor = 2
close_timeout = "500ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#ff0000", cfg.Color)
	assert.Equal(t, 4, cfg.Thickness)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, "recording", cfg.Namespace)
	assert.Equal(t, 2, cfg.Monitor)
	assert.Equal(t, 500*time.Millisecond, cfg.CloseTimeout.Duration())
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")
	require.NoError(t, os.WriteFile(path, []byte(`color = "red"`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "red", cfg.Color)
	assert.Equal(t, DefaultThickness, cfg.Thickness)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
}

func TestLoad_MillisecondTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")
	require.NoError(t, os.WriteFile(path, []byte(`close_timeout = "1500"`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.CloseTimeout.Duration())
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "badge.toml")

	cfg := Default()
	cfg.Color = "blue"
	cfg.Width = 64

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")

	// A non-empty directory in the way makes the final rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(path, "keep"), 0700))

	err := Default().Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace config file")

	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/screenbadge/badge.toml", Path())
}

func TestEncode(t *testing.T) {
	cfg := Default()

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, cfg, FormatTOML))

		var out map[string]any
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "green", out["color"])
		assert.Equal(t, "2s", out["close_timeout"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, cfg, FormatYAML))

		var out map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "green", out["color"])
		assert.Equal(t, 200, out["width"])
		assert.Equal(t, "2s", out["close_timeout"])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, cfg, FormatJSON))

		var out map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "green", out["color"])
		assert.EqualValues(t, 10, out["thickness"])
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Encode(&buf, cfg, Format("xml")))
	})
}
