package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"deedles.dev/wlpaperd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `
default:
  path: /usr/share/backgrounds
  duration: 30m
DP-1:
  path: ~/Pictures/ultrawide.jpg
HDMI-A-1:
  duration: 1h30m
DP-2:
  path: /srv/still.png
  duration: 0s
`

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(example))
	require.NoError(t, err)

	def := c[config.DefaultSection]
	assert.Equal(t, "/usr/share/backgrounds", def.Path)
	require.NotNil(t, def.Duration)
	assert.Equal(t, 30*time.Minute, *def.Duration)

	assert.Equal(t, "~/Pictures/ultrawide.jpg", c["DP-1"].Path)
	assert.Nil(t, c["DP-1"].Duration)

	require.NotNil(t, c["HDMI-A-1"].Duration)
	assert.Equal(t, 90*time.Minute, *c["HDMI-A-1"].Duration)

	require.NotNil(t, c["DP-2"].Duration)
	assert.Zero(t, *c["DP-2"].Duration)
}

func TestParseInvalid(t *testing.T) {
	_, err := config.Parse([]byte("default:\n  duration: often\n"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("default:\n  path: /a\n  duration: -1m\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = c.Output("DP-1")
	assert.ErrorIs(t, err, config.ErrNoPath)
}

func TestOutput(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := config.Parse([]byte(example))
	require.NoError(t, err)

	out, err := c.Output("DP-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures", "ultrawide.jpg"), out.Path)
	assert.Equal(t, 30*time.Minute, out.Duration)

	out, err = c.Output("HDMI-A-1")
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/backgrounds", out.Path)
	assert.Equal(t, 90*time.Minute, out.Duration)

	out, err = c.Output("DP-2")
	require.NoError(t, err)
	assert.Equal(t, "/srv/still.png", out.Path)
	assert.Zero(t, out.Duration, "explicit 0 must turn rotation off")

	out, err = c.Output("eDP-1")
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/backgrounds", out.Path)

	out, err = c.Output("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/backgrounds", out.Path)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(example), 0644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, c, 4)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wlpaperd", "config.yaml"), path)
}
