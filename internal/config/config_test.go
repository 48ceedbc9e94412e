package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in   string
		want Geometry
	}{
		{"", Geometry{}},
		{"80", Geometry{Width: 80}},
		{"80,20", Geometry{Width: 80, Height: 20}},
		{",20", Geometry{Height: 20}},
		{"80,20,5,-3", Geometry{Width: 80, Height: 20, X: 5, Y: -3, HasX: true, HasY: true}},
		{",,0", Geometry{X: 0, HasX: true}},
		{"+40,10", Geometry{Width: 40, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGeometry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGeometryErrors(t *testing.T) {
	for _, in := range []string{"a", "0,10", "10,-1", "1,2,3,4,5", "10,x"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseGeometry(in)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("20")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 20, Height: 1}, size)

	size, err = ParseSize("20,3")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 20, Height: 3}, size)

	size, err = ParseSize("")
	require.NoError(t, err)
	assert.Equal(t, Size{}, size)

	for _, in := range []string{"0", "20,0", "x", "1,2,3"} {
		_, err := ParseSize(in)
		assert.ErrorIs(t, err, ErrInvalidSize, in)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.SpaceWildcard)
	assert.Equal(t, 300*time.Millisecond, cfg.FilterDelay())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Wrap)
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sprinter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sprinter", "config.toml"), []byte("label = \"from file\"\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Label)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
label = "pick one"
wrap = true
size = "12,2"
geometry = "60,15"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("SPRINTER_TITLE", "from env")
	t.Setenv("SPRINTER_STRICT", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("label", "", "")
	flags.Bool("minimal", false, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--minimal"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "pick one", cfg.Label, "unchanged flag must not override the file")
	assert.Equal(t, "from env", cfg.Title)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Wrap)
	assert.True(t, cfg.Minimal)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Size{Width: 12, Height: 2}, cfg.Cell())
	assert.Equal(t, Geometry{Width: 60, Height: 15}, cfg.Window())
}

func TestLoadFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("label = \"file\"\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("label", "", "")
	require.NoError(t, flags.Parse([]string{"--label", "flag"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Label)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
		assert.Error(t, err)
	})

	t.Run("invalid geometry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("geometry = \"0,0\"\n"), 0o644))
		_, err := Load(path, nil)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644))
		_, err := Load(path, nil)
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("label = \n"), 0o644))
		_, err := Load(path, nil)
		assert.Error(t, err)
	})
}

func TestTOMLOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Label = "choose"
	cfg.Wrap = true

	data, err := cfg.TOML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, toml.Unmarshal(data, &back))
	assert.Equal(t, "choose", back.Label)
	assert.True(t, back.Wrap)
	assert.Equal(t, 300, back.FilterDelayMS)
	assert.Equal(t, "info", back.Log.Level)
}
