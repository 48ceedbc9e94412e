package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrInvalidGeometry is returned for a malformed --geometry value
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidSize is returned for a malformed --size value
	ErrInvalidSize = errors.New("invalid item size")
	// ErrInvalidLogLevel is returned for an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config represents the application configuration
type Config struct {
	Label         string    `mapstructure:"label" toml:"label"`
	Title         string    `mapstructure:"title" toml:"title"`
	Geometry      string    `mapstructure:"geometry" toml:"geometry"`
	Style         string    `mapstructure:"style" toml:"style"`
	Wrap          bool      `mapstructure:"wrap" toml:"wrap"`
	Size          string    `mapstructure:"size" toml:"size"`
	Minimal       bool      `mapstructure:"minimal" toml:"minimal"`
	Sort          bool      `mapstructure:"sort" toml:"sort"`
	Strict        bool      `mapstructure:"strict" toml:"strict"`
	Command       string    `mapstructure:"command" toml:"command"`
	NoColor       bool      `mapstructure:"no_color" toml:"no_color"`
	Fullscreen    bool      `mapstructure:"fullscreen" toml:"fullscreen"`
	SpaceWildcard bool      `mapstructure:"space_wildcard" toml:"space_wildcard"`
	FilterDelayMS int       `mapstructure:"filter_delay_ms" toml:"filter_delay_ms"`
	Log           LogConfig `mapstructure:"log" toml:"log"`

	window Geometry
	cell   Size
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file" toml:"file"`
	Level string `mapstructure:"level" toml:"level"`
}

// Geometry is the requested picker box. Zero width or height means
// "use the terminal size". Negative X or Y count from the far edge.
type Geometry struct {
	Width  int
	Height int
	X      int
	Y      int
	HasX   bool
	HasY   bool
}

// Size is the grid cell size in columns and lines
type Size struct {
	Width  int
	Height int
}

// LogLevels lists the accepted log level names
var LogLevels = []string{"trace", "debug", "info", "error"}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		SpaceWildcard: true,
		FilterDelayMS: 300,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sprinter/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sprinter", "config.toml"), nil
}

// Validate parses the derived values and checks ranges
func (c *Config) Validate() error {
	window, err := ParseGeometry(c.Geometry)
	if err != nil {
		return err
	}
	cell, err := ParseSize(c.Size)
	if err != nil {
		return err
	}
	if c.FilterDelayMS < 0 {
		return fmt.Errorf("filter_delay_ms must not be negative, got %d", c.FilterDelayMS)
	}
	if !validLevel(c.Log.Level) {
		return fmt.Errorf("%w %q (expected one of %s)", ErrInvalidLogLevel, c.Log.Level, strings.Join(LogLevels, ", "))
	}
	c.window = window
	c.cell = cell
	return nil
}

// Window returns the parsed geometry, valid after Validate
func (c *Config) Window() Geometry {
	return c.window
}

// Cell returns the parsed grid cell size, valid after Validate
func (c *Config) Cell() Size {
	return c.cell
}

// FilterDelay returns the debounce delay for typed filters
func (c *Config) FilterDelay() time.Duration {
	return time.Duration(c.FilterDelayMS) * time.Millisecond
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ParseGeometry parses "width,height,x,y" where every field is optional.
// Width and height must be positive, x and y may be negative.
func ParseGeometry(s string) (Geometry, error) {
	var g Geometry
	s = strings.TrimSpace(s)
	if s == "" {
		return g, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 4 {
		return g, fmt.Errorf("%w %q: expected width,height,x,y", ErrInvalidGeometry, s)
	}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Geometry{}, fmt.Errorf("%w %q: %q is not a number", ErrInvalidGeometry, s, part)
		}
		switch i {
		case 0, 1:
			if n <= 0 {
				return Geometry{}, fmt.Errorf("%w %q: size must be positive", ErrInvalidGeometry, s)
			}
			if i == 0 {
				g.Width = n
			} else {
				g.Height = n
			}
		case 2:
			g.X, g.HasX = n, true
		case 3:
			g.Y, g.HasY = n, true
		}
	}
	return g, nil
}

// ParseSize parses "width,height" for grid cells. Height defaults to 1.
func ParseSize(s string) (Size, error) {
	var size Size
	s = strings.TrimSpace(s)
	if s == "" {
		return size, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return size, fmt.Errorf("%w %q: expected width,height", ErrInvalidSize, s)
	}
	size.Height = 1
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return Size{}, fmt.Errorf("%w %q: %q is not a positive number", ErrInvalidSize, s, part)
		}
		if i == 0 {
			size.Width = n
		} else {
			size.Height = n
		}
	}
	return size, nil
}

func validLevel(level string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
