// Package config loads the process level settings shared by every lesson from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Window holds the window settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Render holds the renderer settings.
type Render struct {
	// MSAA is the sample count, 1 or 4.
	MSAA int `toml:"msaa"`
	// FrameLimit caps frames per second; 0 means uncapped.
	FrameLimit int  `toml:"frame_limit"`
	Profile    bool `toml:"profile"`
	// SoftwareAdapter forces the fallback adapter.
	SoftwareAdapter bool `toml:"software_adapter"`
}

// Assets holds the asset root.
type Assets struct {
	Root string `toml:"root"`
}

// Lessons holds lesson defaults.
type Lessons struct {
	// StartMode is the exercise mode selected right after startup.
	StartMode int `toml:"start_mode"`
}

// Config is the decoded configuration file.
type Config struct {
	Window  Window  `toml:"window"`
	Render  Render  `toml:"render"`
	Assets  Assets  `toml:"assets"`
	Lessons Lessons `toml:"lessons"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "oxy lessons",
			VSync:  true,
		},
		Render: Render{
			MSAA: 4,
		},
		Assets: Assets{
			Root: "static",
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes. Unknown keys are rejected.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes over the defaults and validates the result.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode returns the configuration as a TOML document.
//
// Returns:
//   - []byte: the document
//   - error: an encoding error
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first setting the engine cannot honour.
//
// Returns:
//   - error: an error wrapping ErrInvalid, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Render.MSAA != 1 && c.Render.MSAA != 4:
		return fmt.Errorf("%w: msaa %d must be 1 or 4", ErrInvalid, c.Render.MSAA)
	case c.Render.FrameLimit < 0:
		return fmt.Errorf("%w: frame_limit %d must not be negative", ErrInvalid, c.Render.FrameLimit)
	case c.Lessons.StartMode < 0:
		return fmt.Errorf("%w: start_mode %d must not be negative", ErrInvalid, c.Lessons.StartMode)
	case c.Assets.Root == "":
		return fmt.Errorf("%w: assets root is empty", ErrInvalid)
	}
	return nil
}
