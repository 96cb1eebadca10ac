package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the path to the engine config file, relative to the process working directory.
const DefaultPath = "config/engine.yaml"

// EnvPrefix prefixes every environment override, e.g. COLLIDERVIEW_SCALE=2.
const EnvPrefix = "COLLIDERVIEW_"

// Prefs holds viewer preferences: debug overlays, grid, world settings and window size.
type Prefs struct {
	ShowFPS      bool    `yaml:"show_fps" env:"SHOW_FPS"`
	ShowMemAlloc bool    `yaml:"show_memalloc" env:"SHOW_MEMALLOC"`
	ShowStats    bool    `yaml:"show_stats" env:"SHOW_STATS"`
	GridVisible  bool    `yaml:"grid_visible" env:"GRID_VISIBLE"`
	Dimension    string  `yaml:"dimension" env:"DIMENSION"`
	Scale        float32 `yaml:"scale" env:"SCALE"`
	LogLevel     string  `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	WindowWidth  int32   `yaml:"window_width" env:"WINDOW_WIDTH"`
	WindowHeight int32   `yaml:"window_height" env:"WINDOW_HEIGHT"`
	TargetFPS    int32   `yaml:"target_fps" env:"TARGET_FPS"`
	Level        string  `yaml:"level,omitempty" env:"LEVEL"`
}

// Default returns default preferences (overlays off, grid on, 3D, scale 1).
func Default() Prefs {
	return Prefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		ShowStats:    true,
		GridVisible:  true,
		Dimension:    "3d",
		Scale:        1,
		LogLevel:     "info",
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
		Level:        "levels/demo.yaml",
	}
}

// Load reads preferences from path on top of Default(). A missing file is not an error.
// An unreadable or invalid file returns Default() together with the error so the caller can log it.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, eris.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), eris.Wrapf(err, "parse config %s", path)
	}
	return p, nil
}

// ApplyEnv overrides fields from COLLIDERVIEW_* environment variables.
func ApplyEnv(p *Prefs) error {
	if err := env.ParseWithOptions(p, env.Options{Prefix: EnvPrefix}); err != nil {
		return eris.Wrap(err, "parse environment overrides")
	}
	return nil
}

// Resolve loads dotenvPath (if present), then path, then applies environment overrides.
// Overrides apply even when the file is unreadable, on top of Default(); the first error is returned.
func Resolve(path, dotenvPath string) (Prefs, error) {
	dotErr := LoadDotEnv(dotenvPath)
	p, loadErr := Load(path)
	envErr := ApplyEnv(&p)
	for _, err := range []error{dotErr, loadErr, envErr} {
		if err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

// Validate checks value ranges.
func (p Prefs) Validate() error {
	if p.Dimension != "2d" && p.Dimension != "3d" {
		return eris.Errorf("dimension must be 2d or 3d, got %q", p.Dimension)
	}
	if p.Scale <= 0 {
		return eris.Errorf("scale must be positive, got %v", p.Scale)
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		return eris.Errorf("window size must be positive, got %dx%d", p.WindowWidth, p.WindowHeight)
	}
	return nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return eris.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "write config %s", path)
	}
	return nil
}
