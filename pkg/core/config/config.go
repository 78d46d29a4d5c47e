// Package config loads the site configuration: site.yaml, then .env, then
// SITE_* environment variables. Every field has a default, so running with no
// file at all reproduces the stock site.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the whole site configuration.
type Config struct {
	Server ServerConfig `yaml:"server" json:"server"`
	Site   SiteConfig   `yaml:"site" json:"site"`
	Map    MapConfig    `yaml:"map" json:"map"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type SiteConfig struct {
	Title           string `yaml:"title" json:"title"`
	DefaultScenario int    `yaml:"default_scenario" json:"defaultScenario"`
	DataDir         string `yaml:"data_dir" json:"dataDir"`
}

type MapConfig struct {
	Center      [2]float64 `yaml:"center" json:"center"` // lat, lng
	Zoom        int        `yaml:"zoom" json:"zoom"`
	TileURL     string     `yaml:"tile_url" json:"tileUrl"`
	Attribution string     `yaml:"attribution" json:"attribution"`
	MaxZoom     int        `yaml:"max_zoom" json:"maxZoom"`
	FitPadding  int        `yaml:"fit_padding" json:"fitPadding"`
	FocusZoom   int        `yaml:"focus_zoom" json:"focusZoom"`
	Highlight   string     `yaml:"highlight" json:"highlight,omitempty"`
}

type LogConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Site: SiteConfig{
			Title:           "Newfoundland Energy Project",
			DefaultScenario: 75,
		},
		Map: MapConfig{
			Center:      [2]float64{47.25, -52.75},
			Zoom:        9,
			TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "© OpenStreetMap contributors",
			MaxZoom:     19,
			FitPadding:  50,
			FocusZoom:   12,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path (optional: a missing file keeps the defaults), then the
// .env file in the working directory, then SITE_* overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// .env is optional; existing environment variables win over it
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from SITE_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SITE_ADDR":            &c.Server.Addr,
		"SITE_TITLE":           &c.Site.Title,
		"SITE_DATA_DIR":        &c.Site.DataDir,
		"SITE_MAP_TILE_URL":    &c.Map.TileURL,
		"SITE_MAP_ATTRIBUTION": &c.Map.Attribution,
		"SITE_MAP_HIGHLIGHT":   &c.Map.Highlight,
		"SITE_LOG_LEVEL":       &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SITE_DEFAULT_SCENARIO": &c.Site.DefaultScenario,
		"SITE_MAP_ZOOM":         &c.Map.Zoom,
		"SITE_MAP_MAX_ZOOM":     &c.Map.MaxZoom,
		"SITE_MAP_FIT_PADDING":  &c.Map.FitPadding,
		"SITE_MAP_FOCUS_ZOOM":   &c.Map.FocusZoom,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := lookup("SITE_LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SITE_LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = b
	}

	if v, ok := lookup("SITE_MAP_CENTER"); ok {
		lat, lng, found := strings.Cut(v, ",")
		if !found {
			return fmt.Errorf("SITE_MAP_CENTER: expected \"lat,lng\", got %q", v)
		}
		la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
		if err != nil {
			return fmt.Errorf("SITE_MAP_CENTER: %w", err)
		}
		ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
		if err != nil {
			return fmt.Errorf("SITE_MAP_CENTER: %w", err)
		}
		c.Map.Center = [2]float64{la, ln}
	}
	return nil
}

// Validate checks ranges that would otherwise produce a broken page.
func (c Config) Validate() error {
	var errs []error
	if c.Map.Center[0] < -90 || c.Map.Center[0] > 90 || c.Map.Center[1] < -180 || c.Map.Center[1] > 180 {
		errs = append(errs, fmt.Errorf("map.center %v out of range", c.Map.Center))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Errorf("map.zoom %d outside 0..%d", c.Map.Zoom, c.Map.MaxZoom))
	}
	if c.Map.FocusZoom < 0 || c.Map.FocusZoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Errorf("map.focus_zoom %d outside 0..%d", c.Map.FocusZoom, c.Map.MaxZoom))
	}
	if c.Map.FitPadding < 0 {
		errs = append(errs, fmt.Errorf("map.fit_padding must not be negative"))
	}
	if c.Map.TileURL == "" {
		errs = append(errs, fmt.Errorf("map.tile_url is required"))
	}
	return errors.Join(errs...)
}
