// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transform TransformConfig `yaml:"transform"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Output    OutputConfig    `yaml:"output"`
	MapLink   MapLinkConfig   `yaml:"maplink"`
	Debug     int             `yaml:"debug"`
}

type TransformConfig struct {
	SemiMajorAxis *float64 `yaml:"semi_major_axis"`
	EccSquared    *float64 `yaml:"ecc_squared"`
	AltOffset     *float64 `yaml:"altitude_offset"` // 0 selects the uncorrected conversion
}

type SmoothingConfig struct {
	Window    int  `yaml:"window"`
	PolyOrder *int `yaml:"polyorder"` // 0 is a moving average
}

type OutputConfig struct {
	Dir          string  `yaml:"dir"` // strftime patterns are expanded
	RawFile      string  `yaml:"raw_file"`
	SmoothedFile string  `yaml:"smoothed_file"`
	VelocityFile string  `yaml:"velocity_file"`
	GPXFile      string  `yaml:"gpx_file"`
	GeoJSONFile  string  `yaml:"geojson_file"`
	WidthCm      float64 `yaml:"width_cm"`
	HeightCm     float64 `yaml:"height_cm"`
}

type MapLinkConfig struct {
	BaseURL     string `yaml:"base_url"`
	OpenBrowser *bool  `yaml:"open_browser"`
}

// Configuration with every default applied
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load a YAML configuration file. Missing values take their defaults.
func LoadConfig(fn string) (*Config, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fn, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Transform.SemiMajorAxis == nil {
		cfg.Transform.SemiMajorAxis = ptr(Re)
	}
	if cfg.Transform.EccSquared == nil {
		cfg.Transform.EccSquared = ptr(E2)
	}
	if cfg.Transform.AltOffset == nil {
		cfg.Transform.AltOffset = ptr(Hof)
	}
	if cfg.Smoothing.Window == 0 {
		cfg.Smoothing.Window = SgWindow
	}
	if cfg.Smoothing.PolyOrder == nil {
		cfg.Smoothing.PolyOrder = ptr(SgOrder)
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.RawFile == "" {
		cfg.Output.RawFile = "Raw_Data.png"
	}
	if cfg.Output.SmoothedFile == "" {
		cfg.Output.SmoothedFile = "SavitzyGolay.png"
	}
	if cfg.Output.VelocityFile == "" {
		cfg.Output.VelocityFile = "Velocity_Colored_Plot.png"
	}
	if cfg.Output.GPXFile == "" {
		cfg.Output.GPXFile = "track.gpx"
	}
	if cfg.Output.GeoJSONFile == "" {
		cfg.Output.GeoJSONFile = "track.geojson"
	}
	if cfg.Output.WidthCm <= 0 {
		cfg.Output.WidthCm = 30
	}
	if cfg.Output.HeightCm <= 0 {
		cfg.Output.HeightCm = 20
	}
	if cfg.MapLink.BaseURL == "" {
		cfg.MapLink.BaseURL = MapsBaseURL
	}
	if cfg.MapLink.OpenBrowser == nil {
		cfg.MapLink.OpenBrowser = ptr(true)
	}
}

func (cfg *Config) Validate() error {
	a := *cfg.Transform.SemiMajorAxis
	e2 := *cfg.Transform.EccSquared
	if !(a > 0) || math.IsInf(a, 0) {
		return fmt.Errorf("transform.semi_major_axis must be > 0")
	}
	if !(e2 >= 0 && e2 < 1) {
		return fmt.Errorf("transform.ecc_squared must be in [0, 1)")
	}
	if math.IsNaN(*cfg.Transform.AltOffset) || math.IsInf(*cfg.Transform.AltOffset, 0) {
		return fmt.Errorf("transform.altitude_offset must be finite")
	}
	// Window and order are checked against the data when smoothing
	if cfg.Smoothing.Window < 0 || *cfg.Smoothing.PolyOrder < 0 {
		return fmt.Errorf("smoothing.window and smoothing.polyorder must be >= 0")
	}
	if cfg.Debug < 0 {
		return fmt.Errorf("debug must be >= 0")
	}
	return nil
}

// Transform described by the configuration
func (cfg *Config) NewTransform() *Transform {
	return NewTransform(*cfg.Transform.SemiMajorAxis, *cfg.Transform.EccSquared, *cfg.Transform.AltOffset)
}

func ptr[T any](v T) *T {
	return &v
}
