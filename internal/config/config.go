// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Map      MapConfig      `yaml:"map"`
	Render   RenderConfig   `yaml:"render"`
	Input    InputConfig    `yaml:"input"`
	Data     DataConfig     `yaml:"data"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// MapConfig describes the tile map being shown.
type MapConfig struct {
	Atlas       string  `yaml:"atlas"`        // Atlas image, relative to Data.AssetDir
	IndexWidth  int     `yaml:"index_width"`  // Index map cells per row
	IndexHeight int     `yaml:"index_height"` // Index map rows
	QuadSize    float32 `yaml:"quad_size"`    // World units per quad edge
}

// RenderConfig holds tile decode settings.
type RenderConfig struct {
	Sampling   string     `yaml:"sampling"` // single | multitap
	ClearColor [4]float32 `yaml:"clear_color"`
}

// InputConfig holds zoom input settings.
type InputConfig struct {
	PixelScroll string  `yaml:"pixel_scroll"` // abort | line
	LineStep    float32 `yaml:"line_step"`    // wheel notches per unit of scale
}

// DataConfig holds asset locations.
type DataConfig struct {
	AssetDir string `yaml:"asset_dir"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Map: MapConfig{
			Atlas:       "test-tileset.png",
			IndexWidth:  16,
			IndexHeight: 16,
			QuadSize:    128,
		},
		Render: RenderConfig{
			Sampling:   "single",
			ClearColor: [4]float32{0.1, 0.1, 0.15, 1.0},
		},
		Input: InputConfig{
			PixelScroll: "abort",
			LineStep:    10,
		},
		Data: DataConfig{
			AssetDir: "assets",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
