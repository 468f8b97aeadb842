package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Rendering
	Renderer      string `yaml:"renderer"`
	RenderQuality int    `yaml:"render_quality"`
	PageSize      string `yaml:"page_size"`

	// Viewing
	PDFViewer string `yaml:"pdf_viewer"`
	AutoOpen  bool   `yaml:"auto_open"`
	Editor    string `yaml:"editor"`

	// Listing
	DefaultSort       string `yaml:"default_sort"`
	ReverseSort       bool   `yaml:"reverse_sort"`
	DisplayDateFormat string `yaml:"display_date_format"`
	ColorTheme        string `yaml:"color_theme"`
	TableWidth        int    `yaml:"table_width"`

	// Watch Mode
	WatchDebounceMS    int  `yaml:"watch_debounce_ms"`
	WatchKeepOriginals bool `yaml:"watch_keep_originals"`

	// Performance
	MaxWorkers int `yaml:"max_workers"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Renderer:           "magick",
		RenderQuality:      92,
		PageSize:           "A4",
		PDFViewer:          "",
		AutoOpen:           false,
		Editor:             "",
		DefaultSort:        "modified",
		ReverseSort:        false,
		DisplayDateFormat:  "2006-01-02 15:04",
		ColorTheme:         "auto",
		TableWidth:         0,
		WatchDebounceMS:    500,
		WatchKeepOriginals: false,
		MaxWorkers:         4,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.Renderer == "" {
		cfg.Renderer = "magick"
	}
	if cfg.RenderQuality < 1 || cfg.RenderQuality > 100 {
		cfg.RenderQuality = 92
	}
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "modified"
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02 15:04"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.TableWidth < 0 {
		cfg.TableWidth = 0
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}

	// Validate enumerated settings
	if !isValidRenderer(cfg.Renderer) {
		cfg.Renderer = "magick"
	}
	if !isValidSortKey(cfg.DefaultSort) {
		cfg.DefaultSort = "modified"
	}
	if !isValidTheme(cfg.ColorTheme) {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidRenderer checks if the renderer backend is supported
func isValidRenderer(name string) bool {
	validRenderers := []string{"magick", "img2pdf"}
	for _, valid := range validRenderers {
		if name == valid {
			return true
		}
	}
	return false
}

// isValidSortKey checks if the sort key is valid
func isValidSortKey(key string) bool {
	validKeys := []string{"modified", "name", "size"}
	for _, valid := range validKeys {
		if key == valid {
			return true
		}
	}
	return false
}

// isValidTheme checks if the color theme is valid
func isValidTheme(theme string) bool {
	validThemes := []string{"auto", "dark", "light"}
	for _, valid := range validThemes {
		if theme == valid {
			return true
		}
	}
	return false
}
