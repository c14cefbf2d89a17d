package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderConfig controls how threshold-viz writes its outputs. Every field
// is optional; the Get* methods supply defaults for omitted values.
type RenderConfig struct {
	ModelName *string  `json:"model_name,omitempty"`
	WidthIn   *float64 `json:"width_in,omitempty"`
	HeightIn  *float64 `json:"height_in,omitempty"`
	Format    *string  `json:"format,omitempty"` // png, svg, pdf, eps, jpg, tif
	HTML      *bool    `json:"html,omitempty"`
	CSV       *bool    `json:"csv,omitempty"`
}

var supportedFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "eps": true,
	"jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

// DefaultRenderConfig returns a RenderConfig with every field set to its
// default value.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		ModelName: ptrString("Model"),
		WidthIn:   ptrFloat64(16),
		HeightIn:  ptrFloat64(10),
		Format:    ptrString("png"),
		HTML:      ptrBool(false),
		CSV:       ptrBool(false),
	}
}

// LoadRenderConfig loads a RenderConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
// Fields omitted from the JSON keep their defaults via the Get* methods.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RenderConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RenderConfig) Validate() error {
	if c.WidthIn != nil && *c.WidthIn <= 0 {
		return fmt.Errorf("width_in must be positive, got %f", *c.WidthIn)
	}
	if c.HeightIn != nil && *c.HeightIn <= 0 {
		return fmt.Errorf("height_in must be positive, got %f", *c.HeightIn)
	}
	// An empty format means the png default, as in GetFormat.
	if c.Format != nil && *c.Format != "" && !supportedFormats[strings.ToLower(*c.Format)] {
		return fmt.Errorf("unsupported format %q", *c.Format)
	}
	return nil
}

// GetModelName returns the model_name value or the default.
func (c *RenderConfig) GetModelName() string {
	if c.ModelName == nil || *c.ModelName == "" {
		return "Model"
	}
	return *c.ModelName
}

// GetWidthIn returns the canvas width in inches.
func (c *RenderConfig) GetWidthIn() float64 {
	if c.WidthIn == nil {
		return 16
	}
	return *c.WidthIn
}

// GetHeightIn returns the canvas height in inches.
func (c *RenderConfig) GetHeightIn() float64 {
	if c.HeightIn == nil {
		return 10
	}
	return *c.HeightIn
}

// GetFormat returns the lower-cased image format or "png".
func (c *RenderConfig) GetFormat() string {
	if c.Format == nil || *c.Format == "" {
		return "png"
	}
	return strings.ToLower(*c.Format)
}

// GetHTML reports whether an interactive HTML chart is also written.
func (c *RenderConfig) GetHTML() bool {
	if c.HTML == nil {
		return false
	}
	return *c.HTML
}

// GetCSV reports whether the metrics table is also written as CSV.
func (c *RenderConfig) GetCSV() bool {
	if c.CSV == nil {
		return false
	}
	return *c.CSV
}
