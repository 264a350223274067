package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"lsys-turtle/internal/preview"
	"lsys-turtle/internal/turtle"
	"lsys-turtle/internal/viewmatrix"
)

// Config holds interpretation defaults, output paths and preview settings.
type Config struct {
	// Interpretation defaults (jobs may override)
	Mode  string  `json:"mode"`
	Angle float64 `json:"angle"`
	Step  float64 `json:"step"`

	// Paths
	BaseDir   string `json:"base_dir"`
	JobsXML   string `json:"jobs_xml"`
	OutputDir string `json:"output_dir"`

	// Preview settings
	NoPreview   bool              `json:"no_preview"`
	Format      string            `json:"format"`
	RenderSize  int               `json:"render_size"`
	Supersample int               `json:"supersample"`
	Filter      string            `json:"filter"`
	Camera      viewmatrix.Camera `json:"camera"`
	Background  string            `json:"background"`
	TrunkColor  string            `json:"trunk_color"`
	LeafColor   string            `json:"leaf_color"`
	TrunkWidth  float64           `json:"trunk_width"`
	LeafWidth   float64           `json:"leaf_width"`
	NoDepthCue  bool              `json:"no_depth_cue"`

	Workers  int    `json:"workers"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the config untouched.
type Flags struct {
	Mode        string
	Angle       float64
	Step        float64
	JobsXML     string
	OutputDir   string
	Format      string
	Size        int
	Camera      string
	Workers     int
	LogLevel    string
	NoPreview   bool
	Perspective bool
}

// Resolve applies flags, then fills any empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Angle != 0 {
		c.Angle = flags.Angle
	}
	if flags.Step != 0 {
		c.Step = flags.Step
	}
	if flags.JobsXML != "" {
		c.JobsXML = flags.JobsXML
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Camera != "" {
		c.Camera.Preset = flags.Camera
	}
	if flags.Perspective {
		c.Camera.Perspective = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.NoPreview {
		c.NoPreview = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "out")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.JobsXML != "" && !filepath.IsAbs(c.JobsXML) {
		c.JobsXML = filepath.Join(c.BaseDir, c.JobsXML)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(c.BaseDir, c.LogFile)
	}

	// Interpretation defaults
	if c.Mode == "" {
		c.Mode = "3d"
	}
	if c.Angle == 0 {
		c.Angle = 25
	}
	if c.Step <= 0 {
		c.Step = 1
	}

	// Preview defaults
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Camera.Preset == "" && c.Camera.Pitch == 0 && c.Camera.Yaw == 0 && c.Camera.Roll == 0 {
		if c.Mode == "2d" {
			c.Camera.Preset = "front"
		} else {
			c.Camera.Preset = "tree"
		}
	}
	if c.TrunkColor == "" {
		c.TrunkColor = "#6e4e2e"
	}
	if c.LeafColor == "" {
		c.LeafColor = "#48a040"
	}
	if c.TrunkWidth <= 0 {
		c.TrunkWidth = 1.5
	}
	if c.LeafWidth <= 0 {
		c.LeafWidth = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Options returns the interpretation defaults.
func (c Config) Options() turtle.Options {
	return turtle.Options{Angle: c.Angle, Step: c.Step}
}

// Style builds the preview style from the color and width settings.
// An empty background is transparent.
func (c Config) Style() (preview.Style, error) {
	st := preview.DefaultStyle()
	st.Filter = c.Filter
	st.DepthCue = !c.NoDepthCue

	var err error
	if c.Background != "" {
		if st.Background, err = preview.ParseColor(c.Background); err != nil {
			return st, fmt.Errorf("config: background: %w", err)
		}
	}
	if st.Trunk.Color, err = preview.ParseColor(c.TrunkColor); err != nil {
		return st, fmt.Errorf("config: trunk_color: %w", err)
	}
	if st.Leaf.Color, err = preview.ParseColor(c.LeafColor); err != nil {
		return st, fmt.Errorf("config: leaf_color: %w", err)
	}
	st.Trunk.Width = c.TrunkWidth
	st.Leaf.Width = c.LeafWidth
	return st, nil
}
