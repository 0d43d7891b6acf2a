// Package config loads server settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/segment-tools-mcp/internal/canvas"
	"github.com/ironsheep/segment-tools-mcp/internal/detection"
	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
)

// Environment variables consulted by Load and Path.
const (
	EnvConfig   = "SEGMENT_MCP_CONFIG"
	EnvLogLevel = "SEGMENT_MCP_LOG_LEVEL"
	EnvDump     = "SEGMENT_MCP_DUMP"
)

// Ink classifier modes.
const (
	InkRed = "red"
	InkHue = "hue"
)

// Config holds runtime configuration for detection, the drawing canvas and
// logging.
type Config struct {
	LogLevel    string      `yaml:"log_level"`
	Detection   Detection   `yaml:"detection"`
	Canvas      Canvas      `yaml:"canvas"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
}

// Detection parameters.
type Detection struct {
	InkMode     string `yaml:"ink_mode"`
	RedMin      int    `yaml:"red_min"`
	RedGap      int    `yaml:"red_gap"`
	Threshold   int    `yaml:"threshold"`
	WindowSizes []int  `yaml:"window_sizes"`

	// Used when InkMode is "hue".
	HueColor      string  `yaml:"hue_color"`
	HueTolerance  float64 `yaml:"hue_tolerance"`
	MinSaturation float64 `yaml:"min_saturation"`
	MinValue      float64 `yaml:"min_value"`

	// BatchWorkers bounds concurrent detections in batch requests.
	BatchWorkers int `yaml:"batch_workers"`
}

// Canvas parameters.
type Canvas struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	PenWidth    int `yaml:"pen_width"`
	PointRadius int `yaml:"point_radius"`
}

// Diagnostics controls the optional window dump.
type Diagnostics struct {
	// DumpPath, when set, receives the window dump of every canvas detection.
	DumpPath string `yaml:"dump_path"`
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Detection: Detection{
			InkMode:       InkRed,
			RedMin:        detection.DefaultRedMin,
			RedGap:        detection.DefaultRedGap,
			Threshold:     detection.DefaultThreshold,
			WindowSizes:   append([]int(nil), detection.DefaultWindowSizes...),
			HueColor:      "#FF0000",
			HueTolerance:  20,
			MinSaturation: 0.6,
			MinValue:      0.6,
			BatchWorkers:  4,
		},
		Canvas: Canvas{
			Width:       canvas.DefaultWidth,
			Height:      canvas.DefaultHeight,
			PenWidth:    4,
			PointRadius: 3,
		},
	}
}

// Path returns flagPath if set, otherwise the SEGMENT_MCP_CONFIG variable.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvConfig)
}

// Load reads configuration from the YAML file at path, applies environment
// overrides and validates the result. A missing file or empty path yields the
// defaults. On a parse error the defaults are returned with the error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SEGMENT_MCP_LOG_LEVEL and SEGMENT_MCP_DUMP.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDump)); v != "" {
		c.Diagnostics.DumpPath = v
	}
}

// Validate clamps values to safe ranges. It returns an error only for values
// that cannot be repaired: an unknown log level or an unparseable hue color.
func (c *Config) Validate() error {
	d := &c.Detection
	def := Default()

	d.InkMode = strings.ToLower(strings.TrimSpace(d.InkMode))
	if d.InkMode != InkRed && d.InkMode != InkHue {
		d.InkMode = InkRed
	}
	if d.RedMin < 0 || d.RedMin > 255 {
		d.RedMin = detection.DefaultRedMin
	}
	if d.RedGap < 0 || d.RedGap > 255 {
		d.RedGap = detection.DefaultRedGap
	}
	if d.Threshold < 1 || d.Threshold > detection.PatternSize*detection.PatternSize {
		d.Threshold = detection.DefaultThreshold
	}

	sizes := d.WindowSizes[:0:0]
	for _, s := range d.WindowSizes {
		if s >= detection.PatternSize && s%2 == 1 {
			sizes = append(sizes, s)
		}
	}
	if len(sizes) == 0 {
		sizes = def.Detection.WindowSizes
	}
	d.WindowSizes = sizes

	if d.HueTolerance <= 0 || d.HueTolerance > 180 {
		d.HueTolerance = def.Detection.HueTolerance
	}
	if d.MinSaturation < 0 || d.MinSaturation > 1 {
		d.MinSaturation = def.Detection.MinSaturation
	}
	if d.MinValue < 0 || d.MinValue > 1 {
		d.MinValue = def.Detection.MinValue
	}
	if d.BatchWorkers <= 0 {
		d.BatchWorkers = def.Detection.BatchWorkers
	}

	if c.Canvas.Width <= 0 {
		c.Canvas.Width = canvas.DefaultWidth
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = canvas.DefaultHeight
	}
	if c.Canvas.PenWidth <= 0 {
		c.Canvas.PenWidth = def.Canvas.PenWidth
	}
	if c.Canvas.PointRadius <= 0 {
		c.Canvas.PointRadius = def.Canvas.PointRadius
	}

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if d.InkMode == InkHue {
		if _, err := imaging.ParseHexColor(d.HueColor); err != nil {
			return fmt.Errorf("invalid hue_color: %w", err)
		}
	}
	return nil
}

// Level returns the parsed log level, falling back to Info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Classifier builds the configured ink classifier.
func (c *Config) Classifier() (detection.InkClassifier, error) {
	d := c.Detection
	if d.InkMode != InkHue {
		return detection.RedDominance{RedMin: uint8(d.RedMin), RedGap: uint8(d.RedGap)}, nil
	}
	pen, err := imaging.ParseHexColor(d.HueColor)
	if err != nil {
		return nil, fmt.Errorf("invalid hue_color: %w", err)
	}
	h := imaging.NewHueClassifier(pen)
	h.Tolerance = d.HueTolerance
	h.MinSaturation = d.MinSaturation
	h.MinValue = d.MinValue
	return h, nil
}

// DetectorOptions returns the detection options described by c.
func (c *Config) DetectorOptions() detection.Options {
	opts := detection.DefaultOptions()
	opts.Threshold = c.Detection.Threshold
	opts.WindowSizes = append([]int(nil), c.Detection.WindowSizes...)
	opts.Validate()
	return opts
}

// CanvasStyle returns the default canvas style with the configured widths.
func (c *Config) CanvasStyle() canvas.Style {
	s := canvas.DefaultStyle()
	s.PenWidth = c.Canvas.PenWidth
	s.PointRadius = c.Canvas.PointRadius
	return s
}

// Save writes the configuration to path in YAML format.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
