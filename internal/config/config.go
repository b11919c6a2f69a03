// Package config loads and validates the foamcut configuration file.
//
// The configuration is a YAML document (gopkg.in/yaml.v3) layered over
// built-in defaults: any key missing from the file keeps its default
// value. FOAMCUT_* environment variables, optionally read from a .env
// file with github.com/joho/godotenv, override individual keys. After decoding, the struct is checked with
// github.com/go-playground/validator/v10 using the `validate` tags below.
//
// The resulting Config is an immutable snapshot. Components receive the
// parts they need at construction time; nothing reads configuration from
// package-level variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/foamcut/internal/encoder"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// DefaultFileName is looked up in the working directory when no
// configuration path is given.
const DefaultFileName = "foamcut.yaml"

// DialectAuto selects the dialect from the sink.
const DialectAuto = "auto"

// Config is the full foamcut configuration.
type Config struct {
	// Workspace is the reachable cutting area in millimeters.
	Workspace Workspace `yaml:"workspace" json:"workspace"`

	// Limits bounds the per-job cutting options and holds their defaults.
	Limits Limits `yaml:"limits" json:"limits"`

	// Sink selects where jobs go: "file" or "device".
	Sink string `yaml:"sink" json:"sink" validate:"required,oneof=file device"`

	// Dialect pins the output dialect: "auto", "plotter" or "motion".
	// With "auto" the device gets the plotter dialect and files get
	// motion G-code.
	Dialect string `yaml:"dialect" json:"dialect" validate:"required,oneof=auto plotter motion"`

	// OutputDir is where job files are written. A leading "~" expands to
	// the user's home directory.
	OutputDir string `yaml:"output_dir" json:"outputDir" validate:"required"`

	// EnforceClockwise reverses counter-clockwise toolpaths before
	// encoding.
	EnforceClockwise bool `yaml:"enforce_clockwise" json:"enforceClockwise"`

	// Device configures the serial connection to the cutter.
	Device Device `yaml:"device" json:"device"`

	// Plotter configures plotter-dialect framing.
	Plotter Plotter `yaml:"plotter" json:"plotter"`
}

// Workspace mirrors model.WorkspaceBounds with validation tags.
type Workspace struct {
	MinX float64 `yaml:"min_x" json:"minX"`
	MinY float64 `yaml:"min_y" json:"minY"`
	MaxX float64 `yaml:"max_x" json:"maxX" validate:"gtfield=MinX"`
	MaxY float64 `yaml:"max_y" json:"maxY" validate:"gtfield=MinY"`
}

// Bounds converts the workspace into model bounds.
func (w Workspace) Bounds() model.WorkspaceBounds {
	return model.WorkspaceBounds{MinX: w.MinX, MinY: w.MinY, MaxX: w.MaxX, MaxY: w.MaxY}
}

// Device holds serial connection settings.
type Device struct {
	// Path is the serial device, e.g. /dev/ttyUSB0.
	Path string `yaml:"path" json:"path"`

	// BaudRate is the line speed.
	BaudRate int `yaml:"baud_rate" json:"baudRate" validate:"gt=0"`
}

// Plotter holds plotter-dialect framing settings.
type Plotter struct {
	// JobName is sent with the UR directive.
	JobName string `yaml:"job_name" json:"jobName" validate:"required,printascii,excludesall=;"`

	// ParkX is the X coordinate, in device units, where the head parks
	// after a job.
	ParkX int `yaml:"park_x" json:"parkX" validate:"gte=0"`
}

// Options converts the plotter settings for the encoder.
func (p Plotter) Options() encoder.PlotterOptions {
	return encoder.PlotterOptions{JobName: p.JobName, ParkX: p.ParkX}
}

// Default returns the built-in configuration, sized for the CUT 1610S
// foam cutter.
func Default() *Config {
	return &Config{
		Workspace: Workspace{MinX: -1, MinY: -1, MaxX: 1300, MaxY: 700},
		Limits: Limits{
			Speed:             IntRange{Min: 1, Max: 900, Default: 550},
			Depth:             FloatRange{Min: 0.01, Max: 40, Default: 0.10},
			AngleTolerance:    FloatRange{Min: 0.01, Max: 100, Default: 5},
			DistanceTolerance: FloatRange{Min: 0.0001, Max: 40, Default: 0.01},
		},
		Sink:             string(model.SinkFile),
		Dialect:          DialectAuto,
		OutputDir:        filepath.Join("~", "Desktop", "PLT"),
		EnforceClockwise: true,
		Device:           Device{Path: "/dev/ttyUSB0", BaudRate: 9600},
		Plotter:          Plotter{JobName: encoder.DefaultJobName, ParkX: encoder.DefaultParkX},
	}
}

// Load reads the configuration at path over the defaults, applies
// FOAMCUT_* environment overrides and validates the result.
//
// When path is empty, DefaultFileName in the working directory is used if
// it exists, and the defaults otherwise. An explicitly given path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file: built-in defaults apply.
	default:
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid environment override", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid configuration in %s", path), err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validateStruct(c)
}

// SinkKind returns the configured sink.
func (c *Config) SinkKind() model.SinkKind {
	return model.SinkKind(c.Sink)
}

// DialectFor returns the dialect to encode for sink, honoring a pinned
// dialect.
func (c *Config) DialectFor(sink model.SinkKind) model.Dialect {
	if c.Dialect == "" || c.Dialect == DialectAuto {
		return sink.DefaultDialect()
	}
	return model.Dialect(c.Dialect)
}

// ResolvedOutputDir returns OutputDir with a leading "~" expanded.
func (c *Config) ResolvedOutputDir() (string, error) {
	return expandHome(c.OutputDir)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~"+string(filepath.Separator)) && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimLeft(p[1:], `/\`)), nil
}
