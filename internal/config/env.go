package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override configuration keys.
const (
	EnvConfig    = "FOAMCUT_CONFIG"
	EnvSink      = "FOAMCUT_SINK"
	EnvDialect   = "FOAMCUT_DIALECT"
	EnvDevice    = "FOAMCUT_DEVICE"
	EnvBaudRate  = "FOAMCUT_BAUD_RATE"
	EnvOutputDir = "FOAMCUT_OUTPUT_DIR"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// LoadEnvFile adds the variables in path to the process environment.
// Variables that are already set keep their value. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides configuration keys from environment variables
// looked up with lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvSink, &c.Sink},
		{EnvDialect, &c.Dialect},
		{EnvDevice, &c.Device.Path},
		{EnvOutputDir, &c.OutputDir},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvBaudRate); ok && v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid baud rate %q", EnvBaudRate, v)
		}
		c.Device.BaudRate = baud
	}
	return nil
}
