package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// writeConfig writes contents to foamcut.yaml in a fresh temp directory
// and returns its path.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, model.WorkspaceBounds{MinX: -1, MinY: -1, MaxX: 1300, MaxY: 700}, cfg.Workspace.Bounds())
	assert.Equal(t, 550, cfg.Limits.Speed.Default)
	assert.Equal(t, model.SinkFile, cfg.SinkKind())
	assert.True(t, cfg.EnforceClockwise)
}

// TestLoad_PartialOverridesDefaults checks that keys missing from the file
// keep their default values.
func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
workspace:
  max_x: 1600
sink: device
plotter:
  job_name: Wing
limits:
  speed: {min: 10, max: 500, default: 300}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1600.0, cfg.Workspace.MaxX)
	assert.Equal(t, 700.0, cfg.Workspace.MaxY, "unset key keeps default")
	assert.Equal(t, model.SinkDevice, cfg.SinkKind())
	assert.Equal(t, "Wing", cfg.Plotter.JobName)
	assert.Equal(t, 160000, cfg.Plotter.ParkX)
	assert.Equal(t, IntRange{Min: 10, Max: 500, Default: 300}, cfg.Limits.Speed)
	assert.Equal(t, 0.10, cfg.Limits.Depth.Default)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "workspace: [1, 2"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			name:  "unknown sink",
			yaml:  "sink: printer",
			field: "sink",
		},
		{
			name:  "unknown dialect",
			yaml:  "dialect: hpgl",
			field: "dialect",
		},
		{
			name:  "inverted workspace",
			yaml:  "workspace: {min_x: 100, max_x: 50}",
			field: "workspace.max_x",
		},
		{
			name:  "default speed above max",
			yaml:  "limits: {speed: {min: 1, max: 100, default: 550}}",
			field: "limits.speed.default",
		},
		{
			name:  "zero baud rate",
			yaml:  "device: {baud_rate: 0}",
			field: "device.baud_rate",
		},
		{
			name:  "job name with separator",
			yaml:  "plotter: {job_name: 'a;b'}",
			field: "plotter.job_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)

			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestDialectFor(t *testing.T) {
	cfg := Default()
	assert.Equal(t, model.DialectPlotter, cfg.DialectFor(model.SinkDevice))
	assert.Equal(t, model.DialectMotion, cfg.DialectFor(model.SinkFile))

	cfg.Dialect = "plotter"
	assert.Equal(t, model.DialectPlotter, cfg.DialectFor(model.SinkFile))
}

func TestResolvedOutputDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	dir, err := cfg.ResolvedOutputDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Desktop", "PLT"), dir)

	cfg.OutputDir = "/var/lib/foamcut"
	dir, err = cfg.ResolvedOutputDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/foamcut", dir)

	cfg.OutputDir = "~user/jobs"
	dir, err = cfg.ResolvedOutputDir()
	require.NoError(t, err)
	assert.Equal(t, "~user/jobs", dir, "only a bare ~ prefix is expanded")
}

// TestMarshal_RoundTrip checks that `config show` output loads back to
// the same configuration.
func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Sink = "device"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "output_dir:")

	loaded := &Config{}
	require.NoError(t, yaml.Unmarshal(data, loaded))
	assert.Equal(t, cfg, loaded)
}
