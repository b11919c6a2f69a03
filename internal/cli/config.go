// config.go implements the "foamcut config" command group.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// NewConfigCommand creates the "config" cobra command and its
// subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: the config file, if any, layered
over the built-in defaults. The YAML output can be saved as a starting
point for a foamcut.yaml.

Examples:
  foamcut config show
  foamcut config show -c cutter.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	})

	return cmd
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printJSON(cfg)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render configuration", err)
	}
	fmt.Print(string(data))
	return nil
}
