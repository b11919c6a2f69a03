// ports.go implements the "foamcut ports" command.
//
// The ports command lists the serial devices that could be connected to
// the cutter, to help fill in device.path in the configuration.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/foamcut/internal/model"
	"github.com/shinji-kodama/foamcut/internal/serial"
)

// NewPortsCommand creates the "ports" cobra command.
func NewPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		Long: `List serial devices that may be connected to the cutter.

Examples:
  foamcut ports
  foamcut ports --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPorts()
		},
	}
}

func runPorts() error {
	ports, err := serial.ListPorts()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to list serial ports", err)
	}
	VerboseLog("Found %d serial port(s)", len(ports))

	if IsJSONOutput() {
		// Use an empty slice so JSON shows [] instead of null.
		if ports == nil {
			ports = []string{}
		}
		printJSON(map[string]interface{}{"ports": ports})
		return nil
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}
