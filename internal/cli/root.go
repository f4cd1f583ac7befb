// Package cli implements the inventory command-line interface. Every command
// that reads or writes tools goes through the provider with a content URI,
// the way a screen of the application would.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	authority string
	logLevel  string
	jsonMode  bool
}

// NewRootCmd creates the top-level "inventory" command with global flags
// and all subcommands registered. Each call gets its own flag state.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "inventory",
		Short: "Track tools, prices, stock, and suppliers",
		Long: "Inventory records tools (name, price, quantity, supplier, supplier phone)\n" +
			"in a local SQLite store and addresses them by content URI.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &userError{err: err}
	})

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .inventory-db)")
	root.PersistentFlags().StringVar(&flags.authority, "authority", "", "content authority (default: "+types.DefaultAuthority+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newGetCmd(flags))
	root.AddCommand(newCreateCmd(flags))
	root.AddCommand(newUpdateCmd(flags))
	root.AddCommand(newDeleteCmd(flags))
	root.AddCommand(newSeedCmd(flags))
	root.AddCommand(newTypeCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

// userError marks failures caused by the command line itself: bad flags,
// bad ids, or input that the inventory rejects.
type userError struct {
	err error
}

func (e *userError) Error() string { return e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

// userErrorf builds a userError from a format string.
func userErrorf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

// userArgs wraps a positional argument validator so its failures are user
// errors.
func userArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &userError{err: err}
		}
		return nil
	}
}

// exitCode maps an error to the process exit code. Validation failures,
// unsupported addresses, and missing tools are user errors; anything else
// is a system error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue *userError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, types.ErrInvalidTool),
		errors.Is(err, types.ErrUnsupportedAddress),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrUnknownColumn):
		return exitUserError
	default:
		return exitSysError
	}
}
