package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/internal/paths"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize inventory storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if there is none, and create or upgrade the database.",
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Record an explicit --data-dir so later runs find the same database.
	dataDir := ""
	if flags.dataDir != "" {
		dataDir, err = paths.ResolveDataDir(flags.dataDir, "")
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
	}

	configPath := paths.ConfigFile(configDir)
	written, err := writeConfigIfMissing(configPath, dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	s, err := openSession(cmd, flags)
	if err != nil {
		return err
	}
	dbPath := s.Backend().Path()
	if err := s.Close(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	}
	fmt.Fprintf(out, "Inventory initialized at %s\n", dbPath)
	return nil
}
