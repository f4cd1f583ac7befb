package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/internal/sqlite"
	"github.com/mesh-intelligence/inventory/pkg/inventory"
)

const modulePath = "github.com/mesh-intelligence/inventory"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inventory version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "inventory v%s\nmodule: %s\nschema: %d\n",
				inventory.Version, modulePath, sqlite.SchemaVersion)
			return nil
		},
	}
}
