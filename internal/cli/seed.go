package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/internal/sqlite"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample tools",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, tool := range sqlite.SeedTools() {
				uri, err := s.Provider.Insert(s.CollectionURI(), tool.Values())
				if err != nil {
					return fmt.Errorf("seed %s: %w", tool.Name, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), uri)
			}
			return nil
		},
	}
}
