package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(flags *rootFlags) *cobra.Command {
	fields := &toolFields{}
	var interactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a tool",
		Long: `Create inserts a tool into the collection and prints its item URI.

Examples:
  inventory create --name Ax --price 19.84 --quantity 6 --supplier Supplier_A --phone 3313467
  inventory create --interactive`,
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := fields.changedValues(cmd)
			if interactive {
				if err := editFields(fields, "New tool"); err != nil {
					return fmt.Errorf("editor: %w", err)
				}
				values = fields.allValues()
			}

			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			uri, err := s.Provider.Insert(s.CollectionURI(), values)
			if err != nil {
				return fmt.Errorf("create tool: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}
	fields.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill in the fields with a form")
	return cmd
}
