package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTypeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "type <uri>",
		Short: "Print the content type of an address",
		Long: `Type prints the content-type tag the inventory reports for an address:
the list type for the collection, the item type for a single tool.

Examples:
  inventory type content://com.example.android.inventory/tools
  inventory type tools/3`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Provider.Type(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}
