package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	var (
		all       bool
		where     string
		whereArgs []string
	)

	cmd := &cobra.Command{
		Use:   "delete [id|uri]",
		Short: "Remove a tool, or all tools",
		Long: `Delete removes one tool by id, or with --all every tool matching --where
(every tool when --where is omitted).

Examples:
  inventory delete 3
  inventory delete --all
  inventory delete --all --where "quantity = 0"`,
		Args: userArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return userErrorf("give either an id or --all")
			}
			if !all && (where != "" || len(whereArgs) > 0) {
				return userErrorf("--where applies only with --all")
			}

			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			uri := s.CollectionURI()
			if !all {
				uri, err = itemURI(s, args[0])
				if err != nil {
					return err
				}
			}

			n, err := s.Provider.Delete(uri, where, stringsToArgs(whereArgs))
			if err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tools\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every tool matching --where")
	cmd.Flags().StringVar(&where, "where", "", "SQL filter for --all")
	cmd.Flags().StringArrayVar(&whereArgs, "arg", nil, "bind argument for --where (repeatable)")
	return cmd
}
