package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	fields := &toolFields{}
	var (
		interactive bool
		all         bool
		where       string
		whereArgs   []string
	)

	cmd := &cobra.Command{
		Use:   "update [id|uri]",
		Short: "Change a tool, or every tool matching a filter",
		Long: `Update edits one tool. The stored tool is loaded, the given fields are
laid over it, and the complete tool is written back.

With --all, the given fields are written to every tool matching --where
(or every tool when --where is omitted). Name, supplier, and phone must
be among them.

Examples:
  inventory update 3 --quantity 12
  inventory update 3 --interactive
  inventory update --all --where "supplier = ?" --arg Supplier_A \
      --name Ax --supplier Supplier_B --phone 555-0100`,
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

			if all {
				values := fields.changedValues(cmd)
				if len(values) == 0 {
					return userErrorf("nothing to update: give at least one field flag")
				}
				n, err := s.Provider.Update(s.CollectionURI(), values, where, stringsToArgs(whereArgs))
				if err != nil {
					return fmt.Errorf("update tools: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d tools\n", n)
				return nil
			}

			changed := fields.changedValues(cmd)
			if len(changed) == 0 && !interactive {
				return userErrorf("nothing to update: give a field flag or --interactive")
			}

			uri, err := itemURI(s, args[0])
			if err != nil {
				return err
			}
			current, err := fetchTool(s, args[0])
			if err != nil {
				return err
			}

			merged := fieldsFromTool(current)
			merged.overlay(changed)
			if interactive {
				if err := editFields(merged, fmt.Sprintf("Edit tool %d", current.ID)); err != nil {
					return fmt.Errorf("editor: %w", err)
				}
			}

			n, err := s.Provider.Update(uri, merged.allValues(), "", nil)
			if err != nil {
				return fmt.Errorf("update tool: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d tool\n", n)
			return nil
		},
	}
	fields.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "edit the fields with a form")
	cmd.Flags().BoolVar(&all, "all", false, "update every tool matching --where")
	cmd.Flags().StringVar(&where, "where", "", "SQL filter for --all")
	cmd.Flags().StringArrayVar(&whereArgs, "arg", nil, "bind argument for --where (repeatable)")
	return cmd
}
