package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// queryFlags are the list-screen query parameters.
type queryFlags struct {
	columns []string
	where   string
	args    []string
	order   string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&q.columns, "columns", nil, "columns to show (default: all)")
	cmd.Flags().StringVar(&q.where, "where", "", "SQL filter, e.g. \"quantity < ?\"")
	cmd.Flags().StringArrayVar(&q.args, "arg", nil, "bind argument for --where (repeatable)")
	cmd.Flags().StringVar(&q.order, "order", "", "SQL sort order, e.g. \"name ASC\"")
}

func (q *queryFlags) bindArgs() []any {
	return stringsToArgs(q.args)
}

func newListCmd(flags *rootFlags) *cobra.Command {
	q := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools",
		Long: `List queries the tool collection and prints it as a table.

Examples:
  inventory list
  inventory list --columns name,quantity --order "name ASC"
  inventory list --where "quantity < ?" --arg 5
  inventory list --json`,
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			rs, err := s.Provider.Query(s.CollectionURI(), q.columns, q.where, q.bindArgs(), q.order)
			if err != nil {
				return fmt.Errorf("list tools: %w", err)
			}
			return printRowSet(cmd, flags, rs)
		},
	}
	q.register(cmd)
	return cmd
}

// printRowSet writes rs in the selected output mode. Full rows print as
// tools; projections print as maps.
func printRowSet(cmd *cobra.Command, flags *rootFlags, rs *types.RowSet) error {
	out := cmd.OutOrStdout()
	if !flags.jsonMode {
		return renderTable(out, rs)
	}
	if len(rs.Columns) == len(types.AllColumns) {
		return writeJSON(out, rs.Tools())
	}
	return writeJSON(out, rowsAsMaps(rs))
}

// stringsToArgs converts flag strings into bind arguments.
func stringsToArgs(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
