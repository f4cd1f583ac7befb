package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/pkg/inventory"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	q := &queryFlags{}
	var (
		debounce time.Duration
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "List tools and refresh on every change",
		Long: `Watch prints the tool list and prints it again whenever the collection
changes, including changes made by other inventory processes sharing the
same data directory. Stop with Ctrl-C.`,
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s, err := openSession(cmd, flags, inventory.WithFileWatch(debounce))
			if err != nil {
				return err
			}
			defer s.Close()

			for refreshes := 0; ; refreshes++ {
				wait := limit == 0 || refreshes < limit
				changed, err := renderAndWatch(ctx, cmd, flags, s, q, wait)
				if err != nil {
					return err
				}
				if !changed {
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
		},
	}
	q.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "wait this long after a file change before refreshing")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many refreshes (0 = until interrupted)")
	return cmd
}

// renderAndWatch prints the current list and, when wait is set, blocks
// until it may be stale. It reports false when it did not wait or ctx
// ended first.
func renderAndWatch(ctx context.Context, cmd *cobra.Command, flags *rootFlags, s *session, q *queryFlags, wait bool) (bool, error) {
	rs, err := s.Provider.Query(s.CollectionURI(), q.columns, q.where, q.bindArgs(), q.order)
	if err != nil {
		return false, fmt.Errorf("list tools: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes := rs.Watch(watchCtx)

	if err := printRowSet(cmd, flags, rs); err != nil {
		return false, err
	}
	if !wait {
		return false, nil
	}

	select {
	case _, ok := <-changes:
		return ok, nil
	case <-ctx.Done():
		return false, nil
	}
}
