package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

func newGetCmd(flags *rootFlags) *cobra.Command {
	var yamlMode bool
	cmd := &cobra.Command{
		Use:   "get <id|uri>",
		Short: "Show one tool",
		Long: `Get prints the details of a single tool, addressed by id or by item URI.

Examples:
  inventory get 3
  inventory get content://com.example.android.inventory/tools/3 --yaml`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			tool, err := fetchTool(s, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case flags.jsonMode:
				return writeJSON(out, tool)
			case yamlMode:
				return writeYAML(out, tool)
			default:
				return renderDetail(out, tool)
			}
		},
	}
	cmd.Flags().BoolVar(&yamlMode, "yaml", false, "output in YAML format")
	return cmd
}

// itemURI turns a command-line reference into an item URI. A bare number is
// an id under the session's authority; anything else is passed to the
// router as is.
func itemURI(s *session, ref string) (string, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if id < 0 {
			return "", userErrorf("invalid id %q", ref)
		}
		return s.ItemURI(id), nil
	}
	addr, err := s.Provider.Resolve(ref)
	if err != nil {
		return "", err
	}
	if !addr.IsItem() {
		return "", userErrorf("%q does not address a single tool", ref)
	}
	return s.Provider.Matcher().URI(addr), nil
}

// fetchTool loads the tool at ref, failing with types.ErrNotFound when the
// id matches no row.
func fetchTool(s *session, ref string) (types.Tool, error) {
	uri, err := itemURI(s, ref)
	if err != nil {
		return types.Tool{}, err
	}
	rs, err := s.Provider.Query(uri, nil, "", nil, "")
	if err != nil {
		return types.Tool{}, fmt.Errorf("get tool: %w", err)
	}
	if rs.Len() == 0 {
		return types.Tool{}, fmt.Errorf("tool %s: %w", ref, types.ErrNotFound)
	}
	return rs.Tool(0), nil
}
