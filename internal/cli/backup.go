package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every tool as JSON lines",
		Long: `Export writes one JSON object per tool, in id order, to the given file or
to standard output. The file is replaced atomically.`,
		Args: userArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 0 {
				if _, err := s.Backend().ExportJSONL(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				return nil
			}

			n, err := s.Backend().ExportFile(args[0])
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tools to %s\n", n, args[0])
			return nil
		},
	}
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add tools from a JSON lines file",
		Long: `Import adds every well-formed line of a file written by export. Imported
tools get new ids. Malformed lines and tools that fail validation are
skipped and counted.`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return &userError{err: fmt.Errorf("open import file: %w", err)}
			}
			defer f.Close()

			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			imported, skipped, err := s.Import(f)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tools, skipped %d lines\n", imported, skipped)
			return nil
		},
	}
}
