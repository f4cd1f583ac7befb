package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/internal/logging"
	"github.com/mesh-intelligence/inventory/pkg/inventory"
)

// session is one opened inventory plus what is needed to release it.
type session struct {
	*inventory.Inventory
	settings *settings
	logger   *slog.Logger

	closeLog func() error
}

// openSession resolves configuration, builds the logger, and opens the
// inventory. The caller must defer Close.
func openSession(cmd *cobra.Command, flags *rootFlags, opts ...inventory.Option) (*session, error) {
	s, err := resolveSettings(flags)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  s.logLevel,
		Format: s.logFormat,
		File:   s.logFile,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, &userError{err: fmt.Errorf("configure logging: %w", err)}
	}

	opts = append([]inventory.Option{inventory.WithLogger(logger)}, opts...)
	inv, err := inventory.Open(s.config, opts...)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open inventory: %w", err)
	}

	return &session{Inventory: inv, settings: s, logger: logger, closeLog: closeLog}, nil
}

// Close releases the inventory and the log sink.
func (s *session) Close() error {
	err := s.Inventory.Close()
	if cerr := s.closeLog(); err == nil {
		err = cerr
	}
	return err
}
