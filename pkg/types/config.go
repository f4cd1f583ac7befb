package types

import (
	"errors"
	"strings"
)

// Config holds backend selection and parameters for opening the inventory.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DatabaseName is the file created inside DataDir.
const DatabaseName = "inventory.db"

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrAuthorityInvalid = errors.New("authority must not contain '/' or whitespace")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Authority != "" && strings.ContainsAny(c.Authority, "/ \t\n") {
		return ErrAuthorityInvalid
	}
	return nil
}

// GetAuthority returns the configured authority or DefaultAuthority.
func (c Config) GetAuthority() string {
	if c.Authority == "" {
		return DefaultAuthority
	}
	return c.Authority
}
