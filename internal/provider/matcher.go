package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Matcher is the routing table from content URIs to addresses. It is built
// once for an authority and never changes, so it is safe for concurrent use.
type Matcher struct {
	authority string
	prefix    string // "content://<authority>/"
}

// NewMatcher builds the routing table for authority. An empty authority
// uses types.DefaultAuthority.
func NewMatcher(authority string) *Matcher {
	if authority == "" {
		authority = types.DefaultAuthority
	}
	return &Matcher{
		authority: authority,
		prefix:    types.Scheme + "://" + authority + "/",
	}
}

// Authority returns the authority the matcher routes for.
func (m *Matcher) Authority() string {
	return m.authority
}

// Match resolves uri to an address. It accepts the full form
// content://<authority>/tools[/<id>] and the relative forms tools[/<id>]
// and /tools[/<id>]. A single trailing slash is tolerated. Anything else
// fails with an error wrapping types.ErrUnsupportedAddress.
func (m *Matcher) Match(uri string) (types.Address, error) {
	path, ok := m.path(uri)
	if !ok {
		return types.Address{}, fmt.Errorf("matching %q: %w", uri, types.ErrUnsupportedAddress)
	}
	path = strings.TrimSuffix(path, "/")

	segments := strings.Split(path, "/")
	if segments[0] != types.PathTools {
		return types.Address{}, fmt.Errorf("matching %q: %w", uri, types.ErrUnsupportedAddress)
	}

	switch len(segments) {
	case 1:
		return types.Collection(), nil
	case 2:
		id, ok := parseID(segments[1])
		if !ok {
			return types.Address{}, fmt.Errorf("matching %q: bad id: %w", uri, types.ErrUnsupportedAddress)
		}
		return types.Item(id), nil
	default:
		return types.Address{}, fmt.Errorf("matching %q: %w", uri, types.ErrUnsupportedAddress)
	}
}

// URI renders addr as a full content URI under the matcher's authority.
func (m *Matcher) URI(addr types.Address) string {
	return addr.URI(m.authority)
}

// path strips the scheme and authority from a full URI, or the leading
// slash from a relative one.
func (m *Matcher) path(uri string) (string, bool) {
	if strings.Contains(uri, "://") {
		if !strings.HasPrefix(uri, m.prefix) {
			return "", false
		}
		return strings.TrimPrefix(uri, m.prefix), true
	}
	return strings.TrimPrefix(uri, "/"), true
}

// parseID accepts only non-negative decimal digits that fit in int64.
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
