// Package provider is the router and validator in front of storage. It
// resolves content URIs to addresses, enforces per-address rules, validates
// field maps, delegates to the store, and publishes change notifications
// after successful writes.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Store is the SQL layer the provider delegates to. *sqlite.Backend
// satisfies it.
type Store interface {
	Query(projection []string, selection string, args []any, sortOrder string) ([]string, [][]any, error)
	Insert(values types.Values) (int64, error)
	Update(values types.Values, selection string, args []any) (int64, error)
	Delete(selection string, args []any) (int64, error)
}

// Notifier publishes and subscribes to change signals. *notify.Resolver
// satisfies it.
type Notifier interface {
	Subscribe(ctx context.Context, addr types.Address, descendants bool) (<-chan types.Address, string)
	NotifyChange(addr types.Address)
}

// itemSelection is the filter forced for single-item addresses.
const itemSelection = types.ColumnID + " = ?"

// Provider routes requests by address. It holds no mutable state of its own
// and is safe for concurrent use.
type Provider struct {
	store    Store
	notifier Notifier
	matcher  *Matcher
	logger   *slog.Logger
}

// New wires a provider. A nil matcher routes for types.DefaultAuthority and
// a nil logger uses slog.Default.
func New(store Store, notifier Notifier, matcher *Matcher, logger *slog.Logger) *Provider {
	if matcher == nil {
		matcher = NewMatcher("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		store:    store,
		notifier: notifier,
		matcher:  matcher,
		logger:   logger.With("component", "provider"),
	}
}

// Matcher returns the routing table the provider resolves with.
func (p *Provider) Matcher() *Matcher {
	return p.matcher
}

// Resolve maps uri to an address.
func (p *Provider) Resolve(uri string) (types.Address, error) {
	return p.matcher.Match(uri)
}

// Query reads tools. A collection address uses selection and args as given;
// an item address ignores them and selects the one row with that id. The
// returned row set is registered for change notification on the queried
// address.
func (p *Provider) Query(uri string, projection []string, selection string, args []any, sortOrder string) (*types.RowSet, error) {
	addr, err := p.matcher.Match(uri)
	if err != nil {
		return nil, err
	}

	if addr.IsItem() {
		selection, args = itemSelection, []any{addr.ID}
	}

	p.logger.Debug("query", "address", addr.String(), "selection", selection)

	columns, rows, err := p.store.Query(projection, selection, args, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", addr, err)
	}

	rs := types.NewRowSet(columns, rows)
	if p.notifier != nil {
		rs.SetNotification(p.notifier, addr)
	}
	return rs, nil
}

// Insert validates values and adds a tool. Only the collection address
// accepts inserts. It returns the new tool's item URI and notifies the
// collection.
func (p *Provider) Insert(uri string, values types.Values) (string, error) {
	addr, err := p.matcher.Match(uri)
	if err != nil {
		return "", fmt.Errorf("inserting at %q: %w", uri, types.ErrInsertNotSupported)
	}
	if !addr.IsCollection() {
		return "", fmt.Errorf("inserting at %s: %w", addr, types.ErrInsertNotSupported)
	}

	if err := Validate(values); err != nil {
		return "", err
	}

	id, err := p.store.Insert(values)
	if err != nil {
		p.logger.Error("failed to insert row", "uri", uri, "error", err)
		return "", fmt.Errorf("inserting tool: %w", withNoResult(err))
	}
	if id < 0 {
		p.logger.Error("failed to insert row", "uri", uri)
		return "", fmt.Errorf("inserting tool: %w", types.ErrNoResult)
	}

	p.notify(addr)
	p.logger.Debug("inserted", "id", id)
	return p.matcher.URI(types.Item(id)), nil
}

// Update changes tools and returns the number of rows affected. A
// collection address uses selection and args as given; an item address
// forces the id filter. An empty field map is a no-op that never reaches
// the store.
func (p *Provider) Update(uri string, values types.Values, selection string, args []any) (int64, error) {
	addr, err := p.matcher.Match(uri)
	if err != nil {
		return 0, fmt.Errorf("updating %q: %w", uri, types.ErrUpdateNotSupported)
	}

	if len(values) == 0 {
		return 0, nil
	}

	if err := Validate(values); err != nil {
		return 0, err
	}

	if addr.IsItem() {
		selection, args = itemSelection, []any{addr.ID}
	}

	n, err := p.store.Update(values, selection, args)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", addr, err)
	}
	if n > 0 {
		p.notify(addr)
	}

	p.logger.Debug("updated", "address", addr.String(), "rows", n)
	return n, nil
}

// Delete removes tools and returns the number removed. A collection address
// uses selection and args as given, so an empty selection removes every
// tool; an item address forces the id filter.
func (p *Provider) Delete(uri string, selection string, args []any) (int64, error) {
	addr, err := p.matcher.Match(uri)
	if err != nil {
		return 0, fmt.Errorf("deleting %q: %w", uri, types.ErrDeleteNotSupported)
	}

	if addr.IsItem() {
		selection, args = itemSelection, []any{addr.ID}
	}

	n, err := p.store.Delete(selection, args)
	if err != nil {
		return 0, fmt.Errorf("deleting %s: %w", addr, err)
	}
	if n > 0 {
		p.notify(addr)
	}

	p.logger.Debug("deleted", "address", addr.String(), "rows", n)
	return n, nil
}

// Type returns the content-type tag for uri: the list tag for the
// collection and the item tag for a single tool.
func (p *Provider) Type(uri string) (string, error) {
	addr, err := p.matcher.Match(uri)
	if err != nil {
		return "", fmt.Errorf("resolving type of %q: %w", uri, types.ErrUnknownAddress)
	}
	if addr.IsItem() {
		return types.ContentItemType(p.matcher.Authority()), nil
	}
	return types.ContentListType(p.matcher.Authority()), nil
}

func (p *Provider) notify(addr types.Address) {
	if p.notifier != nil {
		p.notifier.NotifyChange(addr)
	}
}

// withNoResult makes sure a failed insert reports types.ErrNoResult while
// keeping the store's cause in the chain.
func withNoResult(err error) error {
	if errors.Is(err, types.ErrNoResult) || errors.Is(err, types.ErrDetached) || errors.Is(err, types.ErrUnknownColumn) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrNoResult, err)
}
