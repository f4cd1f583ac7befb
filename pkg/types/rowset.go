package types

import (
	"context"

	"github.com/spf13/cast"
)

// Observer registers interest in changes under an address. The notify
// package's Resolver satisfies it.
type Observer interface {
	Subscribe(ctx context.Context, addr Address, descendants bool) (<-chan Address, string)
}

// RowSet is the materialised result of a query: column names and one slice
// of values per row. A row set returned by the provider is registered for
// change notification on the address it was queried with; call Watch to
// learn when it may be stale and re-issue the query.
type RowSet struct {
	Columns []string
	Rows    [][]any

	addr     Address
	observer Observer
}

// NewRowSet wraps query output.
func NewRowSet(columns []string, rows [][]any) *RowSet {
	return &RowSet{Columns: columns, Rows: rows}
}

// SetNotification binds the row set to observer for changes under addr.
func (rs *RowSet) SetNotification(observer Observer, addr Address) {
	rs.observer = observer
	rs.addr = addr
}

// Watch returns a channel that receives the changed address each time data
// under the row set's address may have changed. The subscription ends when
// ctx is cancelled. An unbound row set returns a nil channel, which never
// fires.
func (rs *RowSet) Watch(ctx context.Context) <-chan Address {
	if rs.observer == nil {
		return nil
	}
	ch, _ := rs.observer.Subscribe(ctx, rs.addr, true)
	return ch
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	return len(rs.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1.
func (rs *RowSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the raw value at row for column name, or nil when the column
// is not in the projection.
func (rs *RowSet) Value(row int, name string) any {
	i := rs.ColumnIndex(name)
	if i < 0 || row < 0 || row >= len(rs.Rows) {
		return nil
	}
	return rs.Rows[row][i]
}

// String returns the value as text; NULL reads as "".
func (rs *RowSet) String(row int, name string) string {
	return cast.ToString(rs.Value(row, name))
}

// Float returns the value as float64; NULL reads as 0.
func (rs *RowSet) Float(row int, name string) float64 {
	return cast.ToFloat64(rs.Value(row, name))
}

// Int returns the value as int64; NULL reads as 0.
func (rs *RowSet) Int(row int, name string) int64 {
	return cast.ToInt64(rs.Value(row, name))
}

// NullInt returns the value as *int64; NULL reads as nil.
func (rs *RowSet) NullInt(row int, name string) *int64 {
	v := rs.Value(row, name)
	if v == nil {
		return nil
	}
	n := cast.ToInt64(v)
	return &n
}

// Tool hydrates row into a Tool. Columns missing from the projection are
// left at their zero value.
func (rs *RowSet) Tool(row int) Tool {
	return Tool{
		ID:            rs.Int(row, ColumnID),
		Name:          rs.String(row, ColumnName),
		Price:         rs.Float(row, ColumnPrice),
		Quantity:      rs.NullInt(row, ColumnQuantity),
		SupplierName:  rs.String(row, ColumnSupplierName),
		SupplierPhone: rs.String(row, ColumnSupplierPhone),
	}
}

// Tools hydrates every row.
func (rs *RowSet) Tools() []Tool {
	out := make([]Tool, 0, len(rs.Rows))
	for i := range rs.Rows {
		out = append(out, rs.Tool(i))
	}
	return out
}
