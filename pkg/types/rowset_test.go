package types

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubObserver records subscriptions and hands back a fixed channel.
type stubObserver struct {
	addr        Address
	descendants bool
	ch          chan Address
}

func (s *stubObserver) Subscribe(_ context.Context, addr Address, descendants bool) (<-chan Address, string) {
	s.addr = addr
	s.descendants = descendants
	return s.ch, "sub-1"
}

func TestRowSetAccessors(t *testing.T) {
	rs := NewRowSet(AllColumns, [][]any{
		{int64(1), "Ax", 19.84, int64(6), "Supplier_A", "3313467..."},
		{int64(2), "Saw", 7.5, nil, "Supplier_B", "555"},
	})

	require.Equal(t, 2, rs.Len())
	assert.Equal(t, 1, rs.ColumnIndex(ColumnName))
	assert.Equal(t, -1, rs.ColumnIndex("color"))
	assert.Equal(t, "Saw", rs.String(1, ColumnName))
	assert.Equal(t, int64(0), rs.Int(1, ColumnQuantity), "NULL quantity reads as zero")
	assert.Nil(t, rs.Value(5, ColumnName))

	tools := rs.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, Tool{ID: 1, Name: "Ax", Price: 19.84, Quantity: Quantity(6), SupplierName: "Supplier_A", SupplierPhone: "3313467..."}, tools[0])
	assert.Nil(t, tools[1].Quantity, "NULL quantity stays nil")
	assert.Nil(t, rs.NullInt(1, ColumnQuantity))
}

func TestRowSetProjection(t *testing.T) {
	rs := NewRowSet([]string{ColumnID, ColumnName}, [][]any{{int64(3), "Hammer"}})
	tool := rs.Tool(0)

	assert.Equal(t, int64(3), tool.ID)
	assert.Equal(t, "Hammer", tool.Name)
	assert.Zero(t, tool.Price)
}

func TestRowSetWatch(t *testing.T) {
	rs := NewRowSet(AllColumns, nil)
	assert.Nil(t, rs.Watch(context.Background()), "unbound row set never fires")

	obs := &stubObserver{ch: make(chan Address, 1)}
	rs.SetNotification(obs, Item(4))
	ch := rs.Watch(context.Background())

	require.NotNil(t, ch)
	assert.Equal(t, Item(4), obs.addr)
	assert.True(t, obs.descendants)
}
