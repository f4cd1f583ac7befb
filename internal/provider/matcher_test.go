package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher("")

	tests := []struct {
		name    string
		uri     string
		want    types.Address
		wantErr bool
	}{
		{name: "full collection", uri: "content://com.example.android.inventory/tools", want: types.Collection()},
		{name: "full item", uri: "content://com.example.android.inventory/tools/7", want: types.Item(7)},
		{name: "relative collection", uri: "tools", want: types.Collection()},
		{name: "relative item", uri: "tools/42", want: types.Item(42)},
		{name: "rooted item", uri: "/tools/42", want: types.Item(42)},
		{name: "trailing slash", uri: "content://com.example.android.inventory/tools/", want: types.Collection()},
		{name: "item zero", uri: "tools/0", want: types.Item(0)},
		{name: "foreign authority", uri: "content://org.other/tools", wantErr: true},
		{name: "foreign scheme", uri: "http://com.example.android.inventory/tools", wantErr: true},
		{name: "other path", uri: "content://com.example.android.inventory/suppliers", wantErr: true},
		{name: "non-numeric id", uri: "tools/abc", wantErr: true},
		{name: "negative id", uri: "tools/-1", wantErr: true},
		{name: "signed id", uri: "tools/+1", wantErr: true},
		{name: "id overflow", uri: "tools/99999999999999999999", wantErr: true},
		{name: "extra segment", uri: "tools/1/parts", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
		{name: "double slash", uri: "tools//", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Match(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrUnsupportedAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_CustomAuthority(t *testing.T) {
	m := NewMatcher("org.example.shed")
	assert.Equal(t, "org.example.shed", m.Authority())

	got, err := m.Match("content://org.example.shed/tools/3")
	require.NoError(t, err)
	assert.Equal(t, types.Item(3), got)

	_, err = m.Match("content://com.example.android.inventory/tools/3")
	assert.ErrorIs(t, err, types.ErrUnsupportedAddress)

	assert.Equal(t, "content://org.example.shed/tools/3", m.URI(types.Item(3)))
}

func TestMatcher_RoundTrip(t *testing.T) {
	m := NewMatcher("")
	for _, addr := range []types.Address{types.Collection(), types.Item(1), types.Item(123456)} {
		got, err := m.Match(m.URI(addr))
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	}
}
