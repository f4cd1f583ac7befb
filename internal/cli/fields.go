package cli

import (
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// toolFields are the editable fields as typed on the command line or in
// the form. Price and quantity stay text until the provider validates them.
type toolFields struct {
	name     string
	price    string
	quantity string
	supplier string
	phone    string
}

// fieldFlag ties a flag name to its column and its field.
type fieldFlag struct {
	flag   string
	column string
	usage  string
	value  func(f *toolFields) *string
}

var fieldFlags = []fieldFlag{
	{"name", types.ColumnName, "tool name", func(f *toolFields) *string { return &f.name }},
	{"price", types.ColumnPrice, "unit price", func(f *toolFields) *string { return &f.price }},
	{"quantity", types.ColumnQuantity, "quantity in stock", func(f *toolFields) *string { return &f.quantity }},
	{"supplier", types.ColumnSupplierName, "supplier name", func(f *toolFields) *string { return &f.supplier }},
	{"phone", types.ColumnSupplierPhone, "supplier phone number", func(f *toolFields) *string { return &f.phone }},
}

func (f *toolFields) register(cmd *cobra.Command) {
	for _, ff := range fieldFlags {
		cmd.Flags().StringVar(ff.value(f), ff.flag, "", ff.usage)
	}
}

// changedValues returns a field map holding only the flags given on the
// command line.
func (f *toolFields) changedValues(cmd *cobra.Command) types.Values {
	values := types.Values{}
	for _, ff := range fieldFlags {
		if cmd.Flags().Changed(ff.flag) {
			values[ff.column] = *ff.value(f)
		}
	}
	return values
}

// allValues returns a field map holding every field. Empty price and
// quantity are left out so they read as absent rather than invalid.
func (f *toolFields) allValues() types.Values {
	values := types.Values{}
	for _, ff := range fieldFlags {
		v := *ff.value(f)
		if v == "" && (ff.column == types.ColumnPrice || ff.column == types.ColumnQuantity) {
			continue
		}
		values[ff.column] = v
	}
	return values
}

// fieldsFromTool fills the editable fields from a stored tool. A tool with
// no quantity leaves the field empty, which allValues does not send.
func fieldsFromTool(t types.Tool) *toolFields {
	return &toolFields{
		name:     t.Name,
		price:    cast.ToString(t.Price),
		quantity: formatQuantity(t.Quantity),
		supplier: t.SupplierName,
		phone:    t.SupplierPhone,
	}
}

// overlay copies the fields present in values onto f.
func (f *toolFields) overlay(values types.Values) {
	for _, ff := range fieldFlags {
		if v, ok := values.AsString(ff.column); ok {
			*ff.value(f) = v
		}
	}
}
