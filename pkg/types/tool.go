package types

// Tool is one row of the tools table. Quantity is nil when the row stores
// no quantity.
type Tool struct {
	ID            int64   `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Price         float64 `json:"price" yaml:"price"`
	Quantity      *int64  `json:"quantity" yaml:"quantity"`
	SupplierName  string  `json:"supplier_name" yaml:"supplier_name"`
	SupplierPhone string  `json:"supplier_phone" yaml:"supplier_phone"`
}

// Quantity returns a pointer to n, for filling Tool.Quantity.
func Quantity(n int64) *int64 {
	return &n
}

// Values returns the writable fields of t as a field map. The id is left out;
// it is assigned on insert and addressed through the URI on update. A nil
// quantity maps to a null value.
func (t Tool) Values() Values {
	var quantity any
	if t.Quantity != nil {
		quantity = *t.Quantity
	}
	return Values{
		ColumnName:          t.Name,
		ColumnPrice:         t.Price,
		ColumnQuantity:      quantity,
		ColumnSupplierName:  t.SupplierName,
		ColumnSupplierPhone: t.SupplierPhone,
	}
}
