package provider

import (
	"math"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Validate checks a field map before it is written. Rules are applied in a
// fixed order and the first violation is returned:
//
//  1. name must be present and non-null
//  2. price, when present and non-null, must be a finite number >= 0
//  3. quantity, when present and non-null, must be an integer >= 0
//  4. supplier name must be present and non-null
//  5. supplier phone must be present and non-null
//
// Numeric strings are accepted for price and quantity. Quantity strings are
// read in base 10.
func Validate(values types.Values) error {
	if !values.Present(types.ColumnName) {
		return types.ErrMissingName
	}

	if values.Present(types.ColumnPrice) {
		price, err := values.AsFloat(types.ColumnPrice)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return types.ErrInvalidPrice
		}
	}

	if values.Present(types.ColumnQuantity) {
		if !isWholeNumber(values[types.ColumnQuantity]) {
			return types.ErrInvalidQuantity
		}
		quantity, err := values.AsInt(types.ColumnQuantity)
		if err != nil || quantity < 0 {
			return types.ErrInvalidQuantity
		}
	}

	if !values.Present(types.ColumnSupplierName) {
		return types.ErrMissingSupplierName
	}

	if !values.Present(types.ColumnSupplierPhone) {
		return types.ErrMissingSupplierPhone
	}

	return nil
}

// isWholeNumber rejects fractional quantities such as 2.5 or "2.5", which
// integer conversion would otherwise truncate.
func isWholeNumber(v any) bool {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}
