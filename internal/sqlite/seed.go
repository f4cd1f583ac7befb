// This file holds the sample data inserted by the seed command.
package sqlite

import "github.com/mesh-intelligence/inventory/pkg/types"

// SeedTools returns a fresh copy of the sample tools. The ids are zero; the
// caller inserts them through the provider so validation and notification
// apply. The phone number is kept exactly as the sample has always carried
// it.
func SeedTools() []types.Tool {
	return []types.Tool{
		{
			Name:          "Ax",
			Price:         19.84,
			Quantity:      types.Quantity(6),
			SupplierName:  "Supplier_A",
			SupplierPhone: "3313467...",
		},
	}
}
