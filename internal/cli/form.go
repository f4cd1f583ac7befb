package cli

import (
	"errors"
	"math"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cast"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// editFields runs the interactive editor over f. Tests replace it.
var editFields = runToolForm

// runToolForm shows the tool editor. The checks mirror the provider's
// validation so mistakes are caught while typing; the provider still has
// the final word.
func runToolForm(f *toolFields, title string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Price").
				Value(&f.price).
				Validate(optionalNumber("price", false)),
			huh.NewInput().
				Title("Quantity").
				Value(&f.quantity).
				Validate(optionalNumber("quantity", true)),
			huh.NewInput().
				Title("Supplier").
				Value(&f.supplier).
				Validate(required("supplier")),
			huh.NewInput().
				Title("Supplier phone").
				Value(&f.phone).
				Validate(required("phone")),
		).Title(title),
	)
	return form.Run()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func optionalNumber(field string, whole bool) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		if whole {
			n, err := types.ToInt64(s)
			if err != nil || n < 0 {
				return errors.New(field + " must be a whole number of zero or more")
			}
			return nil
		}
		n, err := cast.ToFloat64E(s)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return errors.New(field + " must be a number of zero or more")
		}
		return nil
	}
}
