package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(16)
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

// columnHeaders are the display names of the tools columns.
var columnHeaders = map[string]string{
	types.ColumnID:            "ID",
	types.ColumnName:          "Name",
	types.ColumnPrice:         "Price",
	types.ColumnQuantity:      "Quantity",
	types.ColumnSupplierName:  "Supplier",
	types.ColumnSupplierPhone: "Phone",
}

// renderTable writes rs as a bordered table. Numeric columns are right
// aligned.
func renderTable(w io.Writer, rs *types.RowSet) error {
	if rs.Len() == 0 {
		_, err := fmt.Fprintln(w, emptyStyle.Render("No tools. Add one with 'inventory create' or 'inventory seed'."))
		return err
	}

	headers := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		headers[i] = header(c)
	}

	rows := make([][]string, rs.Len())
	for r := range rows {
		rows[r] = make([]string, len(rs.Columns))
		for c, name := range rs.Columns {
			rows[r][c] = formatCell(name, rs.Value(r, name))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if isNumeric(rs.Columns[col]) {
				return numberStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// renderDetail writes one tool as labelled lines.
func renderDetail(w io.Writer, tool types.Tool) error {
	lines := []string{
		labelStyle.Render("ID") + cast.ToString(tool.ID),
		labelStyle.Render("Name") + tool.Name,
		labelStyle.Render("Price") + formatPrice(tool.Price),
		labelStyle.Render("Quantity") + formatQuantity(tool.Quantity),
		labelStyle.Render("Supplier") + tool.SupplierName,
		labelStyle.Render("Phone") + tool.SupplierPhone,
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeYAML writes v as YAML.
func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// rowsAsMaps converts a row set into one map per row keyed by column, for
// JSON output of arbitrary projections.
func rowsAsMaps(rs *types.RowSet) []map[string]any {
	out := make([]map[string]any, rs.Len())
	for r := range out {
		m := make(map[string]any, len(rs.Columns))
		for _, c := range rs.Columns {
			m[c] = rs.Value(r, c)
		}
		out[r] = m
	}
	return out
}

func header(column string) string {
	if h, ok := columnHeaders[column]; ok {
		return h
	}
	return column
}

func isNumeric(column string) bool {
	return column == types.ColumnID || column == types.ColumnPrice || column == types.ColumnQuantity
}

func formatCell(column string, v any) string {
	if v == nil {
		return ""
	}
	if column == types.ColumnPrice {
		return formatPrice(cast.ToFloat64(v))
	}
	return cast.ToString(v)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// formatQuantity renders a stored quantity; none reads as "".
func formatQuantity(q *int64) string {
	if q == nil {
		return ""
	}
	return cast.ToString(*q)
}
