// This file implements the SQL operations on the tools table: query, insert,
// update, and delete. Selections and sort orders are SQL fragments supplied
// by the caller and are used verbatim; column names are always checked.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Query runs a SELECT on the tools table and materialises the result.
// An empty projection selects every column in table order. An empty
// selection matches every row and an empty sortOrder leaves the engine's
// order.
func (b *Backend) Query(projection []string, selection string, args []any, sortOrder string) ([]string, [][]any, error) {
	db, err := b.Readable()
	if err != nil {
		return nil, nil, err
	}

	columns, err := checkProjection(projection)
	if err != nil {
		return nil, nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(columns, ", "), types.TableName)
	if selection != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(selection)
	}
	if sortOrder != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(sortOrder)
	}

	b.logger.Debug("query", "sql", sb.String(), "args", len(args))

	rows, err := db.Query(sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying tools: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows, len(columns))
	if err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

// Insert adds one row built from values and returns its id. When the engine
// rejects the row it returns -1 and an error wrapping ErrNoResult.
func (b *Backend) Insert(values types.Values) (int64, error) {
	db, err := b.Writable()
	if err != nil {
		return -1, err
	}

	keys, args, err := bindValues(values)
	if err != nil {
		return -1, err
	}

	var query string
	if len(keys) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", types.TableName)
	} else {
		placeholders := make([]string, len(keys))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		query = fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			types.TableName,
			strings.Join(keys, ", "),
			strings.Join(placeholders, ", "),
		)
	}

	res, err := db.Exec(query, args...)
	if err != nil {
		b.logger.Debug("insert rejected", "error", err)
		return -1, fmt.Errorf("inserting tool: %w: %w", types.ErrNoResult, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("reading inserted id: %w: %w", types.ErrNoResult, err)
	}

	b.logger.Debug("inserted tool", "id", id)
	return id, nil
}

// Update sets the columns in values on every row matching selection and
// returns the number of rows changed. An empty values map changes nothing.
func (b *Backend) Update(values types.Values, selection string, args []any) (int64, error) {
	db, err := b.Writable()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}

	keys, setArgs, err := bindValues(values)
	if err != nil {
		return 0, err
	}

	assignments := make([]string, len(keys))
	for i, k := range keys {
		assignments[i] = k + " = ?"
	}

	query := fmt.Sprintf("UPDATE %s SET %s", types.TableName, strings.Join(assignments, ", "))
	if selection != "" {
		query += " WHERE " + selection
	}

	res, err := db.Exec(query, append(setArgs, args...)...)
	if err != nil {
		return 0, fmt.Errorf("updating tools: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}

	b.logger.Debug("updated tools", "rows", n)
	return n, nil
}

// Delete removes every row matching selection and returns the number
// removed. An empty selection removes all rows.
func (b *Backend) Delete(selection string, args []any) (int64, error) {
	db, err := b.Writable()
	if err != nil {
		return 0, err
	}

	query := "DELETE FROM " + types.TableName
	if selection != "" {
		query += " WHERE " + selection
	}

	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting tools: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}

	b.logger.Debug("deleted tools", "rows", n)
	return n, nil
}

// checkProjection returns the column list to select, rejecting names that
// are not columns of the tools table.
func checkProjection(projection []string) ([]string, error) {
	if len(projection) == 0 {
		return types.AllColumns, nil
	}
	for _, c := range projection {
		if !types.IsColumn(c) {
			return nil, fmt.Errorf("projection %q: %w", c, types.ErrUnknownColumn)
		}
	}
	return projection, nil
}

// bindValues returns the keys of values in sorted order and the matching
// bind arguments. Numeric columns are coerced when possible so a "19.84"
// string is stored as REAL and "010" as the integer 10; values that do not
// convert are passed through.
func bindValues(values types.Values) ([]string, []any, error) {
	keys := values.Keys()
	args := make([]any, len(keys))
	for i, k := range keys {
		if !types.IsWritableColumn(k) {
			return nil, nil, fmt.Errorf("field %q: %w", k, types.ErrUnknownColumn)
		}
		args[i] = bindValue(k, values[k])
	}
	return keys, args, nil
}

func bindValue(column string, v any) any {
	if v == nil {
		return nil
	}
	switch column {
	case types.ColumnPrice:
		if f, err := cast.ToFloat64E(v); err == nil {
			return f
		}
	case types.ColumnQuantity:
		if n, err := types.ToInt64(v); err == nil {
			return n
		}
	default:
		if s, err := cast.ToStringE(v); err == nil {
			return s
		}
	}
	return v
}

// scanRows reads every row into a slice of values. TEXT comes back as
// string, INTEGER as int64, REAL as float64, and NULL as nil.
func scanRows(rows *sql.Rows, width int) ([][]any, error) {
	var result [][]any
	for rows.Next() {
		dest := make([]any, width)
		ptrs := make([]any, width)
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning tool row: %w", err)
		}
		for i, v := range dest {
			if raw, ok := v.([]byte); ok {
				dest[i] = string(raw)
			}
		}
		result = append(result, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tool rows: %w", err)
	}
	return result, nil
}
