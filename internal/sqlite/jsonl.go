// This file provides JSONL backup of the tools table: one JSON object per
// line, written in id order and read back inside a single transaction.
package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// ExportJSONL writes every tool to w as one JSON object per line, ordered by
// id. It returns the number of tools written.
func (b *Backend) ExportJSONL(w io.Writer) (int, error) {
	_, rows, err := b.Query(types.AllColumns, "", nil, types.ColumnID+" ASC")
	if err != nil {
		return 0, fmt.Errorf("reading tools for export: %w", err)
	}

	rs := types.NewRowSet(types.AllColumns, rows)
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, tool := range rs.Tools() {
		if err := enc.Encode(tool); err != nil {
			return 0, fmt.Errorf("encoding tool %d: %w", tool.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flushing export: %w", err)
	}
	return rs.Len(), nil
}

// ExportFile writes the JSONL backup to path atomically using the temp-file,
// fsync, rename pattern.
func (b *Backend) ExportFile(path string) (int, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := b.ExportJSONL(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}

// toolRecord is one decoded import line. Fields missing from the line stay
// nil so they are not written, rather than arriving as zero values.
type toolRecord struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Quantity      *int64   `json:"quantity"`
	SupplierName  *string  `json:"supplier_name"`
	SupplierPhone *string  `json:"supplier_phone"`
}

func (r toolRecord) values() types.Values {
	values := types.Values{}
	if r.Name != nil {
		values[types.ColumnName] = *r.Name
	}
	if r.Price != nil {
		values[types.ColumnPrice] = *r.Price
	}
	if r.Quantity != nil {
		values[types.ColumnQuantity] = *r.Quantity
	}
	if r.SupplierName != nil {
		values[types.ColumnSupplierName] = *r.SupplierName
	}
	if r.SupplierPhone != nil {
		values[types.ColumnSupplierPhone] = *r.SupplierPhone
	}
	return values
}

// ImportJSONL inserts the tools read from r. Loading is transactional: all
// accepted lines commit together or none do. Blank lines are ignored.
// Each record is passed to check before it is written; malformed lines,
// records check rejects, and records the engine rejects are skipped and
// counted. A nil check accepts every record. Ids in the input are not
// reused; every tool gets a fresh id.
func (b *Backend) ImportJSONL(r io.Reader, check func(types.Values) error) (imported, skipped int, err error) {
	db, err := b.Writable()
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types.WritableColumns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		types.TableName,
		strings.Join(types.WritableColumns, ", "),
		placeholders,
	))
	if err != nil {
		return 0, 0, fmt.Errorf("preparing import insert: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var rec toolRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			b.logger.Debug("skipping malformed line", "line", line, "error", err)
			skipped++
			continue
		}
		values := rec.values()
		if check != nil {
			if err := check(values); err != nil {
				b.logger.Debug("skipping rejected tool", "line", line, "error", err)
				skipped++
				continue
			}
		}
		args := make([]any, len(types.WritableColumns))
		for i, c := range types.WritableColumns {
			args[i] = values[c]
		}
		if _, err := stmt.Exec(args...); err != nil {
			b.logger.Debug("skipping tool the store rejected", "line", line, "error", err)
			skipped++
			continue
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("scanning import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing import: %w", err)
	}

	b.logger.Info("imported tools", "imported", imported, "skipped", skipped)
	return imported, skipped, nil
}
