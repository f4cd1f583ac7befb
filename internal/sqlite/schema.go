package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// SchemaVersion is the version stamped into PRAGMA user_version.
// Increment it when the tools table changes and extend upgrade.
const SchemaVersion = 1

// createTools is the DDL for the only table. Column names follow the
// established on-disk layout so existing inventory.db files stay readable.
const createTools = `CREATE TABLE IF NOT EXISTS tools (
    _id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    quantity INTEGER,
    supplier TEXT NOT NULL,
    phone_number TEXT NOT NULL
);`

// schemaDDL lists all CREATE statements in order.
var schemaDDL = []string{
	createTools,
}

// migrate brings db up to SchemaVersion and returns the resulting version.
func migrate(db *sql.DB) (int, error) {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	if current > SchemaVersion {
		return current, fmt.Errorf("schema version %d, supported %d: %w", current, SchemaVersion, types.ErrSchemaTooNew)
	}
	if current == SchemaVersion {
		return current, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	if current == 0 {
		for _, ddl := range schemaDDL {
			if _, err := tx.Exec(ddl); err != nil {
				return 0, fmt.Errorf("creating schema: %w", err)
			}
		}
	} else if err := upgrade(tx, current, SchemaVersion); err != nil {
		return 0, err
	}

	// PRAGMA does not accept bound parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return 0, fmt.Errorf("writing schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing schema: %w", err)
	}
	return SchemaVersion, nil
}

// upgrade moves an existing database from version from to version to.
// Version 1 is the first version, so there is nothing to do yet.
func upgrade(tx *sql.Tx, from, to int) error {
	return nil
}
