package db

import (
	"fmt"
)

// itemsTable creates the items table. The id column type differs per
// dialect so that Postgres can still assign ids when none is supplied.
const itemsTable = `
CREATE TABLE IF NOT EXISTS items (
    id       %s,
    name     TEXT,
    price    FLOAT,
    is_offer BOOLEAN DEFAULT FALSE
)`

var itemsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS ix_items_id ON items (id)`,
	`CREATE INDEX IF NOT EXISTS ix_items_name ON items (name)`,
}

func schema(d Dialect) []string {
	idColumn := "INTEGER PRIMARY KEY"
	if d == Postgres {
		idColumn = "INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	return append([]string{fmt.Sprintf(itemsTable, idColumn)}, itemsIndexes...)
}

// EnsureSchema creates the items table and its indexes if they don't
// already exist.
func EnsureSchema(db *DB) error {
	for i, stmt := range schema(db.Dialect) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
