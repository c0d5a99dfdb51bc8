package db

import "testing"

func TestMigrateRenamesLegacyColumns(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	// Table shape as restored from the old hosted deployment.
	_, err = database.Exec(`CREATE TABLE gifts (
		id INTEGER PRIMARY KEY,
		nome TEXT NOT NULL,
		descricao TEXT,
		imageurl TEXT,
		reserved INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	columns, err := tableColumns(database, "gifts")
	if err != nil {
		t.Fatalf("tableColumns: %v", err)
	}
	if !columns["name"] || !columns["description"] {
		t.Errorf("expected canonical columns after migration, got %v", columns)
	}
	if columns["nome"] || columns["descricao"] {
		t.Errorf("expected legacy columns to be renamed, got %v", columns)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := Migrate(database); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
