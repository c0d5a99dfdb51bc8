package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/vieduardo/presentes/internal/db"
)

// legacyTestDB builds a gifts table with alias column names and one row, so
// that the probe has something to inspect. Migrations are deliberately not
// run: this simulates a remote table the service cannot reshape.
func legacyTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE gifts (
		id INTEGER PRIMARY KEY,
		titulo TEXT NOT NULL,
		descricao TEXT,
		imageurl TEXT,
		reserved INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}
	_, err = database.Exec(`INSERT INTO gifts (titulo, descricao, imageurl) VALUES ('Panela', 'Panela de pressão', '🍳')`)
	if err != nil {
		t.Fatalf("seeding legacy table: %v", err)
	}

	return database
}

func TestResolveGiftColumnsAliases(t *testing.T) {
	database := legacyTestDB(t)
	ctx := context.Background()

	cols := ResolveGiftColumns(ctx, database)
	if cols.Name != "titulo" {
		t.Errorf("expected name column 'titulo', got %q", cols.Name)
	}
	if cols.Description != "descricao" {
		t.Errorf("expected description column 'descricao', got %q", cols.Description)
	}
	if !cols.Has("imageurl") || !cols.Has("reserved") {
		t.Error("expected imageurl and reserved to be present")
	}
	if cols.Has("category") {
		t.Error("legacy table has no category column")
	}
}

func TestLegacyColumnsRoundTrip(t *testing.T) {
	database := legacyTestDB(t)
	ctx := context.Background()
	cols := ResolveGiftColumns(ctx, database)

	created, err := CreateGift(ctx, database, cols, GiftDraft{
		Name:        "Sofá",
		Description: "3 lugares",
		ImageURL:    "🛋️",
		Category:    "sala",
	})
	if err != nil {
		t.Fatalf("CreateGift against legacy columns: %v", err)
	}
	if created.Name != "Sofá" || created.Description != "3 lugares" {
		t.Errorf("expected aliased fields to round-trip, got %+v", created)
	}
	// Category column does not exist; the model defaults it.
	if created.Category != "diversos" {
		t.Errorf("expected category fallback 'diversos', got %q", created.Category)
	}

	gifts, err := ListGifts(ctx, database, cols)
	if err != nil {
		t.Fatalf("ListGifts: %v", err)
	}
	if len(gifts) != 2 {
		t.Fatalf("expected 2 gifts, got %d", len(gifts))
	}
}

func TestResolveGiftColumnsProbeFailure(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	// No gifts table at all: the probe fails and the defaults apply.
	cols := ResolveGiftColumns(context.Background(), database)
	if cols.Name != "name" || cols.Description != "description" {
		t.Errorf("expected default mapping on probe failure, got %q/%q", cols.Name, cols.Description)
	}
	if !cols.Has("id") || !cols.Has("imageurl") || !cols.Has("reserved") {
		t.Error("expected default column list to be present")
	}
}

func TestResolveGiftColumnsEmptyTable(t *testing.T) {
	database := db.NewTestDB(t)

	// A fresh catalog has no rows, but the result set still describes the
	// canonical columns.
	cols := ResolveGiftColumns(context.Background(), database)
	if cols.Name != "name" || cols.Description != "description" {
		t.Errorf("expected canonical mapping, got %q/%q", cols.Name, cols.Description)
	}
	if !cols.Has("category") || !cols.Has("reserved_by") {
		t.Error("expected canonical columns to be resolved on an empty table")
	}
}
