package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/vieduardo/presentes/internal/db"
	"github.com/vieduardo/presentes/internal/store"
)

func TestImportIsolatesFailures(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	cols := store.ResolveGiftColumns(ctx, database)

	payload := []byte(`[
		{"name": "Panela", "description": "Panela de pressão", "category": "cozinha"},
		{"name": "Sem descrição"},
		{"name": "Sofá", "description": "3 lugares", "imageurl": "🛋️", "category": "sala"}
	]`)

	result, created := Import(ctx, database, cols, payload)
	if result.Total != 3 || result.Success != 2 {
		t.Fatalf("expected total 3 / success 2, got %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Item 2") {
		t.Fatalf("expected one error referencing item 2, got %v", result.Errors)
	}
	if len(result.Errors) != result.Total-result.Success {
		t.Errorf("errors length must equal total - success")
	}

	if len(created) != 2 {
		t.Fatalf("expected 2 created gifts, got %d", len(created))
	}
	if created[0].Name != "Panela" || created[1].Name != "Sofá" {
		t.Errorf("expected items 1 and 3 in creation order, got %v", created)
	}

	gifts, _ := store.ListGifts(ctx, database, cols)
	if len(gifts) != 2 {
		t.Errorf("expected 2 gifts persisted, got %d", len(gifts))
	}
}

func TestImportDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	cols := store.ResolveGiftColumns(ctx, database)

	payload := []byte(`[{"name": "Enfeite", "description": "Enfeite de mesa"}]`)
	result, created := Import(ctx, database, cols, payload)
	if result.Success != 1 {
		t.Fatalf("expected success, got %+v", result)
	}
	if created[0].ImageURL != DefaultImageURL {
		t.Errorf("expected default glyph, got %q", created[0].ImageURL)
	}
	if created[0].Category != "diversos" {
		t.Errorf("expected default category, got %q", created[0].Category)
	}
}

func TestImportAcceptsLegacyImageField(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	cols := store.ResolveGiftColumns(ctx, database)

	payload := []byte(`[{"name": "Abajur", "description": "Abajur de cabeceira", "imageUrl": "💡"}]`)
	_, created := Import(ctx, database, cols, payload)
	if len(created) != 1 || created[0].ImageURL != "💡" {
		t.Fatalf("expected legacy imageUrl spelling to be honored, got %v", created)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	cols := store.ResolveGiftColumns(ctx, database)

	result, created := Import(ctx, database, cols, []byte(`{"name": "não é array"}`))
	if result.Total != 0 || result.Success != 0 {
		t.Fatalf("expected short-circuit, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected single error, got %v", result.Errors)
	}
	if created != nil {
		t.Error("expected no created gifts")
	}

	gifts, _ := store.ListGifts(ctx, database, cols)
	if len(gifts) != 0 {
		t.Errorf("expected nothing persisted, got %d gifts", len(gifts))
	}
}

func TestImportTrimsFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	cols := store.ResolveGiftColumns(ctx, database)

	payload := []byte(`[{"name": "  Cama  ", "description": "  Casal  "}]`)
	_, created := Import(ctx, database, cols, payload)
	if created[0].Name != "Cama" || created[0].Description != "Casal" {
		t.Errorf("expected trimmed fields, got %+v", created[0])
	}
}
