package registry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vieduardo/presentes/internal/model"
)

func TestExportRoundTrip(t *testing.T) {
	gifts := []model.Gift{
		{ID: 1, Name: "Panela", Description: "Pressão", Category: "cozinha", ImageURL: "🍳"},
		{ID: 2, Name: "Sofá", Description: "3 lugares", Category: "sala", Reserved: true},
	}

	data, err := Export(gifts)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded []model.Gift
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Name != "Sofá" || !decoded[1].Reserved {
		t.Errorf("unexpected export contents: %+v", decoded)
	}
}

func TestExportEmptyCatalog(t *testing.T) {
	data, err := Export(nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array document, got %s", data)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC)
	if got := ExportFilename(now); got != "lista-presentes-2025-09-01.json" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestTemplateSpansCategories(t *testing.T) {
	var entries []importEntry
	if err := json.Unmarshal(Template(), &entries); err != nil {
		t.Fatalf("decoding template: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("expected 6 template entries, got %d", len(entries))
	}

	seen := map[string]bool{}
	for _, e := range entries {
		if e.Name == "" || e.Description == "" {
			t.Errorf("template entry missing required fields: %+v", e)
		}
		seen[e.Category] = true
	}
	for _, category := range []string{"cozinha", "sala", "quarto", "banheiro", "lavanderia"} {
		if !seen[category] {
			t.Errorf("template missing category %q", category)
		}
	}
}
