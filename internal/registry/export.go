package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vieduardo/presentes/internal/model"
)

// TemplateFilename is the download name for the example document.
const TemplateFilename = "template-presentes.json"

// Export serializes the in-memory catalog to an indented JSON document.
// It deliberately serializes what the page is showing, not a fresh fetch.
func Export(gifts []model.Gift) ([]byte, error) {
	if gifts == nil {
		gifts = []model.Gift{}
	}
	data, err := json.MarshalIndent(gifts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return data, nil
}

// ExportFilename returns the dated download name for a catalog export.
func ExportFilename(now time.Time) string {
	return "lista-presentes-" + now.Format("2006-01-02") + ".json"
}

// templateEntries is the fixed example set, one illustrative gift per
// category. Independent of the current catalog contents.
var templateEntries = []importEntry{
	{Name: "Jogo de Panelas", Description: "Conjunto completo com 5 panelas antiaderentes", ImageURL: "🍳", Category: model.CategoryCozinha},
	{Name: "Micro-ondas", Description: "Micro-ondas 30 litros com grill", ImageURL: "📡", Category: model.CategoryCozinha},
	{Name: "Sofá", Description: "Sofá 3 lugares cor bege", ImageURL: "🛋️", Category: model.CategorySala},
	{Name: "Jogo de Cama", Description: "Jogo de cama casal 100% algodão", ImageURL: "🛏️", Category: model.CategoryQuarto},
	{Name: "Toalhas de Banho", Description: "Kit com 4 toalhas felpudas", ImageURL: "🚿", Category: model.CategoryBanheiro},
	{Name: "Cesto de Roupa", Description: "Cesto organizador para lavanderia", ImageURL: "🧺", Category: model.CategoryLavanderia},
}

// Template returns the fixed example document used to seed an import file.
func Template() []byte {
	data, err := json.MarshalIndent(templateEntries, "", "  ")
	if err != nil {
		// The entries are static; this cannot fail at runtime.
		panic(err)
	}
	return data
}
