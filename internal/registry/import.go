// Package registry implements bulk import and export of the gift catalog.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vieduardo/presentes/internal/model"
	"github.com/vieduardo/presentes/internal/store"
)

// DefaultImageURL is the generic gift glyph applied when an imported entry
// carries no image.
const DefaultImageURL = "🎁"

// ImportResult summarizes one import run. len(Errors) always equals
// Total - Success.
type ImportResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// importEntry is one element of the uploaded JSON array. Both historical
// spellings of the image field are accepted.
type importEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageurl"`
	ImageURLAlt string `json:"imageUrl,omitempty"`
	Category    string `json:"category"`
}

// Import ingests a JSON array of gift entries. Elements are processed
// sequentially and independently: a failing element is recorded under its
// 1-based index and the run continues, so error indices stay aligned with
// input order. Successfully created gifts are returned in creation order.
// A payload that is not a JSON array short-circuits with a single error and
// Total 0. Failures never surface as an error value; they are aggregated in
// the result.
func Import(ctx context.Context, db *sql.DB, cols *store.GiftColumns, data []byte) (*ImportResult, []model.Gift) {
	var entries []importEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return &ImportResult{
			Total:  0,
			Errors: []string{"o arquivo JSON deve conter um array de presentes"},
		}, nil
	}

	result := &ImportResult{Total: len(entries), Errors: []string{}}
	var created []model.Gift

	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		description := strings.TrimSpace(entry.Description)
		if name == "" || description == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Item %d: nome e descrição são obrigatórios", i+1))
			continue
		}

		imageurl := entry.ImageURL
		if imageurl == "" {
			imageurl = entry.ImageURLAlt
		}
		if imageurl == "" {
			imageurl = DefaultImageURL
		}

		gift, err := store.CreateGift(ctx, db, cols, store.GiftDraft{
			Name:        name,
			Description: description,
			ImageURL:    imageurl,
			Category:    model.NormalizeCategory(entry.Category),
		})
		if err != nil || gift == nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Item %d: falha ao salvar no banco de dados", i+1))
			continue
		}

		result.Success++
		created = append(created, *gift)
	}

	return result, created
}
