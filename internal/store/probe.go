package store

import (
	"context"
	"database/sql"
)

// GiftColumns is the resolved column mapping of the gifts table. Databases
// restored from other deployments were observed with alias column names for
// the display fields, so the actual set is probed once at startup and write
// payloads are built only from confirmed columns.
type GiftColumns struct {
	// Name and Description hold the actual column names backing the
	// model's name and description fields.
	Name        string
	Description string

	present map[string]bool
}

// Alias precedence for the display columns, canonical name first.
var (
	nameAliases        = []string{"name", "nome", "title", "titulo"}
	descriptionAliases = []string{"description", "descricao", "desc", "details"}
)

// defaultGiftColumns is the hardcoded fallback used when the probe fails or
// the table is empty.
var defaultGiftColumns = []string{"id", "name", "description", "imageurl", "reserved"}

// DefaultGiftColumns returns the fallback column mapping.
func DefaultGiftColumns() *GiftColumns {
	return newGiftColumns(defaultGiftColumns)
}

// ResolveGiftColumns probes the gifts table with a defensive single-row read
// and resolves the column mapping. The result set describes its columns even
// when the table holds no rows, so an empty catalog still resolves fully; on
// any probe failure the hardcoded default column list is used instead, and
// writes built from it still succeed.
func ResolveGiftColumns(ctx context.Context, db *sql.DB) *GiftColumns {
	rows, err := db.QueryContext(ctx, `SELECT * FROM gifts LIMIT 1`)
	if err != nil {
		return DefaultGiftColumns()
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil || len(columns) == 0 {
		return DefaultGiftColumns()
	}

	return newGiftColumns(columns)
}

func newGiftColumns(columns []string) *GiftColumns {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	return &GiftColumns{
		Name:        firstPresent(present, nameAliases),
		Description: firstPresent(present, descriptionAliases),
		present:     present,
	}
}

// Has reports whether the gifts table carries the given column.
func (c *GiftColumns) Has(column string) bool {
	return c.present[column]
}

// firstPresent returns the first alias found in the column set, or the
// canonical (first) alias when none matched.
func firstPresent(present map[string]bool, aliases []string) string {
	for _, a := range aliases {
		if present[a] {
			return a
		}
	}
	return aliases[0]
}
