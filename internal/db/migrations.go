package db

import (
	"database/sql"
	"fmt"
)

// giftColumnAliases maps legacy gift column names to their canonical names.
// Databases restored from the old hosted deployment were observed with these
// variants; they are renamed once here instead of being re-probed on every
// write.
var giftColumnAliases = map[string]string{
	"nome":      "name",
	"title":     "name",
	"titulo":    "name",
	"descricao": "description",
	"desc":      "description",
	"details":   "description",
	"image_url": "imageurl",
	"imageUrl":  "imageurl",
}

// giftColumnAdds lists canonical gift columns that older tables may lack,
// with the definition used to add them. created_at/updated_at are excluded:
// SQLite cannot add a column with a non-constant default, so their absence
// is tolerated at read time instead.
var giftColumnAdds = []struct {
	name string
	def  string
}{
	{"imageurl", `TEXT NOT NULL DEFAULT '🎁'`},
	{"category", `TEXT NOT NULL DEFAULT 'diversos'`},
	{"reserved", `INTEGER NOT NULL DEFAULT 0`},
	{"reserved_by", `TEXT`},
	{"reserved_contact", `TEXT`},
	{"reserved_message", `TEXT`},
	{"reserved_at", `DATETIME`},
}

// Migrate ensures the schema exists, renames legacy columns, and adds any
// canonical gift columns older tables lack. Safe to run on every startup.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}
	if err := renameLegacyGiftColumns(db); err != nil {
		return err
	}
	return addMissingGiftColumns(db)
}

// addMissingGiftColumns brings an older gifts table up to the canonical
// column set.
func addMissingGiftColumns(db *sql.DB) error {
	existing, err := tableColumns(db, "gifts")
	if err != nil {
		return err
	}

	for _, col := range giftColumnAdds {
		if existing[col.name] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE gifts ADD COLUMN "%s" %s`, col.name, col.def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding gift column %s: %w", col.name, err)
		}
	}
	return nil
}

// renameLegacyGiftColumns renames known alias columns on the gifts table to
// their canonical names. A rename is skipped when the canonical column
// already exists, so the migration is idempotent.
func renameLegacyGiftColumns(db *sql.DB) error {
	existing, err := tableColumns(db, "gifts")
	if err != nil {
		return err
	}

	for alias, canonical := range giftColumnAliases {
		if !existing[alias] || existing[canonical] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE gifts RENAME COLUMN "%s" TO "%s"`, alias, canonical)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("renaming gift column %s: %w", alias, err)
		}
		existing[canonical] = true
	}
	return nil
}

// tableColumns returns the set of column names of a table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info("%s")`, table))
	if err != nil {
		return nil, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
