package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vieduardo/presentes/internal/model"
)

// ErrGiftReserved is returned when a reservation targets a gift that is
// already reserved. The write is conditional, so two concurrent guests can
// never both claim the same gift.
var ErrGiftReserved = errors.New("gift already reserved")

// GiftDraft is the payload for creating a gift.
type GiftDraft struct {
	Name        string
	Description string
	ImageURL    string
	Category    string
	Reserved    bool
}

// giftSelect builds the SELECT column list against the resolved schema.
// Columns the table lacks are replaced with typed NULL/zero literals so
// every row scans the same way.
func giftSelect(cols *GiftColumns) string {
	sel := []string{
		"id",
		fmt.Sprintf(`"%s" AS name`, cols.Name),
		fmt.Sprintf(`"%s" AS description`, cols.Description),
	}

	optional := []struct {
		column  string
		missing string
	}{
		{"imageurl", `'' AS imageurl`},
		{"category", `NULL AS category`},
		{"reserved", `0 AS reserved`},
		{"reserved_by", `NULL AS reserved_by`},
		{"reserved_contact", `NULL AS reserved_contact`},
		{"reserved_message", `NULL AS reserved_message`},
		{"reserved_at", `NULL AS reserved_at`},
		{"created_at", `NULL AS created_at`},
		{"updated_at", `NULL AS updated_at`},
	}
	for _, o := range optional {
		if cols.Has(o.column) {
			sel = append(sel, o.column)
		} else {
			sel = append(sel, o.missing)
		}
	}

	return "SELECT " + strings.Join(sel, ", ") + " FROM gifts"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGift(row rowScanner) (*model.Gift, error) {
	g := &model.Gift{}
	var imageurl, category, by, contact, message sql.NullString
	var reservedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(&g.ID, &g.Name, &g.Description, &imageurl, &category, &g.Reserved,
		&by, &contact, &message, &reservedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	g.ImageURL = imageurl.String
	g.Category = model.NormalizeCategory(category.String)
	g.ReservedBy = by.String
	g.ReservedContact = contact.String
	g.ReservedMessage = message.String
	if reservedAt.Valid {
		t := reservedAt.Time
		g.ReservedAt = &t
	}
	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time
	return g, nil
}

// ListGifts returns the full catalog in storage order. Filtering and sorting
// are derived views over the returned slice, not query concerns.
func ListGifts(ctx context.Context, db *sql.DB, cols *GiftColumns) ([]model.Gift, error) {
	rows, err := db.QueryContext(ctx, giftSelect(cols)+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing gifts: %w", err)
	}
	defer rows.Close()

	var gifts []model.Gift
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning gift: %w", err)
		}
		gifts = append(gifts, *g)
	}
	return gifts, rows.Err()
}

// GetGift returns a gift by ID, or nil when it does not exist.
func GetGift(ctx context.Context, db *sql.DB, cols *GiftColumns, id int64) (*model.Gift, error) {
	g, err := scanGift(db.QueryRowContext(ctx, giftSelect(cols)+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting gift: %w", err)
	}
	return g, nil
}

// CreateGift inserts a new gift, building the payload from confirmed columns
// only. imageurl and reserved are carried verbatim whenever the table has
// them; the category is normalized before persisting.
func CreateGift(ctx context.Context, db *sql.DB, cols *GiftColumns, draft GiftDraft) (*model.Gift, error) {
	columns := []string{cols.Name, cols.Description}
	values := []any{draft.Name, draft.Description}

	if cols.Has("imageurl") {
		columns = append(columns, "imageurl")
		values = append(values, draft.ImageURL)
	}
	if cols.Has("category") {
		columns = append(columns, "category")
		values = append(values, model.NormalizeCategory(draft.Category))
	}
	if cols.Has("reserved") {
		columns = append(columns, "reserved")
		values = append(values, draft.Reserved)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}
	query := fmt.Sprintf(`INSERT INTO gifts (%s) VALUES (%s)`,
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", "),
	)

	result, err := db.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("creating gift: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting gift id: %w", err)
	}

	return GetGift(ctx, db, cols, id)
}

// UpdateGift updates a gift's fields, carrying the reservation metadata when
// present in the payload and confirmed in the schema.
func UpdateGift(ctx context.Context, db *sql.DB, cols *GiftColumns, gift model.Gift) (*model.Gift, error) {
	sets := []string{
		fmt.Sprintf(`"%s" = ?`, cols.Name),
		fmt.Sprintf(`"%s" = ?`, cols.Description),
	}
	args := []any{gift.Name, gift.Description}

	if cols.Has("imageurl") {
		sets = append(sets, "imageurl = ?")
		args = append(args, gift.ImageURL)
	}
	if cols.Has("category") {
		sets = append(sets, "category = ?")
		args = append(args, model.NormalizeCategory(gift.Category))
	}
	if cols.Has("reserved") {
		sets = append(sets, "reserved = ?")
		args = append(args, gift.Reserved)
	}
	if cols.Has("reserved_by") && gift.ReservedBy != "" {
		sets = append(sets, "reserved_by = ?")
		args = append(args, gift.ReservedBy)
	}
	if cols.Has("reserved_contact") && gift.ReservedContact != "" {
		sets = append(sets, "reserved_contact = ?")
		args = append(args, gift.ReservedContact)
	}
	if cols.Has("reserved_message") && gift.ReservedMessage != "" {
		sets = append(sets, "reserved_message = ?")
		args = append(args, gift.ReservedMessage)
	}
	if cols.Has("reserved_at") && gift.ReservedAt != nil {
		sets = append(sets, "reserved_at = ?")
		args = append(args, *gift.ReservedAt)
	}
	if cols.Has("updated_at") {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	}

	args = append(args, gift.ID)
	query := fmt.Sprintf(`UPDATE gifts SET %s WHERE id = ?`, strings.Join(sets, ", "))
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating gift: %w", err)
	}

	return GetGift(ctx, db, cols, gift.ID)
}

// DeleteGift hard-deletes a gift. Deletion is immediate and irreversible.
func DeleteGift(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM gifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting gift: %w", err)
	}
	return nil
}

// ReserveGift claims a gift for a guest. The write is conditional on the
// gift being unreserved; losing a concurrent race yields ErrGiftReserved.
// The reservation metadata fields are set together, atomically with the
// reserved flag.
func ReserveGift(ctx context.Context, db *sql.DB, cols *GiftColumns, id int64, name, contact, message string) (*model.Gift, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE gifts
		 SET reserved = 1, reserved_by = ?, reserved_contact = ?, reserved_message = ?, reserved_at = ?
		 WHERE id = ? AND reserved = 0`,
		name, contact, nullableString(message), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("reserving gift: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking reservation result: %w", err)
	}
	if affected == 0 {
		gift, err := GetGift(ctx, db, cols, id)
		if err != nil {
			return nil, err
		}
		if gift == nil {
			return nil, nil
		}
		return nil, ErrGiftReserved
	}

	return GetGift(ctx, db, cols, id)
}

// UnreserveGift clears a gift's reservation. All four reservation fields are
// reset together.
func UnreserveGift(ctx context.Context, db *sql.DB, cols *GiftColumns, id int64) (*model.Gift, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE gifts
		 SET reserved = 0, reserved_by = NULL, reserved_contact = NULL, reserved_message = NULL, reserved_at = NULL
		 WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("unreserving gift: %w", err)
	}
	return GetGift(ctx, db, cols, id)
}

// UnreserveAllGifts clears every reservation, scoped to reserved rows.
// Running it against an already-clean catalog affects zero rows and is not
// an error.
func UnreserveAllGifts(ctx context.Context, db *sql.DB) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE gifts
		 SET reserved = 0, reserved_by = NULL, reserved_contact = NULL, reserved_message = NULL, reserved_at = NULL
		 WHERE reserved = 1`,
	)
	if err != nil {
		return 0, fmt.Errorf("unreserving all gifts: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting unreserved gifts: %w", err)
	}
	return affected, nil
}

// CountGifts returns total and reserved counts.
func CountGifts(ctx context.Context, db *sql.DB) (total, reserved int, err error) {
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(reserved), 0) FROM gifts`,
	).Scan(&total, &reserved)
	if err != nil {
		return 0, 0, fmt.Errorf("counting gifts: %w", err)
	}
	return total, reserved, nil
}

// nullableString maps the empty string to NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
