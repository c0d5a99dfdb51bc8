package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveImage stores an uploaded image blob under the given path. Existing
// blobs at the same path are overwritten.
func SaveImage(ctx context.Context, db *sql.DB, path string, data []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO images (path, data, mime) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET data = excluded.data, mime = excluded.mime`,
		path, data, mime,
	)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// GetImage returns an image blob and its MIME type, or nil data when no blob
// is stored under the path.
func GetImage(ctx context.Context, db *sql.DB, path string) ([]byte, string, error) {
	var data []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT data, mime FROM images WHERE path = ?`, path,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting image: %w", err)
	}
	return data, mime, nil
}
