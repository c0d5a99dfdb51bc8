package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vieduardo/presentes/internal/model"
)

// CreateAdmin creates a new admin account with an already-hashed password.
func CreateAdmin(ctx context.Context, db *sql.DB, username, passwordHash string) (*model.Admin, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}

	return GetAdmin(ctx, db, id)
}

// GetAdmin returns an admin by ID.
func GetAdmin(ctx context.Context, db *sql.DB, id int64) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admins WHERE id = ?`, id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	return a, nil
}

// GetAdminByUsername returns an admin by username.
func GetAdminByUsername(ctx context.Context, db *sql.DB, username string) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = ?`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin by username: %w", err)
	}
	return a, nil
}

// UpdateAdminPassword updates an admin's password hash.
func UpdateAdminPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating admin password: %w", err)
	}
	return nil
}

// VerifyAdmin checks a username/password pair against the stored bcrypt
// hash. Unknown usernames and wrong passwords both report false without
// distinguishing the two.
func VerifyAdmin(ctx context.Context, db *sql.DB, username, password string) (*model.Admin, bool, error) {
	admin, err := GetAdminByUsername(ctx, db, username)
	if err != nil {
		return nil, false, err
	}
	if admin == nil {
		return nil, false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, false, nil
	}
	return admin, true, nil
}
