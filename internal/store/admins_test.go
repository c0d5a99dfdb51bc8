package store

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vieduardo/presentes/internal/db"
)

func TestCreateAndVerifyAdmin(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.DefaultCost)
	admin, err := CreateAdmin(ctx, database, "admin", string(hash))
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", admin.Username)
	}

	got, ok, err := VerifyAdmin(ctx, database, "admin", "segredo")
	if err != nil {
		t.Fatalf("VerifyAdmin: %v", err)
	}
	if !ok || got == nil {
		t.Fatal("expected credentials to verify")
	}

	_, ok, err = VerifyAdmin(ctx, database, "admin", "errado")
	if err != nil {
		t.Fatalf("VerifyAdmin wrong password: %v", err)
	}
	if ok {
		t.Error("wrong password must not verify")
	}

	_, ok, err = VerifyAdmin(ctx, database, "ninguem", "segredo")
	if err != nil {
		t.Fatalf("VerifyAdmin unknown user: %v", err)
	}
	if ok {
		t.Error("unknown user must not verify")
	}
}

func TestUpdateAdminPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("velha"), bcrypt.DefaultCost)
	admin, _ := CreateAdmin(ctx, database, "admin", string(hash))

	newHash, _ := bcrypt.GenerateFromPassword([]byte("nova"), bcrypt.DefaultCost)
	if err := UpdateAdminPassword(ctx, database, admin.ID, string(newHash)); err != nil {
		t.Fatalf("UpdateAdminPassword: %v", err)
	}

	if _, ok, _ := VerifyAdmin(ctx, database, "admin", "velha"); ok {
		t.Error("old password must no longer verify")
	}
	if _, ok, _ := VerifyAdmin(ctx, database, "admin", "nova"); !ok {
		t.Error("new password must verify")
	}
}
