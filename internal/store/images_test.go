package store

import (
	"context"
	"testing"

	"github.com/vieduardo/presentes/internal/db"
)

func TestSaveAndGetImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SaveImage(ctx, database, "gift-1-sofa.jpg", []byte("jpeg bytes"), "image/jpeg"); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	data, mime, err := GetImage(ctx, database, "gift-1-sofa.jpg")
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if string(data) != "jpeg bytes" || mime != "image/jpeg" {
		t.Errorf("unexpected blob %q / %q", data, mime)
	}
}

func TestSaveImageOverwrites(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SaveImage(ctx, database, "gift.jpg", []byte("v1"), "image/jpeg")
	if err := SaveImage(ctx, database, "gift.jpg", []byte("v2"), "image/png"); err != nil {
		t.Fatalf("overwrite SaveImage: %v", err)
	}

	data, mime, _ := GetImage(ctx, database, "gift.jpg")
	if string(data) != "v2" || mime != "image/png" {
		t.Errorf("expected overwritten blob, got %q / %q", data, mime)
	}
}

func TestGetImageMissing(t *testing.T) {
	database := db.NewTestDB(t)

	data, _, err := GetImage(context.Background(), database, "nope.jpg")
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if data != nil {
		t.Error("expected nil data for missing path")
	}
}
