package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

func TestOpenSQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	// Every migrated table is usable.
	ctx := context.Background()
	if err := UpsertUser(ctx, db, 1, domain.UserProfile{Username: "u"}); err != nil {
		t.Fatalf("users table unusable: %v", err)
	}
	if _, err := AddFavorite(ctx, db, 1, domain.RecipeCard{ID: 2, Title: "T"}); err != nil {
		t.Fatalf("favorites table unusable: %v", err)
	}
	if err := IncrementStat(ctx, db, domain.StatTotalCommands); err != nil {
		t.Fatalf("stats table unusable: %v", err)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "deeper", "bot.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
