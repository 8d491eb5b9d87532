package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

func TestUpsertUser_CreatesWithFirstSeen(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	start := time.Now().UTC().Add(-time.Minute)
	err := UpsertUser(context.Background(), db, 42, domain.UserProfile{
		Username:  "alice",
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var u domain.User
	if err := db.First(&u, "user_id = ?", 42).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if u.Username != "alice" || u.FirstName != "Alice" {
		t.Fatalf("unexpected profile: %+v", u)
	}
	if u.FirstSeen.Before(start) || u.LastActivity.Before(start) {
		t.Fatalf("timestamps look unset: first_seen=%v last_activity=%v", u.FirstSeen, u.LastActivity)
	}
	if u.IsBanned {
		t.Fatalf("new user must not be banned")
	}
}

func TestUpsertUser_RefreshesProfileKeepsFirstSeen(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	ctx := context.Background()
	if err := UpsertUser(ctx, db, 42, domain.UserProfile{Username: "alice"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	var created domain.User
	if err := db.First(&created, "user_id = ?", 42).Error; err != nil {
		t.Fatalf("load created: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if err := UpsertUser(ctx, db, 42, domain.UserProfile{Username: "alice2", LastName: "L"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var updated domain.User
	if err := db.First(&updated, "user_id = ?", 42).Error; err != nil {
		t.Fatalf("load updated: %v", err)
	}
	if updated.Username != "alice2" || updated.LastName != "L" {
		t.Fatalf("profile not refreshed: %+v", updated)
	}
	if !updated.FirstSeen.Equal(created.FirstSeen) {
		t.Fatalf("first_seen changed on upsert: %v -> %v", created.FirstSeen, updated.FirstSeen)
	}
	if !updated.LastActivity.After(created.LastActivity) {
		t.Fatalf("last_activity not advanced: %v -> %v", created.LastActivity, updated.LastActivity)
	}

	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single registry row, got %d", count)
	}
}

func TestUpsertUser_PreservesBanFlag(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	ctx := context.Background()
	if err := UpsertUser(ctx, db, 42, domain.UserProfile{}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := SetBanned(ctx, db, 42, true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if err := UpsertUser(ctx, db, 42, domain.UserProfile{Username: "back"}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	banned, err := IsBanned(ctx, db, 42)
	if err != nil {
		t.Fatalf("isbanned: %v", err)
	}
	if !banned {
		t.Fatalf("ban flag must survive profile refresh")
	}
}

func TestIsBanned_UnknownUserNotBanned(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	banned, err := IsBanned(context.Background(), db, 999)
	if err != nil {
		t.Fatalf("isbanned: %v", err)
	}
	if banned {
		t.Fatalf("unknown user must not be banned")
	}
}

func TestSetBanned_UnknownUserCreatesNothing(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	updated, err := SetBanned(context.Background(), db, 999, true)
	if err != nil {
		t.Fatalf("setbanned: %v", err)
	}
	if updated {
		t.Fatalf("ban of unknown user must report false")
	}

	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("ban must not create registry rows, got %d", count)
	}
}

func TestSetBanned_RoundTrip(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	ctx := context.Background()
	if err := UpsertUser(ctx, db, 7, domain.UserProfile{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := SetBanned(ctx, db, 7, true)
	if err != nil || !updated {
		t.Fatalf("ban: updated=%v err=%v", updated, err)
	}
	if banned, _ := IsBanned(ctx, db, 7); !banned {
		t.Fatalf("expected banned after SetBanned(true)")
	}

	updated, err = SetBanned(ctx, db, 7, false)
	if err != nil || !updated {
		t.Fatalf("unban: updated=%v err=%v", updated, err)
	}
	if banned, _ := IsBanned(ctx, db, 7); banned {
		t.Fatalf("expected not banned after SetBanned(false)")
	}
}

func TestCountUsers_TotalsAndBanned(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	ctx := context.Background()
	for _, id := range []int64{1, 2, 3} {
		if err := UpsertUser(ctx, db, id, domain.UserProfile{}); err != nil {
			t.Fatalf("seed %d: %v", id, err)
		}
	}
	if _, err := SetBanned(ctx, db, 2, true); err != nil {
		t.Fatalf("ban: %v", err)
	}

	total, banned, err := CountUsers(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 || banned != 1 {
		t.Fatalf("expected total=3 banned=1, got total=%d banned=%d", total, banned)
	}
}
