// Package domain defines the persistence models for favorites, users, and
// aggregate bot statistics. These types are mapped with GORM and form the
// core data layer of the recipe bot.
package domain

import "time"

// Favorite represents a recipe saved by a user. The (user_id, recipe_id)
// pair is unique: saving the same recipe twice is a no-op, enforced both by
// the repository and a database unique index.
//
// Fields:
//   - ID: auto-incrementing surrogate primary key.
//   - UserID: Telegram identifier of the owner; part of the unique pair.
//   - RecipeID: upstream catalog identifier; part of the unique pair.
//   - Title: human-readable recipe title (required, non-empty).
//   - Image / SourceURL: optional presentation metadata.
//   - CreatedAt: timestamp managed by GORM; doubles as storage order.
type Favorite struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id"    gorm:"not null;uniqueIndex:ux_fav_user_recipe,priority:1;index:idx_user_favs"`
	RecipeID  int64     `json:"recipe_id"  gorm:"not null;uniqueIndex:ux_fav_user_recipe,priority:2"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Image     string    `json:"image,omitempty"      gorm:"type:varchar(512)"`
	SourceURL string    `json:"source_url,omitempty" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// User is the registry record for every Telegram account the bot has seen.
// Rows are upserted on each interaction and never deleted; the ban flag is
// flipped only by explicit administrative action.
//
// Fields:
//   - UserID: Telegram user identifier, used directly as the primary key.
//   - Username / FirstName / LastName: mutable profile snapshot.
//   - IsBanned: gates all further interaction when true.
//   - FirstSeen: set on creation, never updated afterwards.
//   - LastActivity: refreshed on every observed interaction.
type User struct {
	UserID       int64     `json:"user_id"    gorm:"primaryKey;autoIncrement:false"`
	Username     string    `json:"username,omitempty"   gorm:"type:varchar(64)"`
	FirstName    string    `json:"first_name,omitempty" gorm:"type:varchar(128)"`
	LastName     string    `json:"last_name,omitempty"  gorm:"type:varchar(128)"`
	IsBanned     bool      `json:"is_banned"  gorm:"not null;default:false;index"`
	FirstSeen    time.Time `json:"first_seen"`
	LastActivity time.Time `json:"last_activity"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// BotStats is the singleton aggregate counter row. It is created lazily on
// the first increment; exactly one logical instance exists. Derived figures
// (total users, banned users, total favorites) are intentionally absent:
// they are computed from the users/favorites tables at read time.
type BotStats struct {
	ID                   uint      `json:"id"                     gorm:"primaryKey"`
	TotalCommands        int64     `json:"total_commands"         gorm:"not null;default:0"`
	RandomRecipeRequests int64     `json:"random_recipe_requests" gorm:"not null;default:0"`
	IngredientSearches   int64     `json:"ingredient_searches"    gorm:"not null;default:0"`
	FavoritesViews       int64     `json:"favorites_views"        gorm:"not null;default:0"`
	LastUpdated          time.Time `json:"last_updated"`
}

// TableName returns the database table name for BotStats.
func (BotStats) TableName() string { return "bot_stats" }

// StatsSnapshot is the read model returned by the statistics service: the
// raw counters plus figures derived from the other tables at read time.
type StatsSnapshot struct {
	TotalUsers           int64     `json:"total_users"`
	BannedUsers          int64     `json:"banned_users"`
	TotalFavorites       int64     `json:"total_favorites"`
	TotalCommands        int64     `json:"total_commands"`
	RandomRecipeRequests int64     `json:"random_recipe_requests"`
	IngredientSearches   int64     `json:"ingredient_searches"`
	FavoritesViews       int64     `json:"favorites_views"`
	LastUpdated          time.Time `json:"last_updated"`
}

// UserProfile carries the mutable profile fields observed on an incoming
// interaction, used by the user registry upsert.
type UserProfile struct {
	Username  string
	FirstName string
	LastName  string
}

// RecipeCard is the minimal recipe value exchanged between the
// conversational layer and the favorites store.
type RecipeCard struct {
	ID        int64
	Title     string
	Image     string
	SourceURL string
}
