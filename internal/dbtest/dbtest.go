// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gamebase/backend/internal/database"
	"gamebase/backend/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var counter atomic.Int64

// New returns a migrated in-memory database private to the test. The pool is
// capped at one connection so concurrent transactions are serialized the way
// row locks serialize them on PostgreSQL.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", counter.Add(1))
	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// User inserts a user with the given nickname and role. The password is
// "password123".
func User(t *testing.T, db *gorm.DB, nickname string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Email:        nickname + "@example.com",
		Nickname:     nickname,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %q: %v", nickname, err)
	}
	return user
}

// Game inserts a game supporting minPlayers..maxPlayers players.
func Game(t *testing.T, db *gorm.DB, title string, minPlayers, maxPlayers int) *models.Game {
	t.Helper()

	game := &models.Game{
		Title:      title,
		Author:     "Test Author",
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
		GameTime:   "60 min",
		BGGLink:    "https://boardgamegeek.com/boardgame/1",
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("create game %q: %v", title, err)
	}
	return game
}

// Own puts games into the user's collection.
func Own(t *testing.T, db *gorm.DB, user *models.User, games ...*models.Game) {
	t.Helper()

	if err := db.Model(user).Association("Games").Append(games); err != nil {
		t.Fatalf("add games to collection: %v", err)
	}
}
