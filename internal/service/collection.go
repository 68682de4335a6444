package service

import (
	"context"
	"math/rand/v2"

	"gamebase/backend/internal/models"

	"gorm.io/gorm"
)

// Collection manages the games each user owns.
type Collection struct {
	db   *gorm.DB
	intn func(n int) int
}

// NewCollection returns a Collection drawing lucky shots from math/rand/v2.
func NewCollection(db *gorm.DB) *Collection {
	return &Collection{db: db, intn: rand.IntN}
}

// WithRandom replaces the random source used by LuckyShot. intn must return
// a value in [0, n).
func (c *Collection) WithRandom(intn func(n int) int) *Collection {
	return &Collection{db: c.db, intn: intn}
}

// Add puts a game into the user's collection. Adding it again is a no-op.
func (c *Collection) Add(ctx context.Context, userID, gameID uint) error {
	db := c.db.WithContext(ctx)
	user, game, err := loadUserAndGame(db, userID, gameID)
	if err != nil {
		return err
	}

	owned, err := ownsGame(db, userID, gameID)
	if err != nil || owned {
		return err
	}
	return db.Model(user).Association("Games").Append(game)
}

// Remove takes a game out of the user's collection. Removing a game that is
// not there is a no-op.
func (c *Collection) Remove(ctx context.Context, userID, gameID uint) error {
	db := c.db.WithContext(ctx)
	user, game, err := loadUserAndGame(db, userID, gameID)
	if err != nil {
		return err
	}
	return db.Model(user).Association("Games").Delete(game)
}

// List returns the user's games ordered by title.
func (c *Collection) List(ctx context.Context, userID uint) ([]models.Game, error) {
	games := []models.Game{}
	err := owned(c.db.WithContext(ctx), userID).Order("games.title").Find(&games).Error
	return games, err
}

// Has reports whether the game is in the user's collection.
func (c *Collection) Has(ctx context.Context, userID, gameID uint) (bool, error) {
	return ownsGame(c.db.WithContext(ctx), userID, gameID)
}

// Count returns the size of the user's collection.
func (c *Collection) Count(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Table("user_games").Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// LuckyShot draws uniformly among the user's games playable by players
// people. It returns nil when none qualifies.
func (c *Collection) LuckyShot(ctx context.Context, userID uint, players int) (*models.Game, error) {
	if players < 1 {
		return nil, invalid("players", "must be at least 1")
	}

	var eligible []models.Game
	err := owned(c.db.WithContext(ctx), userID).
		Where("games.min_players <= ? AND games.max_players >= ?", players, players).
		Order("games.id").
		Find(&eligible).Error
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	return &eligible[c.intn(len(eligible))], nil
}

func owned(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Game{}).
		Joins("JOIN user_games ON user_games.game_id = games.id").
		Where("user_games.user_id = ?", userID)
}

func loadUserAndGame(db *gorm.DB, userID, gameID uint) (*models.User, *models.Game, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, nil, notFound(err, "user", userID)
	}
	var game models.Game
	if err := db.First(&game, gameID).Error; err != nil {
		return nil, nil, notFound(err, "game", gameID)
	}
	return &user, &game, nil
}
