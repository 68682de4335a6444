package models

import "gorm.io/gorm"

// Game represents a board game in the catalog.
type Game struct {
	gorm.Model
	Title       string `gorm:"size:255;unique;not null"`
	Author      string `gorm:"size:255;not null"`
	Description string
	MinPlayers  int    `gorm:"not null;default:1"`
	MaxPlayers  int    `gorm:"not null;default:1"`
	GameTime    string `gorm:"size:64"`
	BGGLink     string `gorm:"size:512"`

	Categories []*Category     `gorm:"many2many:game_categories;"`
	Mechanics  []*GameMechanic `gorm:"many2many:game_mechanic_links;"`
}

// Supports reports whether the game can be played by n players.
func (g *Game) Supports(n int) bool {
	return g.MinPlayers <= n && n <= g.MaxPlayers
}
