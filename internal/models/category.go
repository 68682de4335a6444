package models

import "gorm.io/gorm"

// Category is an approved game category (e.g. "Family", "Wargame").
type Category struct {
	gorm.Model
	Name        string `gorm:"size:64;unique;not null"`
	Description string
}

// GameMechanic is an approved game mechanic (e.g. "Drafting", "Worker placement").
type GameMechanic struct {
	gorm.Model
	Name        string `gorm:"size:64;unique;not null"`
	Description string
}
