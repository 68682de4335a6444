package models

import (
	"time"

	"gorm.io/gorm"
)

// InvitationState is derived from the roster size.
type InvitationState string

const (
	StateOpen    InvitationState = "open"
	StateFull    InvitationState = "full"
	StateDeleted InvitationState = "deleted"
)

// GameInvitation is a game night hosted by Owner. Players holds the joined
// roster; the owner is never part of it.
type GameInvitation struct {
	gorm.Model
	OwnerID   uint      `gorm:"not null;index"`
	GameID    uint      `gorm:"not null;index"`
	NoPlayers int       `gorm:"not null;default:1"`
	GameTime  time.Time `gorm:"not null;index"`
	GamePlace string    `gorm:"size:64;not null"`
	ExtraText string    `gorm:"size:510"`

	Owner   User   `gorm:"foreignKey:OwnerID"`
	Game    Game   `gorm:"foreignKey:GameID"`
	Players []User `gorm:"many2many:invitation_players;"`
}

// AvailablePlaces is the number of free seats given the loaded roster.
func (i *GameInvitation) AvailablePlaces() int {
	if free := i.NoPlayers - len(i.Players); free > 0 {
		return free
	}
	return 0
}

// State returns StateFull when no seats are left and StateOpen otherwise.
func (i *GameInvitation) State() InvitationState {
	if i.AvailablePlaces() == 0 {
		return StateFull
	}
	return StateOpen
}

// HasPlayer reports whether userID is on the loaded roster.
func (i *GameInvitation) HasPlayer(userID uint) bool {
	for _, p := range i.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}
