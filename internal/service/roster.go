package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gamebase/backend/internal/hub"
	"gamebase/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvitationInput holds the editable fields of a game invitation.
type InvitationInput struct {
	GameID    uint      `json:"game_id" validate:"required"`
	NoPlayers int       `json:"no_players" validate:"min=1"`
	GameTime  time.Time `json:"game_time"`
	GamePlace string    `json:"game_place" validate:"required,max=64"`
	ExtraText string    `json:"extra_text" validate:"max=510"`
}

func (in *InvitationInput) check() error {
	in.GamePlace = strings.TrimSpace(in.GamePlace)
	in.ExtraText = strings.TrimSpace(in.ExtraText)
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.GameTime.IsZero() {
		return invalid("game_time", "is required")
	}
	return nil
}

// RosterChange is the payload of every roster event.
type RosterChange struct {
	InvitationID    uint                   `json:"invitation_id"`
	UserID          uint                   `json:"user_id,omitempty"`
	AvailablePlaces int                    `json:"available_places"`
	State           models.InvitationState `json:"state"`
}

// Overview is a user's view of the invitations relevant to them, each list
// ordered by game time.
type Overview struct {
	Hosted []models.GameInvitation
	Open   []models.GameInvitation
	Joined []models.GameInvitation
}

// Roster manages game invitations and their capacity-bounded player lists.
type Roster struct {
	db     *gorm.DB
	events Broadcaster
}

// NewRoster returns a Roster. events may be nil.
func NewRoster(db *gorm.DB, events Broadcaster) *Roster {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &Roster{db: db, events: events}
}

// Create hosts a new invitation. The game must be in the owner's collection;
// the owner does not take a seat.
func (r *Roster) Create(ctx context.Context, ownerID uint, in InvitationInput) (*models.GameInvitation, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if err := ensureOwnsGame(db, ownerID, in.GameID); err != nil {
		return nil, err
	}

	inv := &models.GameInvitation{
		OwnerID:   ownerID,
		GameID:    in.GameID,
		NoPlayers: in.NoPlayers,
		GameTime:  in.GameTime,
		GamePlace: in.GamePlace,
		ExtraText: in.ExtraText,
	}
	if err := db.Create(inv).Error; err != nil {
		return nil, err
	}

	slog.Info("invitation created", "invitation_id", inv.ID, "owner_id", ownerID, "game_id", in.GameID)
	return r.Get(ctx, inv.ID)
}

// Get loads an invitation with its owner, game and players.
func (r *Roster) Get(ctx context.Context, id uint) (*models.GameInvitation, error) {
	var inv models.GameInvitation
	err := withRoster(r.db.WithContext(ctx)).First(&inv, id).Error
	if err != nil {
		return nil, notFound(err, "invitation", id)
	}
	return &inv, nil
}

// Join seats userID. The capacity check and the insert run under a row lock
// on the invitation so concurrent joins cannot overbook it.
func (r *Roster) Join(ctx context.Context, id, userID uint) (*models.GameInvitation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvitation(tx, id)
		if err != nil {
			return err
		}

		seated, err := countPlayers(tx, id)
		if err != nil {
			return err
		}
		if seated >= int64(inv.NoPlayers) {
			return ErrInvitationFull
		}
		if inv.OwnerID == userID {
			return ErrAlreadyJoined
		}
		joined, err := isPlayer(tx, id, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrAlreadyJoined
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err, "user", userID)
		}
		return tx.Model(inv).Association("Players").Append(&user)
	})
	if err != nil {
		return nil, err
	}
	return r.publish(ctx, id, userID, hub.EventPlayerJoined)
}

// Leave removes userID from the roster. Leaving twice is not an error.
func (r *Roster) Leave(ctx context.Context, id, userID uint) (*models.GameInvitation, error) {
	removed, err := r.unseat(ctx, id, userID, func(*models.GameInvitation) error { return nil })
	if err != nil {
		return nil, err
	}
	if !removed {
		return r.Get(ctx, id)
	}
	return r.publish(ctx, id, userID, hub.EventPlayerLeft)
}

// RemovePlayer lets the owner remove targetID from the roster. Removing an
// absent player is not an error.
func (r *Roster) RemovePlayer(ctx context.Context, id, actorID, targetID uint) (*models.GameInvitation, error) {
	removed, err := r.unseat(ctx, id, targetID, ownedBy(actorID))
	if err != nil {
		return nil, err
	}
	if !removed {
		return r.Get(ctx, id)
	}
	return r.publish(ctx, id, targetID, hub.EventPlayerRemoved)
}

// Edit updates an invitation. Capacity cannot drop below the players already
// seated.
func (r *Roster) Edit(ctx context.Context, id, actorID uint, in InvitationInput) (*models.GameInvitation, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvitation(tx, id)
		if err != nil {
			return err
		}
		if err := ownedBy(actorID)(inv); err != nil {
			return err
		}
		if err := ensureOwnsGame(tx, actorID, in.GameID); err != nil {
			return err
		}

		seated, err := countPlayers(tx, id)
		if err != nil {
			return err
		}
		if int64(in.NoPlayers) < seated {
			return invalid("no_players", "cannot be lower than the number of players already joined")
		}

		return tx.Model(inv).Updates(map[string]any{
			"game_id":    in.GameID,
			"no_players": in.NoPlayers,
			"game_time":  in.GameTime,
			"game_place": in.GamePlace,
			"extra_text": in.ExtraText,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.publish(ctx, id, 0, hub.EventInvitationUpdated)
}

// Delete removes the invitation and its roster. Only the owner may delete.
func (r *Roster) Delete(ctx context.Context, id, actorID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvitation(tx, id)
		if err != nil {
			return err
		}
		if err := ownedBy(actorID)(inv); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM invitation_players WHERE game_invitation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(inv).Error
	})
	if err != nil {
		return err
	}

	r.events.Broadcast(id, hub.Event{
		Type:    hub.EventInvitationDeleted,
		Payload: RosterChange{InvitationID: id, State: models.StateDeleted},
	})
	slog.Info("invitation deleted", "invitation_id", id, "actor_id", actorID)
	return nil
}

// AvailablePlaces returns the number of free seats, never negative.
func (r *Roster) AvailablePlaces(ctx context.Context, id uint) (int, error) {
	db := r.db.WithContext(ctx)

	var inv models.GameInvitation
	if err := db.Select("id", "no_players").First(&inv, id).Error; err != nil {
		return 0, notFound(err, "invitation", id)
	}
	seated, err := countPlayers(db, id)
	if err != nil {
		return 0, err
	}
	return max(inv.NoPlayers-int(seated), 0), nil
}

// Overview splits the invitations visible to userID into the ones they host,
// the ones open to them and the ones they joined.
func (r *Roster) Overview(ctx context.Context, userID uint) (*Overview, error) {
	db := r.db.WithContext(ctx)
	byTime := "game_invitations.game_time ASC, game_invitations.id ASC"

	var out Overview
	if err := withRoster(db).
		Where("owner_id = ?", userID).
		Order(byTime).
		Find(&out.Hosted).Error; err != nil {
		return nil, err
	}

	joinedIDs := db.Table("invitation_players").Select("game_invitation_id").Where("user_id = ?", userID)

	if err := withRoster(db).
		Where("owner_id <> ?", userID).
		Where("game_invitations.id NOT IN (?)", joinedIDs).
		Order(byTime).
		Find(&out.Open).Error; err != nil {
		return nil, err
	}

	if err := withRoster(db).
		Where("owner_id <> ?", userID).
		Where("game_invitations.id IN (?)", joinedIDs).
		Order(byTime).
		Find(&out.Joined).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// unseat deletes the roster row for userID after authorize approves the
// locked invitation. It reports whether a row was removed.
func (r *Roster) unseat(ctx context.Context, id, userID uint, authorize func(*models.GameInvitation) error) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvitation(tx, id)
		if err != nil {
			return err
		}
		if err := authorize(inv); err != nil {
			return err
		}
		res := tx.Exec("DELETE FROM invitation_players WHERE game_invitation_id = ? AND user_id = ?", id, userID)
		removed = res.RowsAffected > 0
		return res.Error
	})
	return removed, err
}

// publish reloads the invitation and broadcasts its new roster state.
func (r *Roster) publish(ctx context.Context, id, userID uint, eventType string) (*models.GameInvitation, error) {
	inv, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.events.Broadcast(id, hub.Event{
		Type: eventType,
		Payload: RosterChange{
			InvitationID:    id,
			UserID:          userID,
			AvailablePlaces: inv.AvailablePlaces(),
			State:           inv.State(),
		},
	})
	slog.Info("roster changed", "event", eventType, "invitation_id", id, "user_id", userID, "available_places", inv.AvailablePlaces())
	return inv, nil
}

func ownedBy(actorID uint) func(*models.GameInvitation) error {
	return func(inv *models.GameInvitation) error {
		if inv.OwnerID != actorID {
			return ErrForbidden
		}
		return nil
	}
}

func withRoster(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Game").
		Preload("Players", orderedBy("nickname"))
}

// forUpdate adds SELECT ... FOR UPDATE. The SQLite dialector drops the
// clause; writers are serialized there anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

func lockInvitation(tx *gorm.DB, id uint) (*models.GameInvitation, error) {
	var inv models.GameInvitation
	err := forUpdate(tx).First(&inv, id).Error
	if err != nil {
		return nil, notFound(err, "invitation", id)
	}
	return &inv, nil
}

func countPlayers(db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.Table("invitation_players").Where("game_invitation_id = ?", id).Count(&n).Error
	return n, err
}

func isPlayer(db *gorm.DB, id, userID uint) (bool, error) {
	var n int64
	err := db.Table("invitation_players").
		Where("game_invitation_id = ? AND user_id = ?", id, userID).
		Count(&n).Error
	return n > 0, err
}

func ensureOwnsGame(db *gorm.DB, userID, gameID uint) error {
	owned, err := ownsGame(db, userID, gameID)
	if err != nil {
		return err
	}
	if !owned {
		return invalid("game_id", "is not in your collection")
	}
	return nil
}

func ownsGame(db *gorm.DB, userID, gameID uint) (bool, error) {
	var n int64
	err := db.Table("user_games").Where("user_id = ? AND game_id = ?", userID, gameID).Count(&n).Error
	return n > 0, err
}
