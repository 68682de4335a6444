package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"gamebase/backend/internal/hub"
	"gamebase/backend/internal/models"

	"gorm.io/gorm"
)

// Broadcaster receives roster events after a successful commit. *hub.Hub
// implements it.
type Broadcaster interface {
	Broadcast(invitationID uint, event hub.Event)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(uint, hub.Event) {}

// GameInput holds the editable fields of a game.
type GameInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Description string `json:"description"`
	MinPlayers  int    `json:"min_players" validate:"min=1"`
	MaxPlayers  int    `json:"max_players" validate:"min=1,gtefield=MinPlayers"`
	GameTime    string `json:"game_time" validate:"max=64"`
	BGGLink     string `json:"bgg_link" validate:"required,url,max=512"`
	CategoryIDs []uint `json:"category_ids"`
	MechanicIDs []uint `json:"mechanic_ids"`
}

func (in *GameInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Description = strings.TrimSpace(in.Description)
	in.GameTime = strings.TrimSpace(in.GameTime)
	in.BGGLink = strings.TrimSpace(in.BGGLink)
}

// EntryInput holds the editable fields of a category or mechanic.
type EntryInput struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description"`
}

// Entry is a category or mechanic as read from either catalog table.
type Entry struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Catalog manages games, categories and mechanics.
type Catalog struct {
	db     *gorm.DB
	events Broadcaster
}

// NewCatalog returns a Catalog. events may be nil.
func NewCatalog(db *gorm.DB, events Broadcaster) *Catalog {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &Catalog{db: db, events: events}
}

// region --- Games ---

func (c *Catalog) CreateGame(ctx context.Context, in GameInput) (*models.Game, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var game models.Game
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTitleFree(tx, in.Title, 0); err != nil {
			return err
		}
		categories, mechanics, err := loadTags(tx, in.CategoryIDs, in.MechanicIDs)
		if err != nil {
			return err
		}

		game = models.Game{
			Title:       in.Title,
			Author:      in.Author,
			Description: in.Description,
			MinPlayers:  in.MinPlayers,
			MaxPlayers:  in.MaxPlayers,
			GameTime:    in.GameTime,
			BGGLink:     in.BGGLink,
			Categories:  categories,
			Mechanics:   mechanics,
		}
		return translateDuplicate(tx.Create(&game).Error, "game %q already exists", in.Title)
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGame loads a game with its categories and mechanics.
func (c *Catalog) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := c.db.WithContext(ctx).
		Preload("Categories", orderedBy("name")).
		Preload("Mechanics", orderedBy("name")).
		First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGames returns every game, by title unless order says otherwise.
func (c *Catalog) ListGames(ctx context.Context, order Order) ([]models.Game, error) {
	orderBy, err := order.clause(ByTitle, "title", "author", "created_at", "id")
	if err != nil {
		return nil, err
	}

	var games []models.Game
	err = c.db.WithContext(ctx).Order(orderBy).Find(&games).Error
	return games, err
}

// SearchGames matches title substrings case-insensitively, ordered by title.
func (c *Catalog) SearchGames(ctx context.Context, title string, page, limit int) (*Page[models.Game], error) {
	query := c.db.WithContext(ctx).Model(&models.Game{})
	if title = strings.TrimSpace(title); title != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(title))+"%")
	}
	return Paginate[models.Game](query.Order("title"), page, limit)
}

// UpdateGame replaces a game's fields and its category and mechanic sets.
func (c *Catalog) UpdateGame(ctx context.Context, id uint, in GameInput) (*models.Game, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			return notFound(err, "game", id)
		}
		if err := ensureTitleFree(tx, in.Title, id); err != nil {
			return err
		}
		categories, mechanics, err := loadTags(tx, in.CategoryIDs, in.MechanicIDs)
		if err != nil {
			return err
		}

		err = tx.Model(&game).Updates(map[string]any{
			"title":       in.Title,
			"author":      in.Author,
			"description": in.Description,
			"min_players": in.MinPlayers,
			"max_players": in.MaxPlayers,
			"game_time":   in.GameTime,
			"bgg_link":    in.BGGLink,
		}).Error
		if err := translateDuplicate(err, "game %q already exists", in.Title); err != nil {
			return err
		}
		if err := tx.Model(&game).Association("Categories").Replace(categories); err != nil {
			return err
		}
		return tx.Model(&game).Association("Mechanics").Replace(mechanics)
	})
	if err != nil {
		return nil, err
	}
	return c.GetGame(ctx, id)
}

// DeleteGame removes a game from every collection and deletes the
// invitations hosting it together with their rosters.
func (c *Catalog) DeleteGame(ctx context.Context, id uint) error {
	var invitationIDs []uint
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			return notFound(err, "game", id)
		}

		if err := tx.Model(&models.GameInvitation{}).Where("game_id = ?", id).Pluck("id", &invitationIDs).Error; err != nil {
			return err
		}
		if len(invitationIDs) > 0 {
			if err := tx.Exec("DELETE FROM invitation_players WHERE game_invitation_id IN ?", invitationIDs).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", invitationIDs).Delete(&models.GameInvitation{}).Error; err != nil {
				return err
			}
		}

		for _, stmt := range []string{
			"DELETE FROM user_games WHERE game_id = ?",
			"DELETE FROM game_categories WHERE game_id = ?",
			"DELETE FROM game_mechanic_links WHERE game_id = ?",
		} {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&game).Error
	})
	if err != nil {
		return err
	}

	for _, invID := range invitationIDs {
		c.events.Broadcast(invID, hub.Event{
			Type:    hub.EventInvitationDeleted,
			Payload: RosterChange{InvitationID: invID, State: models.StateDeleted},
		})
	}
	slog.Info("game deleted", "game_id", id, "invitations_removed", len(invitationIDs))
	return nil
}

// endregion

// region --- Categories and mechanics ---

// ListEntries returns the categories or mechanics, by name unless order says
// otherwise.
func (c *Catalog) ListEntries(ctx context.Context, kind models.CatalogKind, order Order) ([]Entry, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "must be one of: category mechanic")
	}
	orderBy, err := order.clause(ByName, "name", "created_at", "id")
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	err = c.db.WithContext(ctx).Model(newCatalogEntry(kind, "", "")).Order(orderBy).Find(&entries).Error
	return entries, err
}

func (c *Catalog) GetEntry(ctx context.Context, kind models.CatalogKind, id uint) (*Entry, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "must be one of: category mechanic")
	}
	return getEntry(c.db.WithContext(ctx), kind, id)
}

// CreateEntry adds a category or mechanic directly, bypassing moderation.
func (c *Catalog) CreateEntry(ctx context.Context, actor Actor, kind models.CatalogKind, in EntryInput) (*Entry, error) {
	if err := c.checkEntryWrite(actor, kind, &in); err != nil {
		return nil, err
	}

	var id uint
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, kind, in.Name, 0); err != nil {
			return err
		}
		entry := newCatalogEntry(kind, in.Name, in.Description)
		if err := translateDuplicate(tx.Create(entry).Error, "%s %q already exists", kind, in.Name); err != nil {
			return err
		}
		id = entryID(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return getEntry(c.db.WithContext(ctx), kind, id)
}

func (c *Catalog) UpdateEntry(ctx context.Context, actor Actor, kind models.CatalogKind, id uint, in EntryInput) (*Entry, error) {
	if err := c.checkEntryWrite(actor, kind, &in); err != nil {
		return nil, err
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getEntry(tx, kind, id); err != nil {
			return err
		}
		if err := ensureNameFree(tx, kind, in.Name, id); err != nil {
			return err
		}
		err := tx.Model(newCatalogEntry(kind, "", "")).Where("id = ?", id).Updates(map[string]any{
			"name":        in.Name,
			"description": in.Description,
		}).Error
		return translateDuplicate(err, "%s %q already exists", kind, in.Name)
	})
	if err != nil {
		return nil, err
	}
	return getEntry(c.db.WithContext(ctx), kind, id)
}

// DeleteEntry removes a category or mechanic and detaches it from games.
func (c *Catalog) DeleteEntry(ctx context.Context, actor Actor, kind models.CatalogKind, id uint) error {
	if actor == nil || !actor.HasRole(models.RoleModerator) {
		return ErrForbidden
	}
	if !kind.Valid() {
		return invalid("kind", "must be one of: category mechanic")
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getEntry(tx, kind, id); err != nil {
			return err
		}
		stmt := "DELETE FROM game_categories WHERE category_id = ?"
		if kind == models.KindMechanic {
			stmt = "DELETE FROM game_mechanic_links WHERE game_mechanic_id = ?"
		}
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(newCatalogEntry(kind, "", ""), id).Error
	})
}

func (c *Catalog) checkEntryWrite(actor Actor, kind models.CatalogKind, in *EntryInput) error {
	if actor == nil || !actor.HasRole(models.RoleModerator) {
		return ErrForbidden
	}
	if !kind.Valid() {
		return invalid("kind", "must be one of: category mechanic")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return validateStruct(in)
}

// endregion

func getEntry(db *gorm.DB, kind models.CatalogKind, id uint) (*Entry, error) {
	var entry Entry
	err := db.Model(newCatalogEntry(kind, "", "")).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, notFound(err, string(kind), id)
	}
	return &entry, nil
}

func entryID(entry any) uint {
	switch e := entry.(type) {
	case *models.Category:
		return e.ID
	case *models.GameMechanic:
		return e.ID
	default:
		return 0
	}
}

func ensureTitleFree(tx *gorm.DB, title string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Game{}).Where("title = ? AND id <> ?", title, exceptID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflictf("game %q already exists", title)
	}
	return nil
}

func ensureNameFree(tx *gorm.DB, kind models.CatalogKind, name string, exceptID uint) error {
	var count int64
	err := tx.Model(newCatalogEntry(kind, "", "")).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return conflictf("%s %q already exists", kind, name)
	}
	return nil
}

// loadTags resolves category and mechanic ids; unknown ids are a validation
// error.
func loadTags(tx *gorm.DB, categoryIDs, mechanicIDs []uint) ([]*models.Category, []*models.GameMechanic, error) {
	categoryIDs = uniqueIDs(categoryIDs)
	mechanicIDs = uniqueIDs(mechanicIDs)

	categories := []*models.Category{}
	if len(categoryIDs) > 0 {
		if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return nil, nil, err
		}
		if len(categories) != len(categoryIDs) {
			return nil, nil, invalid("category_ids", "contains an unknown category")
		}
	}

	mechanics := []*models.GameMechanic{}
	if len(mechanicIDs) > 0 {
		if err := tx.Where("id IN ?", mechanicIDs).Find(&mechanics).Error; err != nil {
			return nil, nil, err
		}
		if len(mechanics) != len(mechanicIDs) {
			return nil, nil, invalid("mechanic_ids", "contains an unknown mechanic")
		}
	}
	return categories, mechanics, nil
}

func uniqueIDs(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func orderedBy(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column)
	}
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

func translateDuplicate(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflictf(format, args...)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
