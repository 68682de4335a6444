package handler

import (
	"context"
	"time"

	"gamebase/backend/internal/database"
	"gamebase/backend/internal/hub"
	"gamebase/backend/internal/service"
)

// PreviewLookup finds the preview image of an external link. Lookups are
// best effort and return "" on failure.
type PreviewLookup interface {
	ImageURL(ctx context.Context, link string) string
}

// TokenRevoker invalidates a token id until it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Optional collaborators wired by main. Both may stay nil.
var (
	Previews    PreviewLookup
	Revocations TokenRevoker
)

func catalogService() *service.Catalog {
	return service.NewCatalog(database.DB, hub.GlobalHub)
}

func moderationService() *service.Moderation {
	return service.NewModeration(database.DB)
}

func rosterService() *service.Roster {
	return service.NewRoster(database.DB, hub.GlobalHub)
}

func collectionService() *service.Collection {
	return service.NewCollection(database.DB)
}

func userService() *service.Users {
	return service.NewUsers(database.DB)
}
