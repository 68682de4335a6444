package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"gamebase/backend/internal/models"

	"gorm.io/gorm"
)

// Actor is whoever performs a privileged operation.
type Actor interface {
	HasRole(role models.Role) bool
}

// ProposalInput is a user submission for a new category or mechanic.
type ProposalInput struct {
	Kind        models.CatalogKind `json:"kind" validate:"required,oneof=category mechanic"`
	Name        string             `json:"name" validate:"required,max=64"`
	Description string             `json:"description"`
}

// Conflict explains why a single review decision could not be applied.
type Conflict struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult reports the outcome of ReviewBatch per proposal id.
type BatchResult struct {
	Promoted  []uint     `json:"promoted"`
	Rejected  []uint     `json:"rejected"`
	Ignored   []uint     `json:"ignored"`
	Conflicts []Conflict `json:"conflicts"`
}

// Moderation is the queue of pending category and mechanic proposals.
type Moderation struct {
	db *gorm.DB
}

func NewModeration(db *gorm.DB) *Moderation {
	return &Moderation{db: db}
}

// Submit stores a new pending proposal. Names are unique per kind across all
// statuses.
func (m *Moderation) Submit(ctx context.Context, in ProposalInput) (*models.Proposal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	db := m.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Proposal{}).
		Where("kind = ? AND name = ?", in.Kind, in.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, invalid("name", "has already been proposed")
	}

	proposal := &models.Proposal{
		Kind:        in.Kind,
		Name:        in.Name,
		Description: in.Description,
		Status:      models.StatusPending,
	}
	if err := db.Create(proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("name", "has already been proposed")
		}
		return nil, err
	}

	slog.Info("proposal submitted", "id", proposal.ID, "kind", proposal.Kind, "name", proposal.Name)
	return proposal, nil
}

// ListPending returns the pending proposals of a kind, by name unless order
// says otherwise.
func (m *Moderation) ListPending(ctx context.Context, kind models.CatalogKind, order Order) ([]models.Proposal, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "must be one of: category mechanic")
	}
	orderBy, err := order.clause(ByName, "name", "created_at", "id")
	if err != nil {
		return nil, err
	}

	var proposals []models.Proposal
	err = m.db.WithContext(ctx).
		Where("kind = ? AND status = ?", kind, models.StatusPending).
		Order(orderBy).
		Find(&proposals).Error
	return proposals, err
}

// ReviewBatch applies moderator decisions in ascending id order. Each decision
// commits on its own; decisions that cannot be applied are reported in
// BatchResult.Conflicts and leave their proposal untouched. When any decision
// conflicted the returned error wraps ErrConflict.
func (m *Moderation) ReviewBatch(ctx context.Context, actor Actor, kind models.CatalogKind, decisions map[uint]models.ProposalStatus) (*BatchResult, error) {
	if actor == nil || !actor.HasRole(models.RoleModerator) {
		return nil, ErrForbidden
	}
	if !kind.Valid() {
		return nil, invalid("kind", "must be one of: category mechanic")
	}

	ids := make([]uint, 0, len(decisions))
	for id := range decisions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := &BatchResult{
		Promoted:  []uint{},
		Rejected:  []uint{},
		Ignored:   []uint{},
		Conflicts: []Conflict{},
	}

	for _, id := range ids {
		var err error
		switch decisions[id] {
		case models.StatusAccepted:
			if err = m.promote(ctx, kind, id); err == nil {
				result.Promoted = append(result.Promoted, id)
			}
		case models.StatusRejected:
			if err = m.reject(ctx, kind, id); err == nil {
				result.Rejected = append(result.Rejected, id)
			}
		default:
			result.Ignored = append(result.Ignored, id)
		}

		if errors.Is(err, ErrConflict) {
			result.Conflicts = append(result.Conflicts, Conflict{ID: id, Reason: err.Error()})
			continue
		}
		if err != nil {
			return result, err
		}
	}

	slog.Info("proposals reviewed",
		"kind", kind,
		"promoted", len(result.Promoted),
		"rejected", len(result.Rejected),
		"ignored", len(result.Ignored),
		"conflicts", len(result.Conflicts),
	)

	if len(result.Conflicts) > 0 {
		return result, conflictf("%d proposal(s) could not be resolved", len(result.Conflicts))
	}
	return result, nil
}

// promote creates the canonical entry and deletes the proposal in one
// transaction.
func (m *Moderation) promote(ctx context.Context, kind models.CatalogKind, id uint) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proposal, err := lockProposal(tx, kind, id)
		if err != nil {
			return err
		}
		if proposal.Status != models.StatusPending {
			return conflictf("proposal %d is already %s", id, proposal.Status)
		}

		entry := newCatalogEntry(kind, proposal.Name, proposal.Description)

		var existing int64
		if err := tx.Model(entry).Where("name = ?", proposal.Name).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflictf("%s %q already exists", kind, proposal.Name)
		}

		if err := tx.Create(entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflictf("%s %q already exists", kind, proposal.Name)
			}
			return err
		}
		return tx.Unscoped().Delete(proposal).Error
	})
}

func (m *Moderation) reject(ctx context.Context, kind models.CatalogKind, id uint) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proposal, err := lockProposal(tx, kind, id)
		if err != nil {
			return err
		}
		if proposal.Status == models.StatusRejected {
			return nil
		}
		return tx.Model(proposal).Update("status", models.StatusRejected).Error
	})
}

// lockProposal loads a proposal for update. A missing proposal is a conflict:
// it was promoted or never existed in this queue.
func lockProposal(tx *gorm.DB, kind models.CatalogKind, id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	err := forUpdate(tx).
		Where("id = ? AND kind = ?", id, kind).
		First(&proposal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, conflictf("proposal %d is no longer pending", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load proposal %d: %w", id, err)
	}
	return &proposal, nil
}

// newCatalogEntry returns the canonical model for a kind.
func newCatalogEntry(kind models.CatalogKind, name, description string) any {
	if kind == models.KindMechanic {
		return &models.GameMechanic{Name: name, Description: description}
	}
	return &models.Category{Name: name, Description: description}
}
