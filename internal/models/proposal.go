package models

import "gorm.io/gorm"

// ProposalStatus is the moderation state of a Proposal.
type ProposalStatus int

const (
	// StatusPending is the initial state of every submission.
	StatusPending ProposalStatus = 0

	// StatusAccepted is transient: an accepted proposal is promoted into the
	// catalog and its record removed in the same transaction.
	StatusAccepted ProposalStatus = 1

	// StatusRejected proposals are kept for history.
	StatusRejected ProposalStatus = 2
)

// Valid reports whether s is one of the three known states.
func (s ProposalStatus) Valid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

func (s ProposalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// CatalogKind selects which catalog a proposal targets.
type CatalogKind string

const (
	KindCategory CatalogKind = "category"
	KindMechanic CatalogKind = "mechanic"
)

// Valid reports whether k names a known catalog.
func (k CatalogKind) Valid() bool {
	return k == KindCategory || k == KindMechanic
}

// Proposal is a user-submitted category or mechanic awaiting moderation.
// Names are unique per kind regardless of status.
type Proposal struct {
	gorm.Model
	Kind        CatalogKind    `gorm:"size:16;not null;uniqueIndex:idx_proposals_kind_name"`
	Name        string         `gorm:"size:64;not null;uniqueIndex:idx_proposals_kind_name"`
	Description string
	Status      ProposalStatus `gorm:"not null;default:0;index"`
}
