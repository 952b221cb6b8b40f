package domain

import (
	"time"

	"github.com/google/uuid"
)

// CustomPayout overrides an offer's base payout for a single influencer.
// At most one exists per (OfferID, InfluencerID).
type CustomPayout struct {
	ID           uuid.UUID
	OfferID      uuid.UUID
	InfluencerID uuid.UUID
	Payout       Payout
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
