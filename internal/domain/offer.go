package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Offer struct {
	ID          uuid.UUID
	Title       string
	Description string
	BasePayout  Payout
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferInput is the replaceable part of an offer, used for create and update.
type OfferInput struct {
	Title       string
	Description string
	Payout      Payout
}

// OfferWithCustomPayout is one row of the offers-for-influencer outer join.
// CustomPayout is nil when the influencer has no override for the offer.
type OfferWithCustomPayout struct {
	Offer        Offer
	CustomPayout *CustomPayout
}

// ResolvedOffer is an offer as seen by one influencer. It is derived on read
// and never stored.
type ResolvedOffer struct {
	ID              uuid.UUID
	Title           string
	Description     string
	EffectivePayout Payout
	HasCustomPayout bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const MaxTitleLen = 255

func (in OfferInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title must be %d characters or less", ErrInvalidInput, MaxTitleLen)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	return Validate(in.Payout)
}
