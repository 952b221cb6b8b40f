package domain

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidPayout         = errors.New("invalid payout")
	ErrOfferNotFound         = errors.New("offer not found")
	ErrInfluencerNotFound    = errors.New("influencer not found")
	ErrInfluencerEmailTaken  = errors.New("influencer email already exists")
	ErrCustomPayoutNotFound  = errors.New("custom payout not found")
	ErrCustomPayoutConflict  = errors.New("custom payout already exists for this influencer and offer")
	ErrRedundantCustomPayout = errors.New("custom payout matches the base offer payout")
)
