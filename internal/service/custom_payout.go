package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type CustomPayoutService struct {
	store    Store
	notifier Notifier
}

func NewCustomPayoutService(store Store, notifier Notifier) *CustomPayoutService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CustomPayoutService{store: store, notifier: notifier}
}

// Create stores an override of the offer's base payout for one influencer.
// It rejects an override equal to the base payout with
// domain.ErrRedundantCustomPayout and a second override for the same pair
// with domain.ErrCustomPayoutConflict.
func (s *CustomPayoutService) Create(ctx context.Context, offerID, influencerID uuid.UUID, payout domain.Payout) (*domain.CustomPayout, error) {
	if err := domain.Validate(payout); err != nil {
		return nil, err
	}
	payout = payout.Normalized()

	offer, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	influencer, err := s.store.GetInfluencer(ctx, influencerID)
	if err != nil {
		return nil, err
	}

	_, err = s.store.GetCustomPayout(ctx, offerID, influencerID)
	if err == nil {
		return nil, domain.ErrCustomPayoutConflict
	}
	if !errors.Is(err, domain.ErrCustomPayoutNotFound) {
		return nil, fmt.Errorf("get custom payout: %w", err)
	}

	if IsRedundant(offer.BasePayout, payout) {
		return nil, domain.ErrRedundantCustomPayout
	}

	cp, err := s.store.InsertCustomPayout(ctx, offerID, influencerID, payout)
	if err != nil {
		if errors.Is(err, domain.ErrCustomPayoutConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("insert custom payout: %w", err)
	}

	s.notifier.CustomPayoutCreated(*offer, *influencer, *cp)
	return cp, nil
}

func (s *CustomPayoutService) Get(ctx context.Context, offerID, influencerID uuid.UUID) (*domain.CustomPayout, error) {
	return s.store.GetCustomPayout(ctx, offerID, influencerID)
}

func (s *CustomPayoutService) Delete(ctx context.Context, offerID, influencerID uuid.UUID) error {
	removed, err := s.store.DeleteCustomPayout(ctx, offerID, influencerID)
	if err != nil {
		return fmt.Errorf("delete custom payout: %w", err)
	}
	if !removed {
		return domain.ErrCustomPayoutNotFound
	}

	s.notifier.CustomPayoutDeleted(offerID, influencerID)
	return nil
}
