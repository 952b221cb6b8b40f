package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type OfferService struct {
	store    Store
	notifier Notifier
}

func NewOfferService(store Store, notifier Notifier) *OfferService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OfferService{store: store, notifier: notifier}
}

func (s *OfferService) List(ctx context.Context) ([]domain.Offer, error) {
	offers, err := s.store.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	return s.store.GetOffer(ctx, id)
}

func (s *OfferService) Create(ctx context.Context, in domain.OfferInput) (*domain.Offer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Payout = in.Payout.Normalized()

	offer, err := s.store.CreateOffer(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

// Update replaces title, description and base payout. Existing overrides are
// left alone; they keep shadowing the new base payout.
func (s *OfferService) Update(ctx context.Context, id uuid.UUID, in domain.OfferInput) (*domain.Offer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Payout = in.Payout.Normalized()

	return s.store.UpdateOffer(ctx, id, in)
}

// Delete removes the offer together with all of its custom payouts.
func (s *OfferService) Delete(ctx context.Context, id uuid.UUID) error {
	offer, err := s.store.DeleteOffer(ctx, id)
	if err != nil {
		return err
	}
	s.notifier.OfferDeleted(*offer)
	return nil
}
