package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type InfluencerService struct {
	store Store
}

func NewInfluencerService(store Store) *InfluencerService {
	return &InfluencerService{store: store}
}

func (s *InfluencerService) List(ctx context.Context) ([]domain.Influencer, error) {
	influencers, err := s.store.ListInfluencers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list influencers: %w", err)
	}
	return influencers, nil
}

func (s *InfluencerService) Get(ctx context.Context, id uuid.UUID) (*domain.Influencer, error) {
	return s.store.GetInfluencer(ctx, id)
}

func (s *InfluencerService) Create(ctx context.Context, in domain.InfluencerInput) (*domain.Influencer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	_, err := s.store.GetInfluencerByEmail(ctx, in.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInfluencerEmailTaken, in.Email)
	}
	if !errors.Is(err, domain.ErrInfluencerNotFound) {
		return nil, fmt.Errorf("get influencer by email: %w", err)
	}

	// The unique index still decides when two creates race.
	return s.store.CreateInfluencer(ctx, in)
}

// Delete removes the influencer and every custom payout scoped to them.
func (s *InfluencerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteInfluencer(ctx, id)
}

// Offers lists every offer with its payout resolved for the influencer.
// search filters by title before resolution.
func (s *InfluencerService) Offers(ctx context.Context, influencerID uuid.UUID, search string) ([]domain.ResolvedOffer, error) {
	if _, err := s.store.GetInfluencer(ctx, influencerID); err != nil {
		return nil, err
	}

	rows, err := s.store.ListOffersForInfluencer(ctx, influencerID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list offers for influencer: %w", err)
	}
	return ResolveRows(rows), nil
}

func (s *InfluencerService) FindByChatID(ctx context.Context, chatID int64) (*domain.Influencer, error) {
	return s.store.GetInfluencerByChatID(ctx, chatID)
}

// LinkChat binds a Telegram chat to the influencer registered under email.
func (s *InfluencerService) LinkChat(ctx context.Context, chatID int64, email string) (*domain.Influencer, error) {
	influencer, err := s.store.GetInfluencerByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return s.store.LinkInfluencerChat(ctx, influencer.ID, chatID)
}
