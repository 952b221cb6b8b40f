package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

// Store is the persistence the services run on. Lookups of missing records
// return the matching domain not-found error.
type Store interface {
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	CreateOffer(ctx context.Context, in domain.OfferInput) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, in domain.OfferInput) (*domain.Offer, error)
	DeleteOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error)

	ListInfluencers(ctx context.Context) ([]domain.Influencer, error)
	CountInfluencers(ctx context.Context) (int, error)
	GetInfluencer(ctx context.Context, id uuid.UUID) (*domain.Influencer, error)
	GetInfluencerByEmail(ctx context.Context, email string) (*domain.Influencer, error)
	GetInfluencerByChatID(ctx context.Context, chatID int64) (*domain.Influencer, error)
	CreateInfluencer(ctx context.Context, in domain.InfluencerInput) (*domain.Influencer, error)
	DeleteInfluencer(ctx context.Context, id uuid.UUID) error
	LinkInfluencerChat(ctx context.Context, id uuid.UUID, chatID int64) (*domain.Influencer, error)

	GetCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID) (*domain.CustomPayout, error)
	// InsertCustomPayout fails with domain.ErrCustomPayoutConflict when the
	// pair already has an override.
	InsertCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID, payout domain.Payout) (*domain.CustomPayout, error)
	DeleteCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID) (bool, error)

	// ListOffersForInfluencer returns every offer whose title matches search,
	// each joined with the influencer's override if one exists, oldest first.
	ListOffersForInfluencer(ctx context.Context, influencerID uuid.UUID, search string) ([]domain.OfferWithCustomPayout, error)
}

// Notifier receives payout events for the operator log.
type Notifier interface {
	CustomPayoutCreated(offer domain.Offer, influencer domain.Influencer, cp domain.CustomPayout)
	CustomPayoutDeleted(offerID, influencerID uuid.UUID)
	OfferDeleted(offer domain.Offer)
}

type NopNotifier struct{}

func (NopNotifier) CustomPayoutCreated(domain.Offer, domain.Influencer, domain.CustomPayout) {}
func (NopNotifier) CustomPayoutDeleted(uuid.UUID, uuid.UUID)                                 {}
func (NopNotifier) OfferDeleted(domain.Offer)                                                {}
