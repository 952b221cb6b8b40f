package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type seedOffer struct {
	key         string
	title       string
	description string
	kind        domain.PayoutKind
	cpa, fixed  string
}

type seedCustomPayout struct {
	offer, influencer string
	kind              domain.PayoutKind
	cpa, fixed        string
}

var seedInfluencers = []struct {
	key string
	in  domain.InfluencerInput
}{
	{"alice", domain.InfluencerInput{Name: "Alice Johnson", Email: "alice@example.com"}},
	{"bob", domain.InfluencerInput{Name: "Bob Smith", Email: "bob@example.com"}},
	{"charlie", domain.InfluencerInput{Name: "Charlie Davis", Email: "charlie@example.com"}},
}

var seedOffers = []seedOffer{
	{"summer", "Summer Fashion Campaign", "Promote our new summer collection across your social channels.", domain.PayoutKindCPA, "25.00", ""},
	{"tech", "Tech Gadget Review", "Create an honest review video for our latest smart home device.", domain.PayoutKindFixed, "", "500.00"},
	{"fitness", "Fitness App Launch", "Drive app downloads through your fitness and wellness content.", domain.PayoutKindCPAFixed, "10.00", "200.00"},
	{"travel", "Travel Vlog Sponsorship", "Feature our travel gear in your next adventure vlog.", domain.PayoutKindFixed, "", "750.00"},
	{"gaming", "Gaming Peripherals Promo", "Showcase our new gaming keyboard and mouse in a livestream.", domain.PayoutKindCPA, "15.00", ""},
}

var seedCustomPayouts = []seedCustomPayout{
	{"summer", "alice", domain.PayoutKindFixed, "", "1000.00"},
	{"fitness", "bob", domain.PayoutKindCPA, "50.00", ""},
}

// Seed loads the demo data set. It does nothing when any influencer exists.
func Seed(ctx context.Context, store Store) error {
	count, err := store.CountInfluencers(ctx)
	if err != nil {
		return fmt.Errorf("count influencers: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	influencerIDs := make(map[string]uuid.UUID, len(seedInfluencers))
	for _, si := range seedInfluencers {
		inf, err := store.CreateInfluencer(ctx, si.in)
		if err != nil {
			return fmt.Errorf("seed influencer %s: %w", si.in.Email, err)
		}
		influencerIDs[si.key] = inf.ID
	}

	offerIDs := make(map[string]uuid.UUID, len(seedOffers))
	for _, so := range seedOffers {
		payout, err := domain.NewPayout(so.kind, so.cpa, so.fixed)
		if err != nil {
			return fmt.Errorf("seed offer %s: %w", so.title, err)
		}
		offer, err := store.CreateOffer(ctx, domain.OfferInput{
			Title:       so.title,
			Description: so.description,
			Payout:      payout,
		})
		if err != nil {
			return fmt.Errorf("seed offer %s: %w", so.title, err)
		}
		offerIDs[so.key] = offer.ID
	}

	for _, sc := range seedCustomPayouts {
		payout, err := domain.NewPayout(sc.kind, sc.cpa, sc.fixed)
		if err != nil {
			return fmt.Errorf("seed custom payout %s/%s: %w", sc.offer, sc.influencer, err)
		}
		if _, err := store.InsertCustomPayout(ctx, offerIDs[sc.offer], influencerIDs[sc.influencer], payout); err != nil {
			return fmt.Errorf("seed custom payout %s/%s: %w", sc.offer, sc.influencer, err)
		}
	}

	slog.Info("database seeded",
		"influencers", len(seedInfluencers),
		"offers", len(seedOffers),
		"custom_payouts", len(seedCustomPayouts),
	)
	return nil
}
