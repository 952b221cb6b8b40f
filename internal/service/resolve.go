package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

// Resolve returns the offer as seen by the influencer that owns cp. A nil cp
// means the influencer has no override and gets the base payout. An override
// replaces the base payout entirely; fields are never merged.
func Resolve(offer domain.Offer, cp *domain.CustomPayout) domain.ResolvedOffer {
	resolved := domain.ResolvedOffer{
		ID:              offer.ID,
		Title:           offer.Title,
		Description:     offer.Description,
		EffectivePayout: offer.BasePayout,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
	}
	if cp != nil {
		resolved.EffectivePayout = cp.Payout
		resolved.HasCustomPayout = true
	}
	return resolved
}

// ResolveMany resolves offer for influencerID given every known override of
// that offer keyed by influencer.
func ResolveMany(offer domain.Offer, byInfluencer map[uuid.UUID]domain.CustomPayout, influencerID uuid.UUID) domain.ResolvedOffer {
	if cp, ok := byInfluencer[influencerID]; ok {
		return Resolve(offer, &cp)
	}
	return Resolve(offer, nil)
}

// ResolveRows resolves every row of an offers-for-influencer join in order.
func ResolveRows(rows []domain.OfferWithCustomPayout) []domain.ResolvedOffer {
	resolved := make([]domain.ResolvedOffer, 0, len(rows))
	for _, row := range rows {
		resolved = append(resolved, Resolve(row.Offer, row.CustomPayout))
	}
	return resolved
}

// IsRedundant reports whether proposed would have no observable effect over
// base. Both payouts must already be valid.
func IsRedundant(base, proposed domain.Payout) bool {
	return domain.Equal(base.Normalized(), proposed.Normalized())
}

// MatchTitle is a case-insensitive substring match. An empty search matches
// every title.
func MatchTitle(title, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(search))
}

// FilterByTitle keeps the rows whose offer title matches search.
func FilterByTitle(rows []domain.OfferWithCustomPayout, search string) []domain.OfferWithCustomPayout {
	if search == "" {
		return rows
	}
	filtered := make([]domain.OfferWithCustomPayout, 0, len(rows))
	for _, row := range rows {
		if MatchTitle(row.Offer.Title, search) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
