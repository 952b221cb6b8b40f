package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type payoutRequest struct {
	PayoutType  domain.PayoutKind `json:"payoutType"`
	CPAAmount   *string           `json:"cpaAmount"`
	FixedAmount *string           `json:"fixedAmount"`
}

func (p payoutRequest) toPayout() (domain.Payout, error) {
	return domain.ParsePayout(p.PayoutType, p.CPAAmount, p.FixedAmount)
}

type offerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	payoutRequest
}

func (o offerRequest) toInput() (domain.OfferInput, error) {
	payout, err := o.toPayout()
	if err != nil {
		return domain.OfferInput{}, err
	}
	in := domain.OfferInput{Title: o.Title, Description: o.Description, Payout: payout}
	return in, in.Validate()
}

type customPayoutRequest struct {
	InfluencerID string `json:"influencerId"`
	payoutRequest
}

type influencerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type payoutFields struct {
	PayoutType  domain.PayoutKind `json:"payoutType"`
	CPAAmount   *string           `json:"cpaAmount"`
	FixedAmount *string           `json:"fixedAmount"`
}

func newPayoutFields(p domain.Payout) payoutFields {
	out := payoutFields{PayoutType: p.Kind}
	if p.CPAAmount != nil {
		s := domain.FormatAmount(*p.CPAAmount)
		out.CPAAmount = &s
	}
	if p.FixedAmount != nil {
		s := domain.FormatAmount(*p.FixedAmount)
		out.FixedAmount = &s
	}
	return out
}

type offerResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	payoutFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newOfferResponse(o domain.Offer) offerResponse {
	return offerResponse{
		ID:           o.ID,
		Title:        o.Title,
		Description:  o.Description,
		payoutFields: newPayoutFields(o.BasePayout),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type resolvedOfferResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	payoutFields
	HasCustomPayout bool      `json:"hasCustomPayout"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func newResolvedOfferResponse(o domain.ResolvedOffer) resolvedOfferResponse {
	return resolvedOfferResponse{
		ID:              o.ID,
		Title:           o.Title,
		Description:     o.Description,
		payoutFields:    newPayoutFields(o.EffectivePayout),
		HasCustomPayout: o.HasCustomPayout,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type customPayoutResponse struct {
	ID           uuid.UUID `json:"id"`
	OfferID      uuid.UUID `json:"offerId"`
	InfluencerID uuid.UUID `json:"influencerId"`
	payoutFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCustomPayoutResponse(cp domain.CustomPayout) customPayoutResponse {
	return customPayoutResponse{
		ID:           cp.ID,
		OfferID:      cp.OfferID,
		InfluencerID: cp.InfluencerID,
		payoutFields: newPayoutFields(cp.Payout),
		CreatedAt:    cp.CreatedAt,
		UpdatedAt:    cp.UpdatedAt,
	}
}

type influencerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newInfluencerResponse(i domain.Influencer) influencerResponse {
	return influencerResponse{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body too large", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(chi.URLParam(r, name), name)
}

func parseUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s format", domain.ErrInvalidInput, name)
	}
	return id, nil
}
