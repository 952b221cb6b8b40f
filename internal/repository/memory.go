package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
)

var _ service.Store = (*MemoryStore)(nil)

type pairKey struct {
	offerID      uuid.UUID
	influencerID uuid.UUID
}

// MemoryStore is an in-process service.Store with the same uniqueness and
// cascade rules as the PostgreSQL schema. Records are kept in insertion
// order.
type MemoryStore struct {
	mu            sync.Mutex
	now           func() time.Time
	offers        []domain.Offer
	influencers   []domain.Influencer
	customPayouts map[pairKey]domain.CustomPayout
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:           time.Now,
		customPayouts: make(map[pairKey]domain.CustomPayout),
	}
}

func (s *MemoryStore) offerIndex(id uuid.UUID) int {
	for i := range s.offers {
		if s.offers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) influencerIndex(match func(domain.Influencer) bool) int {
	for i := range s.influencers {
		if match(s.influencers[i]) {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) ListOffers(_ context.Context) ([]domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Offer{}, s.offers...), nil
}

func (s *MemoryStore) GetOffer(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.offerIndex(id)
	if i < 0 {
		return nil, domain.ErrOfferNotFound
	}
	o := s.offers[i]
	return &o, nil
}

func (s *MemoryStore) CreateOffer(_ context.Context, in domain.OfferInput) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	o := domain.Offer{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		BasePayout:  in.Payout.Normalized(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.offers = append(s.offers, o)
	return &o, nil
}

func (s *MemoryStore) UpdateOffer(_ context.Context, id uuid.UUID, in domain.OfferInput) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.offerIndex(id)
	if i < 0 {
		return nil, domain.ErrOfferNotFound
	}
	s.offers[i].Title = in.Title
	s.offers[i].Description = in.Description
	s.offers[i].BasePayout = in.Payout.Normalized()
	s.offers[i].UpdatedAt = s.now()
	o := s.offers[i]
	return &o, nil
}

func (s *MemoryStore) DeleteOffer(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.offerIndex(id)
	if i < 0 {
		return nil, domain.ErrOfferNotFound
	}
	o := s.offers[i]
	s.offers = append(s.offers[:i], s.offers[i+1:]...)
	for k := range s.customPayouts {
		if k.offerID == id {
			delete(s.customPayouts, k)
		}
	}
	return &o, nil
}

func (s *MemoryStore) ListInfluencers(_ context.Context) ([]domain.Influencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Influencer{}, s.influencers...), nil
}

func (s *MemoryStore) CountInfluencers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.influencers), nil
}

func (s *MemoryStore) getInfluencer(match func(domain.Influencer) bool) (*domain.Influencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.influencerIndex(match)
	if i < 0 {
		return nil, domain.ErrInfluencerNotFound
	}
	inf := s.influencers[i]
	return &inf, nil
}

func (s *MemoryStore) GetInfluencer(_ context.Context, id uuid.UUID) (*domain.Influencer, error) {
	return s.getInfluencer(func(i domain.Influencer) bool { return i.ID == id })
}

func (s *MemoryStore) GetInfluencerByEmail(_ context.Context, email string) (*domain.Influencer, error) {
	return s.getInfluencer(func(i domain.Influencer) bool { return i.Email == email })
}

func (s *MemoryStore) GetInfluencerByChatID(_ context.Context, chatID int64) (*domain.Influencer, error) {
	return s.getInfluencer(func(i domain.Influencer) bool {
		return i.TelegramChatID != nil && *i.TelegramChatID == chatID
	})
}

func (s *MemoryStore) CreateInfluencer(_ context.Context, in domain.InfluencerInput) (*domain.Influencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.influencerIndex(func(i domain.Influencer) bool { return i.Email == in.Email }) >= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInfluencerEmailTaken, in.Email)
	}
	now := s.now()
	inf := domain.Influencer{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.influencers = append(s.influencers, inf)
	return &inf, nil
}

func (s *MemoryStore) DeleteInfluencer(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.influencerIndex(func(inf domain.Influencer) bool { return inf.ID == id })
	if i < 0 {
		return domain.ErrInfluencerNotFound
	}
	s.influencers = append(s.influencers[:i], s.influencers[i+1:]...)
	for k := range s.customPayouts {
		if k.influencerID == id {
			delete(s.customPayouts, k)
		}
	}
	return nil
}

func (s *MemoryStore) LinkInfluencerChat(_ context.Context, id uuid.UUID, chatID int64) (*domain.Influencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.influencerIndex(func(inf domain.Influencer) bool { return inf.ID == id })
	if i < 0 {
		return nil, domain.ErrInfluencerNotFound
	}
	now := s.now()
	for j := range s.influencers {
		if j != i && s.influencers[j].TelegramChatID != nil && *s.influencers[j].TelegramChatID == chatID {
			s.influencers[j].TelegramChatID = nil
			s.influencers[j].UpdatedAt = now
		}
	}
	s.influencers[i].TelegramChatID = &chatID
	s.influencers[i].UpdatedAt = now
	inf := s.influencers[i]
	return &inf, nil
}

func (s *MemoryStore) GetCustomPayout(_ context.Context, offerID, influencerID uuid.UUID) (*domain.CustomPayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.customPayouts[pairKey{offerID, influencerID}]
	if !ok {
		return nil, domain.ErrCustomPayoutNotFound
	}
	return &cp, nil
}

func (s *MemoryStore) InsertCustomPayout(_ context.Context, offerID, influencerID uuid.UUID, payout domain.Payout) (*domain.CustomPayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offerIndex(offerID) < 0 {
		return nil, domain.ErrOfferNotFound
	}
	if s.influencerIndex(func(i domain.Influencer) bool { return i.ID == influencerID }) < 0 {
		return nil, domain.ErrInfluencerNotFound
	}
	key := pairKey{offerID, influencerID}
	if _, exists := s.customPayouts[key]; exists {
		return nil, domain.ErrCustomPayoutConflict
	}
	now := s.now()
	cp := domain.CustomPayout{
		ID:           uuid.New(),
		OfferID:      offerID,
		InfluencerID: influencerID,
		Payout:       payout.Normalized(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.customPayouts[key] = cp
	return &cp, nil
}

func (s *MemoryStore) DeleteCustomPayout(_ context.Context, offerID, influencerID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{offerID, influencerID}
	if _, ok := s.customPayouts[key]; !ok {
		return false, nil
	}
	delete(s.customPayouts, key)
	return true, nil
}

func (s *MemoryStore) ListOffersForInfluencer(_ context.Context, influencerID uuid.UUID, search string) ([]domain.OfferWithCustomPayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]domain.OfferWithCustomPayout, 0, len(s.offers))
	for _, o := range s.offers {
		row := domain.OfferWithCustomPayout{Offer: o}
		if cp, ok := s.customPayouts[pairKey{o.ID, influencerID}]; ok {
			row.CustomPayout = &cp
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Offer.CreatedAt.Before(rows[j].Offer.CreatedAt)
	})
	return service.FilterByTitle(rows, search), nil
}
