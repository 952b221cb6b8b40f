package handler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedOffers(n int) []domain.ResolvedOffer {
	amount := decimal.RequireFromString("25")
	offers := make([]domain.ResolvedOffer, n)
	for i := range offers {
		offers[i] = domain.ResolvedOffer{
			ID:              uuid.New(),
			Title:           fmt.Sprintf("Offer %d", i+1),
			Description:     "desc",
			EffectivePayout: domain.Payout{Kind: domain.PayoutKindCPA, CPAAmount: &amount},
		}
	}
	return offers
}

func TestBuildOffersPage_Empty(t *testing.T) {
	t.Parallel()

	text, kb := buildOffersPage(nil, "", 0)
	assert.Equal(t, "No offers available yet.", text)
	assert.Nil(t, kb)

	text, kb = buildOffersPage(nil, "winter_sale", 0)
	assert.Contains(t, text, `winter\_sale`)
	assert.Nil(t, kb)
}

func TestBuildOffersPage_SinglePage(t *testing.T) {
	t.Parallel()

	text, kb := buildOffersPage(resolvedOffers(2), "", 0)
	assert.Contains(t, text, "*Your offers* (2)")
	assert.Contains(t, text, "Offer 1")
	assert.Contains(t, text, "Offer 2")
	assert.Nil(t, kb)
}

func TestBuildOffersPage_Paginates(t *testing.T) {
	t.Parallel()

	offers := resolvedOffers(config.OffersPerPage*2 + 1)

	text, kb := buildOffersPage(offers, "offer", 1)
	require.NotNil(t, kb)
	assert.Contains(t, text, fmt.Sprintf("Offer %d", config.OffersPerPage+1))
	assert.NotContains(t, text, "Offer 1\n")

	row := kb.InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, "offers_page_0:offer", row[0].CallbackData)
	assert.Equal(t, "2/3", row[1].Text)
	assert.Equal(t, "offers_page_2:offer", row[2].CallbackData)

	// Out of range pages clamp to the last one.
	text, kb = buildOffersPage(offers, "", 99)
	require.NotNil(t, kb)
	assert.Contains(t, text, fmt.Sprintf("Offer %d", len(offers)))
	assert.Len(t, kb.InlineKeyboard[0], 2)
}

func TestBuildOffersPage_CallbackDataFits(t *testing.T) {
	t.Parallel()

	// The longest accepted search survives the round trip unchanged.
	search := strings.Repeat("ü", maxSearchBytes/2)
	offers := resolvedOffers(config.OffersPerPage*3 + 1)

	_, kb := buildOffersPage(offers, search, 1)
	require.NotNil(t, kb)

	for _, btn := range kb.InlineKeyboard[0] {
		assert.LessOrEqual(t, len(btn.CallbackData), maxCallbackData)
		if btn.CallbackData == "cur" {
			continue
		}
		_, got, ok := parseOffersPageData(btn.CallbackData)
		require.True(t, ok)
		assert.Equal(t, search, got)
	}
}

func TestParseOffersPageData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data       string
		wantPage   int
		wantSearch string
		wantOK     bool
	}{
		{"offers_page_2:", 2, "", true},
		{"offers_page_0:tech gadget", 0, "tech gadget", true},
		{"offers_page_1:a:b", 1, "a:b", true},
		{"offers_page_x:", 0, "", false},
		{"offers_page_-1:", 0, "", false},
		{"other_1:", 0, "", false},
	}

	for _, tt := range tests {
		page, search, ok := parseOffersPageData(tt.data)
		assert.Equal(t, tt.wantOK, ok, tt.data)
		if tt.wantOK {
			assert.Equal(t, tt.wantPage, page, tt.data)
			assert.Equal(t, tt.wantSearch, search, tt.data)
		}
	}
}

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alice@example.com", commandArgs("/link  alice@example.com "))
	assert.Equal(t, "", commandArgs("/offers"))
	assert.Equal(t, "tech gadget", commandArgs("/offers tech gadget"))
}

func TestFormatInfluencerList(t *testing.T) {
	t.Parallel()

	chatID := int64(1)
	text := formatInfluencerList([]domain.Influencer{
		{Name: "Alice", Email: "alice@example.com", TelegramChatID: &chatID},
		{Name: "Bob_B", Email: "bob@example.com"},
	})
	assert.Contains(t, text, "(2)")
	assert.Contains(t, text, "Alice, alice@example.com (linked)")
	assert.Contains(t, text, `Bob\_B, bob@example.com (not linked)`)

	assert.Equal(t, "No influencers registered.", formatInfluencerList(nil))
}

func TestMatchCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"/offers", true},
		{"/offers tech", true},
		{"/offers@offerdesk_bot tech", true},
		{"  /offers", true},
		{"/offersfoo", false},
		{"/offers_all", false},
		{"/link", false},
		{"offers", false},
		{"", false},
	}

	match := matchCommand("/offers")
	for _, tt := range tests {
		update := &models.Update{Message: &models.Message{Text: tt.text}}
		assert.Equal(t, tt.want, match(update), "%q", tt.text)
	}

	assert.False(t, match(&models.Update{}))
	assert.True(t, matchCommand("/link")(&models.Update{Message: &models.Message{Text: "/link a@b.co"}}))
	assert.False(t, matchCommand("/link")(&models.Update{Message: &models.Message{Text: "/linkage"}}))
}
