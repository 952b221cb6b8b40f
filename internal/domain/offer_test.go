package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferInputValidate(t *testing.T) {
	t.Parallel()

	valid := Payout{Kind: PayoutKindCPA, CPAAmount: amount("25")}

	tests := []struct {
		name    string
		in      OfferInput
		wantErr error
	}{
		{name: "valid", in: OfferInput{Title: "Summer", Description: "Promote", Payout: valid}},
		{name: "title at limit", in: OfferInput{Title: strings.Repeat("ä", MaxTitleLen), Description: "d", Payout: valid}},
		{name: "blank title", in: OfferInput{Title: "   ", Description: "d", Payout: valid}, wantErr: ErrInvalidInput},
		{name: "title too long", in: OfferInput{Title: strings.Repeat("a", MaxTitleLen+1), Description: "d", Payout: valid}, wantErr: ErrInvalidInput},
		{name: "blank description", in: OfferInput{Title: "t", Description: "\n", Payout: valid}, wantErr: ErrInvalidInput},
		{name: "invalid payout", in: OfferInput{Title: "t", Description: "d", Payout: Payout{Kind: PayoutKindFixed}}, wantErr: ErrInvalidPayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.in.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInfluencerInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      InfluencerInput
		wantErr bool
	}{
		{name: "valid", in: InfluencerInput{Name: "Alice", Email: "alice@example.com"}},
		{name: "blank name", in: InfluencerInput{Name: " ", Email: "alice@example.com"}, wantErr: true},
		{name: "name too long", in: InfluencerInput{Name: strings.Repeat("n", MaxNameLen+1), Email: "a@b.co"}, wantErr: true},
		{name: "missing at", in: InfluencerInput{Name: "Alice", Email: "alice.example.com"}, wantErr: true},
		{name: "display name form", in: InfluencerInput{Name: "Alice", Email: "Alice <alice@example.com>"}, wantErr: true},
		{name: "empty email", in: InfluencerInput{Name: "Alice"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.in.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
