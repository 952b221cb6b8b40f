package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInfluencerContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, GetInfluencer(context.Background()))

	inf := &domain.Influencer{ID: uuid.New(), Name: "Alice"}
	assert.Same(t, inf, GetInfluencer(WithInfluencer(context.Background(), inf)))
}

func TestDescribeUpdate(t *testing.T) {
	t.Parallel()

	kind, chatID := describeUpdate(&models.Update{Message: &models.Message{Chat: models.Chat{ID: 5}}})
	assert.Equal(t, "message", kind)
	assert.Equal(t, int64(5), chatID)

	kind, chatID = describeUpdate(&models.Update{CallbackQuery: &models.CallbackQuery{
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: 9}}},
	}})
	assert.Equal(t, "callback_query", kind)
	assert.Equal(t, int64(9), chatID)

	kind, chatID = describeUpdate(&models.Update{})
	assert.Equal(t, "unknown", kind)
	assert.Zero(t, chatID)
}
