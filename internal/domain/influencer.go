package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Influencer struct {
	ID             uuid.UUID
	Name           string
	Email          string
	TelegramChatID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type InfluencerInput struct {
	Name  string
	Email string
}

const MaxNameLen = 255

func (in InfluencerInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLen {
		return fmt.Errorf("%w: name must be %d characters or less", ErrInvalidInput, MaxNameLen)
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}
