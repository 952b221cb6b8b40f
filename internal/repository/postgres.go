package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation = "23505"
	pgNumericOverflow = "22003"

	constraintInfluencerEmail  = "influencers_email_key"
	constraintInfluencerChat   = "influencers_telegram_chat_id_key"
	constraintCustomPayoutPair = "custom_payouts_offer_id_influencer_id_key"
)

var _ service.Store = (*PostgresStore)(nil)

// PostgresStore implements service.Store on PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const offerColumns = `o.id, o.title, o.description, o.payout_type::text, o.cpa_amount, o.fixed_amount, o.created_at, o.updated_at`

const influencerColumns = `id, name, email, telegram_chat_id, created_at, updated_at`

const customPayoutColumns = `id, offer_id, influencer_id, payout_type::text, cpa_amount, fixed_amount, created_at, updated_at`

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var (
		o          domain.Offer
		kind       string
		cpa, fixed decimal.NullDecimal
	)
	if err := row.Scan(&o.ID, &o.Title, &o.Description, &kind, &cpa, &fixed, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.BasePayout = payoutFromColumns(kind, cpa, fixed)
	return &o, nil
}

func scanInfluencer(row rowScanner) (*domain.Influencer, error) {
	var i domain.Influencer
	if err := row.Scan(&i.ID, &i.Name, &i.Email, &i.TelegramChatID, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func scanCustomPayout(row rowScanner) (*domain.CustomPayout, error) {
	var (
		cp         domain.CustomPayout
		kind       string
		cpa, fixed decimal.NullDecimal
	)
	if err := row.Scan(&cp.ID, &cp.OfferID, &cp.InfluencerID, &kind, &cpa, &fixed, &cp.CreatedAt, &cp.UpdatedAt); err != nil {
		return nil, err
	}
	cp.Payout = payoutFromColumns(kind, cpa, fixed)
	return &cp, nil
}

// payoutFromColumns normalizes so a stale amount left in an unused column
// never reaches the domain.
func payoutFromColumns(kind string, cpa, fixed decimal.NullDecimal) domain.Payout {
	return domain.Normalize(domain.PayoutKind(kind), nullDecimalPtr(cpa), nullDecimalPtr(fixed))
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func decimalPtrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// mapAmountError reports a NUMERIC overflow as an invalid payout.
func mapAmountError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNumericOverflow {
		return fmt.Errorf("%w: amount out of range", domain.ErrInvalidPayout)
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

// likePattern turns search into an ILIKE substring pattern with the
// wildcard characters escaped.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func (s *PostgresStore) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	rows, err := s.db.Query(ctx, `SELECT `+offerColumns+` FROM offers o ORDER BY o.created_at, o.id`)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	offers := []domain.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func (s *PostgresStore) GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	o, err := scanOffer(s.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) CreateOffer(ctx context.Context, in domain.OfferInput) (*domain.Offer, error) {
	o, err := scanOffer(s.db.QueryRow(ctx, `
		INSERT INTO offers AS o (title, description, payout_type, cpa_amount, fixed_amount)
		VALUES ($1, $2, $3::payout_type, $4, $5)
		RETURNING `+offerColumns,
		in.Title, in.Description, string(in.Payout.Kind),
		decimalPtrToNull(in.Payout.CPAAmount), decimalPtrToNull(in.Payout.FixedAmount),
	))
	if err != nil {
		return nil, fmt.Errorf("insert offer: %w", mapAmountError(err))
	}
	return o, nil
}

func (s *PostgresStore) UpdateOffer(ctx context.Context, id uuid.UUID, in domain.OfferInput) (*domain.Offer, error) {
	o, err := scanOffer(s.db.QueryRow(ctx, `
		UPDATE offers AS o
		SET title = $2, description = $3, payout_type = $4::payout_type,
		    cpa_amount = $5, fixed_amount = $6, updated_at = now()
		WHERE o.id = $1
		RETURNING `+offerColumns,
		id, in.Title, in.Description, string(in.Payout.Kind),
		decimalPtrToNull(in.Payout.CPAAmount), decimalPtrToNull(in.Payout.FixedAmount),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("update offer: %w", mapAmountError(err))
	}
	return o, nil
}

func (s *PostgresStore) DeleteOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	o, err := scanOffer(s.db.QueryRow(ctx, `DELETE FROM offers AS o WHERE o.id = $1 RETURNING `+offerColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("delete offer: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) ListInfluencers(ctx context.Context) ([]domain.Influencer, error) {
	rows, err := s.db.Query(ctx, `SELECT `+influencerColumns+` FROM influencers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query influencers: %w", err)
	}
	defer rows.Close()

	influencers := []domain.Influencer{}
	for rows.Next() {
		i, err := scanInfluencer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		influencers = append(influencers, *i)
	}
	return influencers, rows.Err()
}

func (s *PostgresStore) CountInfluencers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM influencers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count influencers: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) getInfluencerWhere(ctx context.Context, where string, arg any) (*domain.Influencer, error) {
	i, err := scanInfluencer(s.db.QueryRow(ctx, `SELECT `+influencerColumns+` FROM influencers WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInfluencerNotFound
		}
		return nil, fmt.Errorf("get influencer: %w", err)
	}
	return i, nil
}

func (s *PostgresStore) GetInfluencer(ctx context.Context, id uuid.UUID) (*domain.Influencer, error) {
	return s.getInfluencerWhere(ctx, `id = $1`, id)
}

func (s *PostgresStore) GetInfluencerByEmail(ctx context.Context, email string) (*domain.Influencer, error) {
	return s.getInfluencerWhere(ctx, `email = $1`, email)
}

func (s *PostgresStore) GetInfluencerByChatID(ctx context.Context, chatID int64) (*domain.Influencer, error) {
	return s.getInfluencerWhere(ctx, `telegram_chat_id = $1`, chatID)
}

func (s *PostgresStore) CreateInfluencer(ctx context.Context, in domain.InfluencerInput) (*domain.Influencer, error) {
	i, err := scanInfluencer(s.db.QueryRow(ctx, `
		INSERT INTO influencers (name, email) VALUES ($1, $2)
		RETURNING `+influencerColumns,
		in.Name, in.Email,
	))
	if err != nil {
		if isUniqueViolation(err, constraintInfluencerEmail) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInfluencerEmailTaken, in.Email)
		}
		return nil, fmt.Errorf("insert influencer: %w", err)
	}
	return i, nil
}

func (s *PostgresStore) DeleteInfluencer(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM influencers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete influencer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInfluencerNotFound
	}
	return nil
}

// LinkInfluencerChat moves the chat binding to id, releasing it from any
// influencer that held it before.
func (s *PostgresStore) LinkInfluencerChat(ctx context.Context, id uuid.UUID, chatID int64) (*domain.Influencer, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE influencers SET telegram_chat_id = NULL, updated_at = now()
		WHERE telegram_chat_id = $1 AND id <> $2`, chatID, id); err != nil {
		return nil, fmt.Errorf("release chat: %w", err)
	}

	i, err := scanInfluencer(tx.QueryRow(ctx, `
		UPDATE influencers SET telegram_chat_id = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+influencerColumns, id, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInfluencerNotFound
		}
		if isUniqueViolation(err, constraintInfluencerChat) {
			return nil, fmt.Errorf("%w: chat already linked", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("link chat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return i, nil
}

func (s *PostgresStore) GetCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID) (*domain.CustomPayout, error) {
	cp, err := scanCustomPayout(s.db.QueryRow(ctx, `
		SELECT `+customPayoutColumns+` FROM custom_payouts
		WHERE offer_id = $1 AND influencer_id = $2`, offerID, influencerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomPayoutNotFound
		}
		return nil, fmt.Errorf("get custom payout: %w", err)
	}
	return cp, nil
}

func (s *PostgresStore) InsertCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID, payout domain.Payout) (*domain.CustomPayout, error) {
	cp, err := scanCustomPayout(s.db.QueryRow(ctx, `
		INSERT INTO custom_payouts (offer_id, influencer_id, payout_type, cpa_amount, fixed_amount)
		VALUES ($1, $2, $3::payout_type, $4, $5)
		RETURNING `+customPayoutColumns,
		offerID, influencerID, string(payout.Kind),
		decimalPtrToNull(payout.CPAAmount), decimalPtrToNull(payout.FixedAmount),
	))
	if err != nil {
		if isUniqueViolation(err, constraintCustomPayoutPair) {
			return nil, domain.ErrCustomPayoutConflict
		}
		return nil, fmt.Errorf("insert custom payout: %w", mapAmountError(err))
	}
	return cp, nil
}

func (s *PostgresStore) DeleteCustomPayout(ctx context.Context, offerID, influencerID uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM custom_payouts WHERE offer_id = $1 AND influencer_id = $2`, offerID, influencerID)
	if err != nil {
		return false, fmt.Errorf("delete custom payout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) ListOffersForInfluencer(ctx context.Context, influencerID uuid.UUID, search string) ([]domain.OfferWithCustomPayout, error) {
	query := `
		SELECT ` + offerColumns + `,
		       cp.id, cp.payout_type::text, cp.cpa_amount, cp.fixed_amount, cp.created_at, cp.updated_at
		FROM offers o
		LEFT JOIN custom_payouts cp ON cp.offer_id = o.id AND cp.influencer_id = $1`
	args := []any{influencerID}
	if search != "" {
		query += ` WHERE o.title ILIKE $2 ESCAPE '\'`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY o.created_at, o.id`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query offers for influencer: %w", err)
	}
	defer rows.Close()

	result := []domain.OfferWithCustomPayout{}
	for rows.Next() {
		var (
			o                domain.Offer
			kind             string
			cpa, fixed       decimal.NullDecimal
			cpID             *uuid.UUID
			cpKind           *string
			cpCPA, cpFixed   decimal.NullDecimal
			cpCreated, cpUpd pgtype.Timestamptz
		)
		if err := rows.Scan(
			&o.ID, &o.Title, &o.Description, &kind, &cpa, &fixed, &o.CreatedAt, &o.UpdatedAt,
			&cpID, &cpKind, &cpCPA, &cpFixed, &cpCreated, &cpUpd,
		); err != nil {
			return nil, fmt.Errorf("scan offer row: %w", err)
		}
		o.BasePayout = payoutFromColumns(kind, cpa, fixed)

		row := domain.OfferWithCustomPayout{Offer: o}
		if cpID != nil && cpKind != nil {
			row.CustomPayout = &domain.CustomPayout{
				ID:           *cpID,
				OfferID:      o.ID,
				InfluencerID: influencerID,
				Payout:       payoutFromColumns(*cpKind, cpCPA, cpFixed),
				CreatedAt:    pgTimestamptzToTime(cpCreated),
				UpdatedAt:    pgTimestamptzToTime(cpUpd),
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
