package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// pgTimestamptzToTime converts pgtype.Timestamptz to time.Time. NULL from an
// outer join becomes the zero time.
func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}
