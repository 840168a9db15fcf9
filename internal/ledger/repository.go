package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUnavailable signals that the ledger store could not be reached or
// returned a non-success status. Distinct from an empty result set, which is
// a valid answer.
var ErrUnavailable = errors.New("ledger: upstream unavailable")

// Repository supplies accounts and journal lines for report requests. The
// engine calls it once per request and never retries internally.
type Repository interface {
	ListAccounts(ctx context.Context, companyID uuid.UUID) ([]Account, error)
	ListJournalLines(ctx context.Context, companyID uuid.UUID, storeID *uuid.UUID, from, to time.Time) ([]JournalLine, error)
}
