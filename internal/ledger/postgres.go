package ledger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository reads the ledger from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wraps a pgx pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListAccounts returns the company's active chart of accounts ordered by name.
func (r *PostgresRepository) ListAccounts(ctx context.Context, companyID uuid.UUID) ([]Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, company_id, name, type, detail_category, expense_nature, is_active, created_at, updated_at
		FROM accounts
		WHERE company_id = $1 AND is_active
		ORDER BY name`, companyID)
	if err != nil {
		return nil, classifyPgError("list accounts", err)
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var a Account
		var nature *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Type, &a.DetailCategory, &nature, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, classifyPgError("scan account", err)
		}
		if nature != nil {
			n := ExpenseNature(*nature)
			a.ExpenseNature = &n
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPgError("list accounts", err)
	}
	return accounts, nil
}

// ListJournalLines returns posted lines for the company within [from, to]
// inclusive, optionally narrowed to one store.
func (r *PostgresRepository) ListJournalLines(ctx context.Context, companyID uuid.UUID, storeID *uuid.UUID, from, to time.Time) ([]JournalLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, company_id, store_id, debit, credit, entry_date, created_at
		FROM journal_lines
		WHERE company_id = $1
		  AND entry_date BETWEEN $2 AND $3
		  AND ($4::uuid IS NULL OR store_id = $4)
		ORDER BY entry_date, id`, companyID, from, to, storeID)
	if err != nil {
		return nil, classifyPgError("list journal lines", err)
	}
	defer rows.Close()
	var lines []JournalLine
	for rows.Next() {
		var l JournalLine
		if err := rows.Scan(&l.ID, &l.AccountID, &l.CompanyID, &l.StoreID, &l.Debit, &l.Credit, &l.EntryDate, &l.CreatedAt); err != nil {
			return nil, classifyPgError("scan journal line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPgError("list journal lines", err)
	}
	return lines, nil
}

// classifyPgError folds transport-level failures into ErrUnavailable so the
// caller can tell "upstream down" apart from "no rows".
func classifyPgError(op string, err error) error {
	var netErr net.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err):
		return fmt.Errorf("ledger: %s: %v: %w", op, err, ErrUnavailable)
	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "57"):
		// class 57: operator intervention, shutdown in progress
		return fmt.Errorf("ledger: %s: %v: %w", op, err, ErrUnavailable)
	default:
		return fmt.Errorf("ledger: %s: %w", op, err)
	}
}
