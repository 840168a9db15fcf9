package statement

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/finboard-erp/finboard/internal/ledger"
)

// ZeroEpsilon is the shared tolerance below which a balance counts as zero,
// identical to the balance-equation tolerance.
const ZeroEpsilon = 0.01

// AccountBalance carries an account's signed balance over a period. Derived
// per request, never persisted.
type AccountBalance struct {
	Account             ledger.Account
	Balance             float64
	TransactionCount    int
	LastTransactionDate *time.Time
}

// BalanceOptions scopes a balance computation.
type BalanceOptions struct {
	Period      ledger.Period
	StoreID     *uuid.UUID // nil means company-wide
	IncludeZero bool
}

// ComputeBalances folds journal lines into one signed balance per account.
// Asset and expense accounts are debit-normal, the rest credit-normal. An
// account with no contributing lines yields balance 0 / count 0 / nil date;
// near-zero balances are dropped unless IncludeZero is set. Never fails on
// valid input.
func ComputeBalances(accounts []ledger.Account, lines []ledger.JournalLine, opts BalanceOptions) []AccountBalance {
	byAccount := make(map[uuid.UUID]*AccountBalance, len(accounts))
	ordered := make([]*AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		ab := &AccountBalance{Account: a}
		byAccount[a.ID] = ab
		ordered = append(ordered, ab)
	}

	for _, line := range lines {
		ab, ok := byAccount[line.AccountID]
		if !ok {
			continue
		}
		if !opts.Period.Contains(line.EntryDate) {
			continue
		}
		if opts.StoreID != nil && (line.StoreID == nil || *line.StoreID != *opts.StoreID) {
			continue
		}
		ab.Balance += signedAmount(ab.Account.Type, line)
		ab.TransactionCount++
		if ab.LastTransactionDate == nil || line.EntryDate.After(*ab.LastTransactionDate) {
			d := line.EntryDate
			ab.LastTransactionDate = &d
		}
	}

	out := make([]AccountBalance, 0, len(ordered))
	for _, ab := range ordered {
		if !opts.IncludeZero && math.Abs(ab.Balance) < ZeroEpsilon {
			continue
		}
		out = append(out, *ab)
	}
	return out
}

func signedAmount(t ledger.AccountType, line ledger.JournalLine) float64 {
	switch t {
	case ledger.AccountTypeAsset, ledger.AccountTypeExpense:
		return line.Debit - line.Credit
	default:
		return line.Credit - line.Debit
	}
}
