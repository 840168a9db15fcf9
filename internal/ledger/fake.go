package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FakeRepository is an in-memory Repository used in tests and local
// development. It is selected explicitly through configuration, never by
// sniffing identifier prefixes.
type FakeRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID][]Account
	lines    map[uuid.UUID][]JournalLine
	failWith error
}

// NewFakeRepository returns an empty fake ledger.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		accounts: make(map[uuid.UUID][]Account),
		lines:    make(map[uuid.UUID][]JournalLine),
	}
}

// SeedAccounts registers accounts for a company.
func (f *FakeRepository) SeedAccounts(companyID uuid.UUID, accounts ...Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[companyID] = append(f.accounts[companyID], accounts...)
}

// SeedLines registers journal lines for a company.
func (f *FakeRepository) SeedLines(companyID uuid.UUID, lines ...JournalLine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines[companyID] = append(f.lines[companyID], lines...)
}

// FailWith makes every subsequent call return err, simulating an outage.
func (f *FakeRepository) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

// ListAccounts returns the seeded accounts sorted by name.
func (f *FakeRepository) ListAccounts(ctx context.Context, companyID uuid.UUID) ([]Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := append([]Account(nil), f.accounts[companyID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListJournalLines returns seeded lines within [from, to] inclusive,
// narrowed to storeID when given.
func (f *FakeRepository) ListJournalLines(ctx context.Context, companyID uuid.UUID, storeID *uuid.UUID, from, to time.Time) ([]JournalLine, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []JournalLine
	for _, l := range f.lines[companyID] {
		if l.EntryDate.Before(from) || l.EntryDate.After(to) {
			continue
		}
		if storeID != nil && (l.StoreID == nil || *l.StoreID != *storeID) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}
