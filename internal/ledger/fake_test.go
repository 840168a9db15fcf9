package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFakeRepositoryScoping(t *testing.T) {
	repo := NewFakeRepository()
	companyA := uuid.New()
	companyB := uuid.New()
	store := uuid.New()

	repo.SeedAccounts(companyA,
		Account{ID: uuid.New(), CompanyID: companyA, Name: "Zulu", Type: AccountTypeAsset},
		Account{ID: uuid.New(), CompanyID: companyA, Name: "Alpha", Type: AccountTypeAsset},
	)
	repo.SeedAccounts(companyB,
		Account{ID: uuid.New(), CompanyID: companyB, Name: "Other", Type: AccountTypeAsset},
	)

	accounts, err := repo.ListAccounts(context.Background(), companyA)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Name != "Alpha" {
		t.Fatalf("accounts not sorted by name, first %s", accounts[0].Name)
	}

	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	repo.SeedLines(companyA,
		JournalLine{ID: uuid.New(), AccountID: accounts[0].ID, EntryDate: april, Debit: 5},
		JournalLine{ID: uuid.New(), AccountID: accounts[0].ID, StoreID: &store, EntryDate: march, Debit: 10},
		JournalLine{ID: uuid.New(), AccountID: accounts[0].ID, EntryDate: march, Debit: 20},
	)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	lines, err := repo.ListJournalLines(context.Background(), companyA, nil, from, to)
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 march lines, got %d", len(lines))
	}

	lines, err = repo.ListJournalLines(context.Background(), companyA, &store, from, to)
	if err != nil {
		t.Fatalf("list store lines: %v", err)
	}
	if len(lines) != 1 || lines[0].Debit != 10 {
		t.Fatalf("store filter returned %d lines", len(lines))
	}
}

func TestFakeRepositoryFailWith(t *testing.T) {
	repo := NewFakeRepository()
	repo.FailWith(ErrUnavailable)

	if _, err := repo.ListAccounts(context.Background(), uuid.New()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := repo.ListJournalLines(context.Background(), uuid.New(), nil, time.Now(), time.Now()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
