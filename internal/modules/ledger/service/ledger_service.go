package service

import (
	"context"
	"fmt"

	"questlog/internal/modules/ledger/domain"
	ledgerout "questlog/internal/modules/ledger/port/out"
)

type LedgerService struct {
	store ledgerout.LedgerStore
}

func NewLedgerService(store ledgerout.LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// Record validates and appends one entry. The append is durable before
// Record returns; the ordering invariant (non-decreasing timestamps) is
// the caller's responsibility since entries carry clock-issued times.
func (s *LedgerService) Record(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("record entry: %w", err)
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *LedgerService) Entries(ctx context.Context) ([]domain.Entry, error) {
	return s.store.List(ctx)
}

func (s *LedgerService) UndoLast(ctx context.Context) (domain.Entry, error) {
	return s.store.RemoveLast(ctx)
}

func (s *LedgerService) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}
