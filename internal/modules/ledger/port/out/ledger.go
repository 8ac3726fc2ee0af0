package out

import (
	"context"

	"questlog/internal/modules/ledger/domain"
)

// LedgerStore is the durable append-only event log. Append commits the
// entry before the caller treats the write as done; RemoveLast returns
// the removed entry or apperrors.ErrEmptyLedger.
type LedgerStore interface {
	Append(ctx context.Context, entry domain.Entry) error
	RemoveLast(ctx context.Context) (domain.Entry, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]domain.Entry, error)
}
