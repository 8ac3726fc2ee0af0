package in

import (
	"context"

	"questlog/internal/modules/ledger/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.EntryOutput, error)
	Balance(ctx context.Context) (float64, error)
	Series(ctx context.Context) ([]dto.PointOutput, error)
	TotalsByName(ctx context.Context, kind string) ([]dto.NameTotalOutput, error)
	TotalsByDate(ctx context.Context) ([]dto.DayTotalsOutput, error)
	Recent(ctx context.Context, n int) ([]dto.EntryOutput, error)
	UndoLast(ctx context.Context) (dto.EntryOutput, error)
	Reset(ctx context.Context) error
}
