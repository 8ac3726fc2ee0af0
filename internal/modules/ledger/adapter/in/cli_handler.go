package in

import (
	"context"

	"questlog/internal/modules/ledger/dto"
	ledgerin "questlog/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Balance(ctx context.Context) (float64, error) {
	return h.usecase.Balance(ctx)
}

func (h CLIHandler) Series(ctx context.Context) ([]dto.PointOutput, error) {
	return h.usecase.Series(ctx)
}

func (h CLIHandler) TotalsByName(ctx context.Context, kind string) ([]dto.NameTotalOutput, error) {
	return h.usecase.TotalsByName(ctx, kind)
}

func (h CLIHandler) TotalsByDate(ctx context.Context) ([]dto.DayTotalsOutput, error) {
	return h.usecase.TotalsByDate(ctx)
}

func (h CLIHandler) Recent(ctx context.Context, n int) ([]dto.EntryOutput, error) {
	return h.usecase.Recent(ctx, n)
}

func (h CLIHandler) UndoLast(ctx context.Context) (dto.EntryOutput, error) {
	return h.usecase.UndoLast(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
