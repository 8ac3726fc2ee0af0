package usecase

import (
	"context"

	"questlog/internal/modules/ledger/domain"
	"questlog/internal/modules/ledger/dto"
	ledgerin "questlog/internal/modules/ledger/port/in"
	"questlog/internal/modules/ledger/service"
)

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.EntryOutput, error) {
	entry, err := i.svc.Record(ctx, domain.Entry{
		At:      input.At,
		Kind:    domain.Kind(input.Kind),
		Name:    input.Name,
		Minutes: input.Minutes,
		Amount:  input.Amount,
	})
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry), nil
}

func (i *Interactor) Balance(ctx context.Context) (float64, error) {
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return 0, err
	}
	return domain.Balance(entries), nil
}

func (i *Interactor) Series(ctx context.Context) ([]dto.PointOutput, error) {
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return nil, err
	}
	points := domain.CumulativeSeries(entries)
	out := make([]dto.PointOutput, 0, len(points))
	for _, point := range points {
		out = append(out, dto.PointOutput{At: point.At, Balance: point.Balance})
	}
	return out, nil
}

func (i *Interactor) TotalsByName(ctx context.Context, kind string) ([]dto.NameTotalOutput, error) {
	if err := domain.Kind(kind).Validate(); err != nil {
		return nil, err
	}
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return nil, err
	}
	totals := domain.TotalsByName(entries, domain.Kind(kind))
	out := make([]dto.NameTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, dto.NameTotalOutput{Name: total.Name, XP: total.XP})
	}
	return out, nil
}

func (i *Interactor) TotalsByDate(ctx context.Context) ([]dto.DayTotalsOutput, error) {
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return nil, err
	}
	totals := domain.TotalsByDate(entries)
	out := make([]dto.DayTotalsOutput, 0, len(totals))
	for _, day := range totals {
		out = append(out, dto.DayTotalsOutput{Date: day.Date, Earned: day.Earned, Spent: day.Spent})
	}
	return out, nil
}

func (i *Interactor) Recent(ctx context.Context, n int) ([]dto.EntryOutput, error) {
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return nil, err
	}
	recent := domain.Recent(entries, n)
	out := make([]dto.EntryOutput, 0, len(recent))
	for _, entry := range recent {
		out = append(out, toEntryOutput(entry))
	}
	return out, nil
}

func (i *Interactor) UndoLast(ctx context.Context) (dto.EntryOutput, error) {
	entry, err := i.svc.UndoLast(ctx)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry), nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func toEntryOutput(entry domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		At:      entry.At,
		Kind:    string(entry.Kind),
		Name:    entry.Name,
		Minutes: entry.Minutes,
		Amount:  entry.Amount,
	}
}
