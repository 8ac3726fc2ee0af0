package usecase

import (
	"context"

	"questlog/internal/modules/notify/domain"
	"questlog/internal/modules/notify/dto"
	notifyin "questlog/internal/modules/notify/port/in"
	"questlog/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.NotifierOutput, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Announce(ctx context.Context, input dto.AnnounceInput) error {
	return i.svc.Announce(ctx, domain.Event{
		Kind:        input.Kind,
		Name:        input.Name,
		Minutes:     input.Minutes,
		Amount:      input.Amount,
		CompletedAt: input.CompletedAt,
	})
}
