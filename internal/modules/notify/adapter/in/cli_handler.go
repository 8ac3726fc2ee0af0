package in

import (
	"context"

	notifydto "questlog/internal/modules/notify/dto"
	notifyin "questlog/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]notifydto.NotifierOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]notifydto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, input notifydto.AnnounceInput) error {
	return h.usecase.Announce(ctx, input)
}
