package in

import (
	"context"

	sessiondto "questlog/internal/modules/session/dto"
	sessionin "questlog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, kind, name string, targetMinutes int) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Kind: kind, Name: name, TargetMinutes: targetMinutes})
}

func (h CLIHandler) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.ActiveOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
