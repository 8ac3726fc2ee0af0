package in

import (
	"context"

	"questlog/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Tick(ctx context.Context) (dto.TickOutput, error)
	GetActive(ctx context.Context) (dto.ActiveOutput, error)
	Reset(ctx context.Context) error
}
