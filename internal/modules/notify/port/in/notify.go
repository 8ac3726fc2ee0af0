package in

import (
	"context"

	"questlog/internal/modules/notify/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.NotifierOutput, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Announce(ctx context.Context, input dto.AnnounceInput) error
}
