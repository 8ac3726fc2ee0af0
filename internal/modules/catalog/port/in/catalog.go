package in

import (
	"context"

	"questlog/internal/modules/catalog/dto"
)

type Usecase interface {
	Define(ctx context.Context, input dto.DefineInput) (dto.DefinitionOutput, error)
	Remove(ctx context.Context, collection, name string) error
	Get(ctx context.Context, collection, name string) (dto.DefinitionOutput, error)
	List(ctx context.Context, collection string) ([]dto.DefinitionOutput, error)
	Appraise(ctx context.Context, input dto.AppraiseInput) (dto.AppraiseOutput, error)
	Reset(ctx context.Context, collection string) error
}
