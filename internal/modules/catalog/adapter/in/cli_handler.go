package in

import (
	"context"

	"questlog/internal/modules/catalog/dto"
	catalogin "questlog/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Define(ctx context.Context, collection, name string, baseMinutes int, baseXP, multiplier float64) (dto.DefinitionOutput, error) {
	return h.usecase.Define(ctx, dto.DefineInput{
		Collection:  collection,
		Name:        name,
		BaseMinutes: baseMinutes,
		BaseXP:      baseXP,
		Multiplier:  multiplier,
	})
}

func (h CLIHandler) Remove(ctx context.Context, collection, name string) error {
	return h.usecase.Remove(ctx, collection, name)
}

func (h CLIHandler) Get(ctx context.Context, collection, name string) (dto.DefinitionOutput, error) {
	return h.usecase.Get(ctx, collection, name)
}

func (h CLIHandler) List(ctx context.Context, collection string) ([]dto.DefinitionOutput, error) {
	return h.usecase.List(ctx, collection)
}

func (h CLIHandler) Appraise(ctx context.Context, collection, name string, minutes int) (dto.AppraiseOutput, error) {
	return h.usecase.Appraise(ctx, dto.AppraiseInput{Collection: collection, Name: name, Minutes: minutes})
}

func (h CLIHandler) Reset(ctx context.Context, collection string) error {
	return h.usecase.Reset(ctx, collection)
}
