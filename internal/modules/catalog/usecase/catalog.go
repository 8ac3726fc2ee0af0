package usecase

import (
	"context"

	"questlog/internal/modules/catalog/domain"
	"questlog/internal/modules/catalog/dto"
	catalogin "questlog/internal/modules/catalog/port/in"
	"questlog/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Define(ctx context.Context, input dto.DefineInput) (dto.DefinitionOutput, error) {
	def, err := i.svc.Define(ctx, domain.Collection(input.Collection), domain.Definition{
		Name:        input.Name,
		BaseMinutes: input.BaseMinutes,
		BaseXP:      input.BaseXP,
		Multiplier:  input.Multiplier,
	})
	if err != nil {
		return dto.DefinitionOutput{}, err
	}
	return toOutput(def), nil
}

func (i *Interactor) Remove(ctx context.Context, collection, name string) error {
	return i.svc.Remove(ctx, domain.Collection(collection), name)
}

func (i *Interactor) Get(ctx context.Context, collection, name string) (dto.DefinitionOutput, error) {
	def, err := i.svc.Get(ctx, domain.Collection(collection), name)
	if err != nil {
		return dto.DefinitionOutput{}, err
	}
	return toOutput(def), nil
}

func (i *Interactor) List(ctx context.Context, collection string) ([]dto.DefinitionOutput, error) {
	defs, err := i.svc.List(ctx, domain.Collection(collection))
	if err != nil {
		return nil, err
	}
	out := make([]dto.DefinitionOutput, 0, len(defs))
	for _, def := range defs {
		out = append(out, toOutput(def))
	}
	return out, nil
}

func (i *Interactor) Appraise(ctx context.Context, input dto.AppraiseInput) (dto.AppraiseOutput, error) {
	def, appraisal, err := i.svc.Appraise(ctx, domain.Collection(input.Collection), input.Name, input.Minutes)
	if err != nil {
		return dto.AppraiseOutput{}, err
	}
	return dto.AppraiseOutput{
		Name:    def.Name,
		Minutes: input.Minutes,
		XP:      appraisal.XP,
		Partial: appraisal.Partial,
	}, nil
}

func (i *Interactor) Reset(ctx context.Context, collection string) error {
	return i.svc.Reset(ctx, domain.Collection(collection))
}

func toOutput(def domain.Definition) dto.DefinitionOutput {
	return dto.DefinitionOutput{
		Name:        def.Name,
		BaseMinutes: def.BaseMinutes,
		BaseXP:      def.BaseXP,
		Multiplier:  def.Multiplier,
	}
}
