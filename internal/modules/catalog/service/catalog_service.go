package service

import (
	"context"
	"strings"

	"questlog/internal/modules/catalog/domain"
	catalogout "questlog/internal/modules/catalog/port/out"
)

type CatalogService struct {
	store catalogout.DefinitionStore
}

func NewCatalogService(store catalogout.DefinitionStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Define(ctx context.Context, collection domain.Collection, def domain.Definition) (domain.Definition, error) {
	if err := collection.Validate(); err != nil {
		return domain.Definition{}, err
	}
	def.Name = strings.TrimSpace(def.Name)
	if err := def.Validate(); err != nil {
		return domain.Definition{}, err
	}
	if err := s.store.Save(ctx, collection, def); err != nil {
		return domain.Definition{}, err
	}
	return def, nil
}

func (s *CatalogService) Remove(ctx context.Context, collection domain.Collection, name string) error {
	if err := collection.Validate(); err != nil {
		return err
	}
	return s.store.Delete(ctx, collection, strings.TrimSpace(name))
}

func (s *CatalogService) Get(ctx context.Context, collection domain.Collection, name string) (domain.Definition, error) {
	if err := collection.Validate(); err != nil {
		return domain.Definition{}, err
	}
	return s.store.Find(ctx, collection, strings.TrimSpace(name))
}

func (s *CatalogService) List(ctx context.Context, collection domain.Collection) ([]domain.Definition, error) {
	if err := collection.Validate(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, collection)
}

func (s *CatalogService) Appraise(ctx context.Context, collection domain.Collection, name string, minutes int) (domain.Definition, domain.Appraisal, error) {
	def, err := s.Get(ctx, collection, name)
	if err != nil {
		return domain.Definition{}, domain.Appraisal{}, err
	}
	appraisal, err := domain.Appraise(def, minutes)
	if err != nil {
		return domain.Definition{}, domain.Appraisal{}, err
	}
	return def, appraisal, nil
}

func (s *CatalogService) Reset(ctx context.Context, collection domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return err
	}
	return s.store.Clear(ctx, collection)
}
