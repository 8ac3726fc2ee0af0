package out

import (
	"context"

	"questlog/internal/modules/catalog/domain"
)

// DefinitionStore persists one ordered, name-keyed collection of
// definitions per Collection value. Save upserts by name while
// preserving first-insertion order.
type DefinitionStore interface {
	Save(ctx context.Context, collection domain.Collection, def domain.Definition) error
	Delete(ctx context.Context, collection domain.Collection, name string) error
	Find(ctx context.Context, collection domain.Collection, name string) (domain.Definition, error)
	List(ctx context.Context, collection domain.Collection) ([]domain.Definition, error)
	Clear(ctx context.Context, collection domain.Collection) error
}
