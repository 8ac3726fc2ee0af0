package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"questlog/internal/modules/catalog/adapter/out"
	"questlog/internal/modules/catalog/domain"
	catalogout "questlog/internal/modules/catalog/port/out"
	apperrors "questlog/internal/platform/errors"
)

func newStore(t *testing.T) (domain.Collection, catalogout.DefinitionStore) {
	t.Helper()
	dir := t.TempDir()
	store := out.NewYAMLDefinitionStore(filepath.Join(dir, "tasks.yaml"), filepath.Join(dir, "rewards.yaml"))
	return domain.CollectionTasks, store
}

func TestSaveListPreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	collection, store := newStore(t)
	ctx := context.Background()

	defs := []domain.Definition{
		{Name: "Read", BaseMinutes: 10, BaseXP: 5, Multiplier: 1.2},
		{Name: "Write", BaseMinutes: 25, BaseXP: 12, Multiplier: 1.3},
		{Name: "Exercise", BaseMinutes: 30, BaseXP: 15, Multiplier: 1.1},
	}
	for _, def := range defs {
		if err := store.Save(ctx, collection, def); err != nil {
			t.Fatalf("save %s: %v", def.Name, err)
		}
	}

	// Updating an existing name must keep its position.
	if err := store.Save(ctx, collection, domain.Definition{Name: "Write", BaseMinutes: 20, BaseXP: 10, Multiplier: 1.3}); err != nil {
		t.Fatalf("update Write: %v", err)
	}

	listed, err := store.List(ctx, collection)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(listed))
	}
	for i, name := range []string{"Read", "Write", "Exercise"} {
		if listed[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, listed[i].Name)
		}
	}
	if listed[1].BaseMinutes != 20 {
		t.Fatalf("update did not stick: %+v", listed[1])
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	t.Parallel()
	_, store := newStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.CollectionTasks, domain.Definition{Name: "Read", BaseMinutes: 10, BaseXP: 5, Multiplier: 1.2}); err != nil {
		t.Fatalf("save task: %v", err)
	}
	if err := store.Save(ctx, domain.CollectionRewards, domain.Definition{Name: "Game", BaseMinutes: 30, BaseXP: 10, Multiplier: 1.2}); err != nil {
		t.Fatalf("save reward: %v", err)
	}

	if _, err := store.Find(ctx, domain.CollectionRewards, "Read"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("task must not leak into rewards, got %v", err)
	}
	if err := store.Clear(ctx, domain.CollectionRewards); err != nil {
		t.Fatalf("clear rewards: %v", err)
	}
	tasks, err := store.List(ctx, domain.CollectionTasks)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("clearing rewards must not touch tasks, got %d tasks", len(tasks))
	}
}

func TestDeleteAndFindMissing(t *testing.T) {
	t.Parallel()
	collection, store := newStore(t)
	ctx := context.Background()

	if err := store.Delete(ctx, collection, "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("delete missing: expected ErrNotFound, got %v", err)
	}
	if err := store.Save(ctx, collection, domain.Definition{Name: "Read", BaseMinutes: 10, BaseXP: 5, Multiplier: 1.2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, collection, "Read"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Find(ctx, collection, "Read"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("find deleted: expected ErrNotFound, got %v", err)
	}
}
