package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionout "questlog/internal/modules/session/adapter/out"
	"questlog/internal/modules/session/domain"
	apperrors "questlog/internal/platform/errors"
)

func TestActiveSessionRoundTrip(t *testing.T) {
	t.Parallel()
	store := sessionout.NewFileActiveSessionStore(filepath.Join(t.TempDir(), "active-session.json"))
	ctx := context.Background()

	session := domain.ActiveSession{
		SessionID:     "abc123",
		Kind:          domain.KindEarn,
		Name:          "Read",
		TargetMinutes: 30,
		Amount:        12,
		StartedAt:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := store.SaveActive(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.SessionID != session.SessionID || loaded.Kind != session.Kind || loaded.Name != session.Name {
		t.Fatalf("loaded session mismatch: %+v", loaded)
	}
	if !loaded.StartedAt.Equal(session.StartedAt) {
		t.Fatalf("started at = %v, want %v", loaded.StartedAt, session.StartedAt)
	}
}

func TestLoadActiveWithoutSession(t *testing.T) {
	t.Parallel()
	store := sessionout.NewFileActiveSessionStore(filepath.Join(t.TempDir(), "active-session.json"))

	if _, err := store.LoadActive(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestClearActiveIsIdempotent(t *testing.T) {
	t.Parallel()
	store := sessionout.NewFileActiveSessionStore(filepath.Join(t.TempDir(), "active-session.json"))
	ctx := context.Background()

	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	session := domain.ActiveSession{
		SessionID:     "abc123",
		Kind:          domain.KindSpend,
		Name:          "Movie",
		TargetMinutes: 90,
		Amount:        45,
		StartedAt:     time.Now(),
	}
	if err := store.SaveActive(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected cleared store, got %v", err)
	}
}
