package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	catalogdto "questlog/internal/modules/catalog/dto"
	ledgerdto "questlog/internal/modules/ledger/dto"
	notifydto "questlog/internal/modules/notify/dto"
	sessionout "questlog/internal/modules/session/adapter/out"
	sessiondto "questlog/internal/modules/session/dto"
	sessionin "questlog/internal/modules/session/port/in"
	"questlog/internal/modules/session/service"
	"questlog/internal/modules/session/usecase"
	apperrors "questlog/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeID struct{}

func (fakeID) New() string { return "session-1" }

type fakeCatalog struct {
	xp      float64
	partial bool
}

func (f fakeCatalog) Define(context.Context, catalogdto.DefineInput) (catalogdto.DefinitionOutput, error) {
	return catalogdto.DefinitionOutput{}, nil
}
func (f fakeCatalog) Remove(context.Context, string, string) error { return nil }
func (f fakeCatalog) Get(context.Context, string, string) (catalogdto.DefinitionOutput, error) {
	return catalogdto.DefinitionOutput{}, nil
}
func (f fakeCatalog) List(context.Context, string) ([]catalogdto.DefinitionOutput, error) {
	return nil, nil
}
func (f fakeCatalog) Appraise(_ context.Context, input catalogdto.AppraiseInput) (catalogdto.AppraiseOutput, error) {
	return catalogdto.AppraiseOutput{Name: input.Name, Minutes: input.Minutes, XP: f.xp, Partial: f.partial}, nil
}
func (f fakeCatalog) Reset(context.Context, string) error { return nil }

type fakeLedger struct {
	balance float64
	entries []ledgerdto.RecordInput
}

func (f *fakeLedger) Record(_ context.Context, input ledgerdto.RecordInput) (ledgerdto.EntryOutput, error) {
	f.entries = append(f.entries, input)
	return ledgerdto.EntryOutput{At: input.At, Kind: input.Kind, Name: input.Name, Minutes: input.Minutes, Amount: input.Amount}, nil
}
func (f *fakeLedger) Balance(context.Context) (float64, error) { return f.balance, nil }
func (f *fakeLedger) Series(context.Context) ([]ledgerdto.PointOutput, error) {
	return nil, nil
}
func (f *fakeLedger) TotalsByName(context.Context, string) ([]ledgerdto.NameTotalOutput, error) {
	return nil, nil
}
func (f *fakeLedger) TotalsByDate(context.Context) ([]ledgerdto.DayTotalsOutput, error) {
	return nil, nil
}
func (f *fakeLedger) Recent(context.Context, int) ([]ledgerdto.EntryOutput, error) {
	return nil, nil
}
func (f *fakeLedger) UndoLast(context.Context) (ledgerdto.EntryOutput, error) {
	return ledgerdto.EntryOutput{}, nil
}
func (f *fakeLedger) Reset(context.Context) error { return nil }

type fakeNotify struct {
	announced []notifydto.AnnounceInput
}

func (f *fakeNotify) List(context.Context) ([]notifydto.NotifierOutput, error) { return nil, nil }
func (f *fakeNotify) Doctor(context.Context) ([]notifydto.DoctorResult, error) {
	return nil, nil
}
func (f *fakeNotify) Announce(_ context.Context, input notifydto.AnnounceInput) error {
	f.announced = append(f.announced, input)
	return nil
}

type harness struct {
	clock  *fakeClock
	ledger *fakeLedger
	notify *fakeNotify
	uc     sessionin.Usecase
}

func newHarness(t *testing.T, catalog fakeCatalog, balance float64) *harness {
	t.Helper()
	clk := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
	ledger := &fakeLedger{balance: balance}
	notify := &fakeNotify{}
	svc := service.NewSessionService(clk, fakeID{})
	store := sessionout.NewFileActiveSessionStore(filepath.Join(t.TempDir(), "active-session.json"))
	return &harness{
		clock:  clk,
		ledger: ledger,
		notify: notify,
		uc:     usecase.NewInteractor(svc, catalog, ledger, notify, store),
	}
}

func TestEarnSessionWritesLedgerOnlyAtCompletion(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 12}, 0)

	out, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "earn", Name: "Read", TargetMinutes: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Charged {
		t.Fatal("earn session must not charge at start")
	}
	if len(h.ledger.entries) != 0 {
		t.Fatalf("earn start wrote %d ledger entries", len(h.ledger.entries))
	}

	h.clock.Advance(10 * time.Minute)
	tick, err := h.uc.Tick(context.Background())
	if err != nil {
		t.Fatalf("mid tick: %v", err)
	}
	if tick.Completed {
		t.Fatal("session completed with 20 minutes remaining")
	}
	if tick.RemainingSeconds != 20*60 {
		t.Fatalf("remaining = %d, want %d", tick.RemainingSeconds, 20*60)
	}
	if len(h.ledger.entries) != 0 {
		t.Fatal("mid-session tick must be a pure read")
	}

	h.clock.Advance(20 * time.Minute)
	tick, err = h.uc.Tick(context.Background())
	if err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if !tick.Completed {
		t.Fatal("expected completed tick")
	}
	if len(h.ledger.entries) != 1 {
		t.Fatalf("completion wrote %d entries, want 1", len(h.ledger.entries))
	}
	entry := h.ledger.entries[0]
	if entry.Kind != "earn" || entry.Name != "Read" || entry.Amount != 12 || entry.Minutes != 30 {
		t.Fatalf("unexpected completion entry: %+v", entry)
	}
	if len(h.notify.announced) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(h.notify.announced))
	}

	if _, err := h.uc.GetActive(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("active session should be cleared, got %v", err)
	}
}

func TestSpendSessionChargesAtStart(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 45}, 100)

	out, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "spend", Name: "Movie", TargetMinutes: 90})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !out.Charged {
		t.Fatal("spend session must charge at start")
	}
	if len(h.ledger.entries) != 1 {
		t.Fatalf("spend start wrote %d entries, want 1", len(h.ledger.entries))
	}
	if h.ledger.entries[0].Kind != "spend" || h.ledger.entries[0].Amount != 45 {
		t.Fatalf("unexpected charge entry: %+v", h.ledger.entries[0])
	}

	h.clock.Advance(90 * time.Minute)
	tick, err := h.uc.Tick(context.Background())
	if err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if !tick.Completed {
		t.Fatal("expected completed tick")
	}
	if len(h.ledger.entries) != 1 {
		t.Fatalf("spend completion must not write again, got %d entries", len(h.ledger.entries))
	}
	if len(h.notify.announced) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(h.notify.announced))
	}
}

func TestStartRejectsSecondSession(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 12}, 0)

	if _, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "earn", Name: "Read", TargetMinutes: 30}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	_, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "earn", Name: "Exercise", TargetMinutes: 20})
	if !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
}

func TestSpendRejectedWhenBalanceShort(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 14}, 4)

	_, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "spend", Name: "Movie", TargetMinutes: 30})
	if !errors.Is(err, apperrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	var detail apperrors.InsufficientBalance
	if !errors.As(err, &detail) {
		t.Fatalf("expected InsufficientBalance detail, got %v", err)
	}
	if detail.Shortfall() != 10 {
		t.Fatalf("shortfall = %v, want 10", detail.Shortfall())
	}
	if len(h.ledger.entries) != 0 {
		t.Fatal("rejected start must not touch the ledger")
	}
}

func TestStartRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 12}, 0)

	if _, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "gamble", Name: "Read", TargetMinutes: 30}); err == nil {
		t.Fatal("expected unknown kind rejection")
	}
}

func TestResetAbandonsSessionWithoutRefund(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeCatalog{xp: 45}, 100)

	if _, err := h.uc.Start(context.Background(), sessiondto.StartInput{Kind: "spend", Name: "Movie", TargetMinutes: 90}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := h.uc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(h.ledger.entries) != 1 {
		t.Fatalf("reset must leave the charge in place, got %d entries", len(h.ledger.entries))
	}
	if _, err := h.uc.GetActive(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}
