package usecase

import (
	"context"
	"errors"

	catalogdto "questlog/internal/modules/catalog/dto"
	catalogin "questlog/internal/modules/catalog/port/in"
	ledgerdto "questlog/internal/modules/ledger/dto"
	ledgerin "questlog/internal/modules/ledger/port/in"
	notifydto "questlog/internal/modules/notify/dto"
	notifyin "questlog/internal/modules/notify/port/in"
	"questlog/internal/modules/session/domain"
	sessiondto "questlog/internal/modules/session/dto"
	sessionin "questlog/internal/modules/session/port/in"
	sessionout "questlog/internal/modules/session/port/out"
	"questlog/internal/modules/session/service"
	apperrors "questlog/internal/platform/errors"
)

// Interactor drives the idle -> running -> idle lifecycle. Spend
// sessions charge the ledger at start; Earn sessions write their entry
// only when Tick observes completion.
type Interactor struct {
	svc         *service.SessionService
	catalog     catalogin.Usecase
	ledger      ledgerin.Usecase
	notify      notifyin.Usecase
	activeStore sessionout.ActiveSessionStore
}

func NewInteractor(svc *service.SessionService, catalog catalogin.Usecase, ledger ledgerin.Usecase, notify notifyin.Usecase, activeStore sessionout.ActiveSessionStore) sessionin.Usecase {
	return &Interactor{svc: svc, catalog: catalog, ledger: ledger, notify: notify, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	kind := domain.Kind(input.Kind)
	if err := kind.Validate(); err != nil {
		return sessiondto.StartOutput{}, err
	}
	if _, err := i.activeStore.LoadActive(ctx); err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.StartOutput{}, err
	}

	appraisal, err := i.catalog.Appraise(ctx, catalogdto.AppraiseInput{
		Collection: collectionFor(kind),
		Name:       input.Name,
		Minutes:    input.TargetMinutes,
	})
	if err != nil {
		return sessiondto.StartOutput{}, err
	}

	charged := false
	if kind == domain.KindSpend {
		balance, err := i.ledger.Balance(ctx)
		if err != nil {
			return sessiondto.StartOutput{}, err
		}
		if appraisal.XP > balance {
			return sessiondto.StartOutput{}, apperrors.InsufficientBalance{Required: appraisal.XP, Available: balance}
		}
	}

	active, err := i.svc.Start(ctx, kind, appraisal.Name, input.TargetMinutes, appraisal.XP)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}

	// Spend is charged up front: the cost entry lands before the reward
	// window opens. There is no transaction spanning the ledger append
	// and the active-session write; a crash between the two leaves the
	// charge recorded with no session marked active.
	if kind == domain.KindSpend {
		if _, err := i.ledger.Record(ctx, ledgerdto.RecordInput{
			At:      active.StartedAt,
			Kind:    string(kind),
			Name:    active.Name,
			Minutes: active.TargetMinutes,
			Amount:  active.Amount,
		}); err != nil {
			return sessiondto.StartOutput{}, err
		}
		charged = true
	}

	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}

	return sessiondto.StartOutput{
		SessionID:     active.SessionID,
		Kind:          string(active.Kind),
		Name:          active.Name,
		TargetMinutes: active.TargetMinutes,
		Amount:        active.Amount,
		Partial:       appraisal.Partial,
		Charged:       charged,
		StartedAt:     active.StartedAt,
	}, nil
}

// Tick is the cooperative countdown observation. While time remains it
// is a pure read; the tick that first sees remaining hit zero performs
// the completion transition.
func (i *Interactor) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.TickOutput{}, err
	}
	progress := i.svc.Observe(active)
	out := sessiondto.TickOutput{
		SessionID:        active.SessionID,
		Kind:             string(active.Kind),
		Name:             active.Name,
		TargetMinutes:    active.TargetMinutes,
		Amount:           active.Amount,
		RemainingSeconds: progress.RemainingSeconds,
		Fraction:         progress.Fraction,
		Completed:        progress.Completed,
	}
	if !progress.Completed {
		return out, nil
	}
	if err := i.complete(ctx, active); err != nil {
		return sessiondto.TickOutput{}, err
	}
	return out, nil
}

func (i *Interactor) complete(ctx context.Context, active domain.ActiveSession) error {
	if active.Kind == domain.KindEarn {
		if _, err := i.ledger.Record(ctx, ledgerdto.RecordInput{
			At:      i.svc.Now(),
			Kind:    string(active.Kind),
			Name:    active.Name,
			Minutes: active.TargetMinutes,
			Amount:  active.Amount,
		}); err != nil {
			return err
		}
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return err
	}
	if i.notify != nil {
		// Best effort; a broken notifier must not disturb the transition.
		_ = i.notify.Announce(ctx, notifydto.AnnounceInput{
			Kind:        string(active.Kind),
			Name:        active.Name,
			Minutes:     active.TargetMinutes,
			Amount:      active.Amount,
			CompletedAt: i.svc.Now(),
		})
	}
	return nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	return sessiondto.ActiveOutput{
		SessionID:     active.SessionID,
		Kind:          string(active.Kind),
		Name:          active.Name,
		TargetMinutes: active.TargetMinutes,
		Amount:        active.Amount,
		StartedAt:     active.StartedAt,
	}, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.activeStore.ClearActive(ctx)
}

func collectionFor(kind domain.Kind) string {
	if kind == domain.KindSpend {
		return "rewards"
	}
	return "tasks"
}
