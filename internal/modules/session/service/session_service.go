package service

import (
	"context"
	"time"

	"questlog/internal/modules/session/domain"
	"questlog/internal/platform/clock"
	"questlog/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

func (s *SessionService) Start(_ context.Context, kind domain.Kind, name string, targetMinutes int, amount float64) (domain.ActiveSession, error) {
	session := domain.ActiveSession{
		SessionID:     s.idGen.New(),
		Kind:          kind,
		Name:          name,
		TargetMinutes: targetMinutes,
		Amount:        amount,
		StartedAt:     s.clock.Now(),
	}
	if err := session.Validate(); err != nil {
		return domain.ActiveSession{}, err
	}
	return session, nil
}

func (s *SessionService) Observe(session domain.ActiveSession) domain.Progress {
	return session.ProgressAt(s.clock.Now())
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}
