package domain

import (
	"fmt"
	"strings"

	apperrors "questlog/internal/platform/errors"
)

// Collection names the two independent definition sets. Tasks earn XP,
// rewards cost XP; both share the Definition shape but are never mixed.
type Collection string

const (
	CollectionTasks   Collection = "tasks"
	CollectionRewards Collection = "rewards"
)

func (c Collection) Validate() error {
	switch c {
	case CollectionTasks, CollectionRewards:
		return nil
	default:
		return fmt.Errorf("unsupported collection %q", string(c))
	}
}

// Definition is a named rule for converting time into XP. BaseMinutes is
// the threshold at which BaseXP applies exactly; Multiplier compounds
// value for time beyond the threshold.
type Definition struct {
	Name        string
	BaseMinutes int
	BaseXP      float64
	Multiplier  float64
}

func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidDefinition)
	}
	if d.BaseMinutes < 1 {
		return fmt.Errorf("%w: base minutes must be at least 1", apperrors.ErrInvalidDefinition)
	}
	if d.BaseXP <= 0 {
		return fmt.Errorf("%w: base xp must be positive", apperrors.ErrInvalidDefinition)
	}
	if d.Multiplier < 1 {
		return fmt.Errorf("%w: multiplier must be at least 1", apperrors.ErrInvalidDefinition)
	}
	return nil
}
