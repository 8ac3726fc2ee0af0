package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDefinition   = errors.New("invalid definition")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrEmptyLedger         = errors.New("ledger is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPersistence         = errors.New("persistence failure")
)

// InsufficientBalance carries the shortfall so callers can report
// exactly how much XP is missing.
type InsufficientBalance struct {
	Required  float64
	Available float64
}

func (e InsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: required %.2f, available %.2f (short %.2f)", e.Required, e.Available, e.Shortfall())
}

func (e InsufficientBalance) Shortfall() float64 {
	return e.Required - e.Available
}

func (e InsufficientBalance) Is(target error) bool {
	return target == ErrInsufficientBalance
}
