package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a ledger entry: Earn adds XP, Spend removes it.
type Kind string

const (
	KindEarn  Kind = "earn"
	KindSpend Kind = "spend"
)

func (k Kind) Validate() error {
	switch k {
	case KindEarn, KindSpend:
		return nil
	default:
		return fmt.Errorf("unsupported entry kind %q", string(k))
	}
}

// Entry is one immutable Earn/Spend event. Entries are appended in
// non-decreasing timestamp order; the only lifecycle events after append
// are removal of the most recent entry and full clear.
type Entry struct {
	At      time.Time
	Kind    Kind
	Name    string
	Minutes int
	Amount  float64
}

func (e Entry) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if e.At.IsZero() {
		return fmt.Errorf("entry timestamp is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entry name is required")
	}
	if e.Minutes < 1 {
		return fmt.Errorf("entry minutes must be at least 1")
	}
	if e.Amount < 0 {
		return fmt.Errorf("entry amount must be non-negative")
	}
	return nil
}

// Signed returns the entry's contribution to the balance.
func (e Entry) Signed() float64 {
	if e.Kind == KindSpend {
		return -e.Amount
	}
	return e.Amount
}
