package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrNotifierDisabled = errors.New("notifier is disabled")
	ErrChecksumMismatch = errors.New("notifier checksum mismatch")
	ErrNotifierTimeout  = errors.New("notifier timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one out-of-process notifier binary. SHA256 is
// optional; when set, the binary is verified before every launch.
type Manifest struct {
	Name    string `json:"name"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256,omitempty"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if m.SHA256 != "" && !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// Event is the completion announcement sent to notifiers when a timed
// session finishes.
type Event struct {
	Kind        string
	Name        string
	Minutes     int
	Amount      float64
	CompletedAt time.Time
}
