package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"questlog/internal/modules/notify/domain"
	"questlog/internal/modules/notify/dto"
	notifyout "questlog/internal/modules/notify/port/out"
)

type NotifyService struct {
	store notifyout.ManifestStore
	host  notifyout.Host
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host) *NotifyService {
	return &NotifyService{store: store, host: host}
}

func (s *NotifyService) List(ctx context.Context) ([]dto.NotifierOutput, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotifierOutput, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.NotifierOutput{Name: m.Name, Binary: m.Binary, Enabled: m.Enabled})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		if result.BinaryReachable && result.ChecksumValid && m.Enabled {
			if _, err := s.host.Describe(ctx, m); err != nil {
				result.Error = err.Error()
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Announce fans the event out to every enabled notifier. One broken
// notifier does not stop the others; all failures are joined.
func (s *NotifyService) Announce(ctx context.Context, event domain.Event) error {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name, err))
			continue
		}
		if err := s.host.Announce(ctx, m, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate notifier name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	if expected == "" {
		return nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read notifier binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return domain.ErrChecksumMismatch
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
