package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"questlog/internal/modules/notify/domain"
	"questlog/internal/modules/notify/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	announced []domain.Event
	fail      map[string]error
}

func (h *fakeHost) Describe(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}

func (h *fakeHost) Announce(_ context.Context, m domain.Manifest, event domain.Event) error {
	if err := h.fail[m.Name]; err != nil {
		return err
	}
	h.announced = append(h.announced, event)
	return nil
}

func TestAnnounceSkipsDisabledNotifiers(t *testing.T) {
	t.Parallel()
	enabled := manifestWithBinary(t, "loud", true)
	disabled := manifestWithBinary(t, "quiet", false)
	host := &fakeHost{}
	svc := service.NewNotifyService(fakeStore{manifests: []domain.Manifest{enabled, disabled}}, host)

	err := svc.Announce(context.Background(), domain.Event{Kind: "earn", Name: "Read", Minutes: 30, Amount: 12, CompletedAt: time.Now()})
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if len(host.announced) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(host.announced))
	}
}

func TestAnnounceRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "tampered", true)
	manifest.SHA256 = "0000000000000000000000000000000000000000000000000000000000000000"
	host := &fakeHost{}
	svc := service.NewNotifyService(fakeStore{manifests: []domain.Manifest{manifest}}, host)

	err := svc.Announce(context.Background(), domain.Event{Kind: "earn", Name: "Read", Minutes: 30, Amount: 12, CompletedAt: time.Now()})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	if len(host.announced) != 0 {
		t.Fatalf("tampered notifier must not be launched")
	}
}

func TestAnnounceContinuesPastBrokenNotifier(t *testing.T) {
	t.Parallel()
	broken := manifestWithBinary(t, "broken", true)
	working := manifestWithBinary(t, "working", true)
	host := &fakeHost{fail: map[string]error{"broken": domain.ErrNotifierTimeout}}
	svc := service.NewNotifyService(fakeStore{manifests: []domain.Manifest{broken, working}}, host)

	err := svc.Announce(context.Background(), domain.Event{Kind: "spend", Name: "Movie", Minutes: 90, Amount: 45, CompletedAt: time.Now()})
	if !errors.Is(err, domain.ErrNotifierTimeout) {
		t.Fatalf("expected joined timeout error, got %v", err)
	}
	if len(host.announced) != 1 {
		t.Fatalf("working notifier must still be called, got %d announcements", len(host.announced))
	}
}

func TestAnnounceRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	first := manifestWithBinary(t, "twin", true)
	second := manifestWithBinary(t, "twin", true)
	svc := service.NewNotifyService(fakeStore{manifests: []domain.Manifest{first, second}}, &fakeHost{})

	err := svc.Announce(context.Background(), domain.Event{Kind: "earn", Name: "Read", Minutes: 30, Amount: 12, CompletedAt: time.Now()})
	if err == nil {
		t.Fatal("expected duplicate name rejection")
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	t.Parallel()
	manifest := domain.Manifest{Name: "ghost", Binary: filepath.Join(t.TempDir(), "missing"), Enabled: true}
	svc := service.NewNotifyService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].BinaryReachable {
		t.Fatal("missing binary reported as reachable")
	}
}

func manifestWithBinary(t *testing.T, name string, enabled bool) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "notifier-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:    name,
		Binary:  binPath,
		SHA256:  hex.EncodeToString(hash[:]),
		Enabled: enabled,
	}
}
