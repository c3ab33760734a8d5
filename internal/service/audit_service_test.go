package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/domain"
	"github.com/spec-kit/nmt-console/internal/events"
	"github.com/spec-kit/nmt-console/internal/observability"
)

type memoryAuditRepo struct {
	entries []domain.AuditEntry
	err     error
	limit   int
}

func (m *memoryAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryAuditRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.AuditEntry, error) {
	m.limit = limit
	var out []domain.AuditEntry
	for _, e := range m.entries {
		if userID == "" || e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditServiceRecordsSessionEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	repo := &memoryAuditRepo{}
	metrics := observability.NewMetrics()
	svc := NewAuditService(dispatcher, repo, metrics, zap.NewNop())
	svc.RegisterHandlers()

	actor := events.Actor{UserID: "u-1", Username: "ana", Role: domain.RoleAdmin}
	login := events.NewEvent(events.EventSessionLogin, actor, events.LoginPayload{Remember: true})
	login.RemoteAddr = "10.0.0.1"
	if err := dispatcher.Publish(context.Background(), login); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventSessionLogout, actor, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(repo.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.entries))
	}
	first := repo.entries[0]
	if first.Action != "session_login" || first.Detail != `{"remember":true}` || first.RemoteAddr != "10.0.0.1" || first.ID != login.ID {
		t.Fatalf("unexpected entry %+v", first)
	}
	if repo.entries[1].Detail != "" {
		t.Fatalf("expected empty detail for logout, got %q", repo.entries[1].Detail)
	}
	if got := metrics.SessionEvents("session_login"); got != 1 {
		t.Fatalf("expected 1 login counted, got %d", got)
	}

	entries, err := svc.Recent(context.Background(), "u-1", 0)
	if err != nil || len(entries) != 2 {
		t.Fatalf("unexpected recent entries %v err=%v", entries, err)
	}
	if repo.limit != DefaultAuditLimit {
		t.Fatalf("expected default limit, got %d", repo.limit)
	}
}

func TestAuditServiceSurfacesRepositoryErrors(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	repo := &memoryAuditRepo{err: errors.New("db down")}
	NewAuditService(dispatcher, repo, nil, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventSessionExpired, events.Actor{}, nil))
	if err == nil {
		t.Fatal("expected repository error from publish")
	}
}

func TestAuditServiceWithoutRepository(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuditService(dispatcher, nil, nil, zap.NewNop())
	svc.RegisterHandlers()

	if svc.Enabled() {
		t.Fatal("expected audit disabled")
	}
	if err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventSessionLogin, events.Actor{}, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
