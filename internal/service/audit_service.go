package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/domain"
	"github.com/spec-kit/nmt-console/internal/events"
	"github.com/spec-kit/nmt-console/internal/observability"
	"github.com/spec-kit/nmt-console/internal/repository"
)

// DefaultAuditLimit caps audit listings.
const DefaultAuditLimit = 100

// AuditService records session transitions.
type AuditService struct {
	dispatcher events.Dispatcher
	repo       repository.AuditRepository
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuditService creates the service. repo may be nil, in which case
// transitions are only counted and logged.
func NewAuditService(dispatcher events.Dispatcher, repo repository.AuditRepository, metrics *observability.Metrics, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		repo:       repo,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to session events.
func (s *AuditService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventSessionLogin,
		events.EventSessionLoginFailed,
		events.EventSessionLogout,
		events.EventSessionExpired,
	} {
		s.dispatcher.Subscribe(eventType, s.handleSessionEvent)
	}
}

// Enabled reports whether entries are persisted.
func (s *AuditService) Enabled() bool {
	return s.repo != nil
}

// Recent lists persisted entries, newest first, optionally for one user.
func (s *AuditService) Recent(ctx context.Context, userID string, limit int) ([]domain.AuditEntry, error) {
	if s.repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *AuditService) handleSessionEvent(ctx context.Context, event events.Event) error {
	s.metrics.RecordSessionEvent(string(event.Type))
	s.logger.Debug("session event",
		zap.String("event", string(event.Type)),
		zap.String("user_id", event.Actor.UserID),
		zap.String("remote_addr", event.RemoteAddr))

	if s.repo == nil {
		return nil
	}

	entry := &domain.AuditEntry{
		ID:         event.ID,
		Action:     string(event.Type),
		UserID:     event.Actor.UserID,
		Username:   event.Actor.Username,
		Role:       event.Actor.Role,
		RemoteAddr: event.RemoteAddr,
		Detail:     detailString(event.Payload),
		OccurredAt: event.Timestamp,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record %s: %w", event.Type, err)
	}
	return nil
}

func detailString(payload any) string {
	if payload == nil {
		return ""
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}
