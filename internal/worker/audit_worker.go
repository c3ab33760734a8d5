package worker

import (
	"github.com/spec-kit/nmt-console/internal/service"
)

// StartAuditWorker registers the session audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
