package auditlog

import (
	"context"
	"inventory/pkg/models"

	"go.uber.org/zap"
)

type Repository interface {
	PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	r      Repository
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log records action against item. Failures are logged and swallowed: the
// state change it describes has already happened.
func (a *Auditlog) Log(ctx context.Context, action string, data interface{}, item Auditable, userID string) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	if userID != "" {
		auditLog.UserID = &userID
	}

	if err := a.r.PersistLog(ctx, auditLog, data); err != nil {
		a.logger.Error("Unable to create audit log entry",
			zap.String("resource_id", auditLog.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Created audit log entry", zap.String("resource_id", auditLog.ResourceID), zap.String("action", action))
}

func NewAuditLog(repository Repository, logger *zap.Logger) *Auditlog {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Auditlog{r: repository, logger: logger}
}
