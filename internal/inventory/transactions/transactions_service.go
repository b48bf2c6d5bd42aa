package transactions

import (
	"context"
	"fmt"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
	"strings"
)

type StateRepository interface {
	ApplyTransition(ctx context.Context, req models.CommitRequest) error
}

type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable, userID string)
}

// TransactionService is the backend side of a cart commit: one call, one
// asset, one state change.
type TransactionService struct {
	repo     StateRepository
	auditLog auditLogger
}

func NewTransactionService(repo StateRepository, auditLog auditLogger) *TransactionService {
	return &TransactionService{repo: repo, auditLog: auditLog}
}

func (s *TransactionService) CommitOne(ctx context.Context, req models.CommitRequest) error {
	if !req.Direction.IsValid() {
		return fmt.Errorf("unsupported direction %q", req.Direction)
	}
	if req.AssetID == "" {
		return fmt.Errorf("asset id is required")
	}

	if err := s.repo.ApplyTransition(ctx, req); err != nil {
		return err
	}

	s.auditLog.Log(ctx, actionFor(req), req.Metadata, req, req.PerformedBy.ID)

	return nil
}

// actionFor gives the audit action, "check_out" or "check_in".
func actionFor(req models.CommitRequest) string {
	return strings.ToLower(req.Direction.String())
}
