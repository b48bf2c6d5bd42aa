package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"inventory/internal/repository"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func (r *AuditLogRepository) PersistLog(ctx context.Context, auditlog models.AuditLog, auditLogData interface{}) error {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	record := goqu.Record{
		"id":            uuid.NewString(),
		"resource_id":   auditlog.ResourceID,
		"resource_type": auditlog.ResourceType,
		"action":        auditlog.Action,
		"data":          string(dataJSON),
	}
	if auditlog.UserID != nil {
		record["user_id"] = *auditlog.UserID
	}

	_, err = r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(record).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) CountResourceLog(ctx context.Context, resourceType, resourceID string) (int64, error) {
	return r.repository.GoquDBWrapper.
		From("audit_logs").
		Where(goqu.Ex{
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		CountContext(ctx)
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}
