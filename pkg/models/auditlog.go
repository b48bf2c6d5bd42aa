package models

// AuditLog describes the resource an audit entry is about. The payload is
// passed separately and stored as JSON.
type AuditLog struct {
	ResourceID   string  `json:"resource_id" db:"resource_id"`
	ResourceType string  `json:"resource_type" db:"resource_type"`
	Action       string  `json:"action" db:"action"` // check_out, check_in, ...
	UserID       *string `json:"user_id,omitempty" db:"user_id"`
}
