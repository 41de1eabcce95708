package domain

import "time"

// AuditAction names the journal mutation an audit entry records.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditApprove AuditAction = "APPROVE"
	AuditPost    AuditAction = "POST"
	AuditReverse AuditAction = "REVERSE"
)

// AuditLog is an append-only record of one journal mutation.
type AuditLog struct {
	AuditID   string         `json:"auditID"`
	EntityID  string         `json:"entityID"`
	JournalID string         `json:"journalID"`
	Action    AuditAction    `json:"action"`
	ActorID   string         `json:"actorID"`
	OldValues map[string]any `json:"oldValues,omitempty"`
	NewValues map[string]any `json:"newValues,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
