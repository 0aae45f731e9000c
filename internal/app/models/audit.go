package models

import (
	"time"
)

// Audit action types written by privileged admin mutations
const (
	AuditApproveOrganization = "approve_organization"
	AuditRejectOrganization  = "reject_organization"
	AuditBanUser             = "ban_user"
	AuditUnbanUser           = "unban_user"
	AuditDeleteUser          = "delete_user"
	AuditModerateJob         = "moderate_job"
	AuditDeleteJob           = "delete_job"
	AuditHandleReport        = "handle_report"
)

// AuditLogEntry defines a row of the append-only 'audit_logs' table
type AuditLogEntry struct {
	ID         int64                  `json:"id" db:"id"`
	AdminID    int64                  `json:"adminId" db:"admin_id"`
	ActionType string                 `json:"actionType" db:"action_type" example:"approve_organization"`
	TargetType string                 `json:"targetType" db:"target_type" example:"organization_approval"`
	TargetID   int64                  `json:"targetId" db:"target_id"`
	OldValues  map[string]interface{} `json:"oldValues,omitempty" db:"old_values"` // Snapshot before the mutation (JSONB)
	NewValues  map[string]interface{} `json:"newValues,omitempty" db:"new_values"` // Snapshot after the mutation (JSONB)
	CreatedAt  time.Time              `json:"createdAt" db:"created_at"`
	Admin      *User                  `json:"admin,omitempty"` // Relation, no db tag
}
