package model

import "time"

// Action identifies the sensitive operation an audit event records.
type Action string

const (
	ActionCreateUser   Action = "CREATE_USER"
	ActionStoreSecret  Action = "STORE_SECRET"
	ActionListSecrets  Action = "LIST_SECRETS"
	ActionReadSecret   Action = "READ_SECRET"
	ActionRotateSecret Action = "ROTATE_SECRET"
)

// AuditEvent is one row of the append-only audit trail. Rows are never
// updated or deleted; ordering by timestamp is the sole retrieval
// guarantee.
type AuditEvent struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Username  string    `gorm:"column:username" json:"username"`
	Action    Action    `gorm:"column:action" json:"action"`
	Target    string    `gorm:"column:target" json:"target"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (AuditEvent) TableName() string {
	return "audit_logs"
}
