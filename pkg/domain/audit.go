package domain

import "time"

// AuditLog is a write-once record of a back-office action. Every successful
// transfer produces exactly one entry referencing the new transaction ID.
type AuditLog struct {
	ID          int64
	EntityName  string
	EntityID    string
	Action      string
	PerformedBy string
	Timestamp   time.Time
	Details     string
}
