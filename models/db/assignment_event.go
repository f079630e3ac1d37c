package dbmodels

import (
	"time"
)

// AssignmentEvent is the outbox row emitted when a checklist reaches APPROVED.
// The external assignment system consumes these; the dispatch worker notifies
// staffing and marks the row processed.
type AssignmentEvent struct {
	BaseModel
	EventID       string `gorm:"type:varchar(36);uniqueIndex"`
	ChecklistID   string `gorm:"type:varchar(36);index"`
	RequirementID string `gorm:"type:varchar(36)"`
	CandidateID   string `gorm:"type:varchar(36)"`
	ApprovedBy    string `gorm:"type:varchar(36)"`
	ApprovedAt    time.Time
	DispatchedAt  *time.Time `gorm:"index"`
}
