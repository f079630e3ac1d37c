package dbmodels

import (
	"time"

	"crewing-backend/models"
)

// Assignment is owned by the external assignment system; the engine only reads
// these rows to detect overlapping deployments.
type Assignment struct {
	BaseModel
	CandidateID   string `gorm:"type:varchar(36);index"`
	RequirementID string `gorm:"type:varchar(36)"`
	VesselName    string `gorm:"type:varchar(255)"`
	RoleTitle     string `gorm:"type:varchar(255)"`
	StartDate     time.Time
	EndDate       time.Time
	Status        models.AssignmentStatus `gorm:"type:varchar(50)"`
}

// Overlaps reports whether the assignment occupies any day in [from, to].
func (a Assignment) Overlaps(from, to time.Time) bool {
	if !a.Status.IsBlocking() {
		return false
	}
	return !a.StartDate.After(to) && !a.EndDate.Before(from)
}
