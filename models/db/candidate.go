package dbmodels

import (
	"fmt"
	"strings"
	"time"

	"crewing-backend/models"
)

type Candidate struct {
	BaseModel
	FirstName         string `gorm:"type:varchar(255)"`
	LastName          string `gorm:"type:varchar(255)"`
	MiddleName        string `gorm:"type:varchar(255)"`
	Email             string `gorm:"type:varchar(255)"`
	Phone             string `gorm:"type:varchar(255)"`
	RoleTitle         string `gorm:"type:varchar(255)"` // seafarer rank, e.g. "Able Seaman"
	HomeRegion        string `gorm:"type:varchar(255);index"`
	HomeCounty        string `gorm:"type:varchar(255)"`
	ExperienceYears   int
	PerformanceRating *float64 // 0..5, null until first appraisal
	StcwConfirmed     bool
	Status            models.CandidateStatus `gorm:"type:varchar(50);index"`
	Comment           string

	Certificates []CandidateCertificate `gorm:"foreignKey:CandidateID"`
	Availability []AvailabilityWindow   `gorm:"foreignKey:CandidateID"`
	Assignments  []Assignment           `gorm:"foreignKey:CandidateID"`
}

func (c Candidate) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", c.FirstName, c.LastName))
}

type CandidateCertificate struct {
	BaseModel
	CandidateID  string                 `gorm:"type:varchar(36);index"`
	CertType     models.CertificateType `gorm:"type:varchar(100)"`
	IssuedAt     time.Time
	ExpiresAt    time.Time
	Verification models.CertVerification `gorm:"type:varchar(50)"`
	DocumentRef  string                  `gorm:"type:varchar(255)"` // reference into the external document store
}

type AvailabilityWindow struct {
	BaseModel
	CandidateID string `gorm:"type:varchar(36);index"`
	From        time.Time
	To          time.Time
}

// Covers reports whether the window fully contains [from, to].
func (w AvailabilityWindow) Covers(from, to time.Time) bool {
	return !w.From.After(from) && !w.To.Before(to)
}
