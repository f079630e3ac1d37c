package dbmodels

import (
	"time"

	"github.com/lib/pq"

	"crewing-backend/models"
)

type JobRequirement struct {
	BaseModel
	RoleTitle            string `gorm:"type:varchar(255)"`
	VesselName           string `gorm:"type:varchar(255)"`
	VesselType           string `gorm:"type:varchar(255)"`
	Region               string `gorm:"type:varchar(255)"`
	County               string `gorm:"type:varchar(255)"`
	StartDate            time.Time
	EndDate              time.Time
	Urgency              models.UrgencyTier `gorm:"type:varchar(50)"`
	MinExperienceYears   int
	MandatoryCerts       pq.StringArray `gorm:"type:text[]"`
	PreferredCerts       pq.StringArray `gorm:"type:text[]"`
	LanguageRequirements string
	CustomerRequirements string
	Status               models.RequirementStatus `gorm:"type:varchar(50);index"`
	AuthorID             string                   `gorm:"type:varchar(36)"`
	Author               *StaffUser               `gorm:"foreignKey:AuthorID"`
}

func (r JobRequirement) MandatoryCertTypes() []models.CertificateType {
	return toCertTypes(r.MandatoryCerts)
}

func (r JobRequirement) PreferredCertTypes() []models.CertificateType {
	return toCertTypes(r.PreferredCerts)
}

func toCertTypes(list pq.StringArray) []models.CertificateType {
	result := make([]models.CertificateType, 0, len(list))
	for _, v := range list {
		result = append(result, models.CertificateType(v))
	}
	return result
}
