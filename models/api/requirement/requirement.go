package requirementapimodels

import (
	"time"

	"github.com/pkg/errors"

	"crewing-backend/models"
	apimodels "crewing-backend/models/api"
	dbmodels "crewing-backend/models/db"
)

type RequirementData struct {
	RoleTitle            string             `json:"role_title"`
	VesselName           string             `json:"vessel_name"`
	VesselType           string             `json:"vessel_type"`
	Region               string             `json:"region"`
	County               string             `json:"county"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              time.Time          `json:"end_date"`
	Urgency              models.UrgencyTier `json:"urgency"`
	MinExperienceYears   int                `json:"min_experience_years"`
	MandatoryCerts       []string           `json:"mandatory_certs"`
	PreferredCerts       []string           `json:"preferred_certs"`
	LanguageRequirements string             `json:"language_requirements"`
	CustomerRequirements string             `json:"customer_requirements"`
}

func (r RequirementData) Validate() error {
	if r.RoleTitle == "" {
		return errors.New("requirement role title is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New("requirement start and end dates are required")
	}
	if !r.EndDate.After(r.StartDate) {
		return errors.New("requirement end date must be after start date")
	}
	if r.MinExperienceYears < 0 {
		return errors.New("minimum experience cannot be negative")
	}
	return nil
}

type RequirementView struct {
	RequirementData
	ID         string                   `json:"id"`
	Status     models.RequirementStatus `json:"status"`
	AuthorID   string                   `json:"author_id"`
	AuthorName string                   `json:"author_name"`
	CreatedAt  time.Time                `json:"created_at"`
}

func RequirementConvert(rec dbmodels.JobRequirement) RequirementView {
	authorName := ""
	if rec.Author != nil {
		authorName = rec.Author.GetFullName()
	}
	return RequirementView{
		RequirementData: RequirementData{
			RoleTitle:            rec.RoleTitle,
			VesselName:           rec.VesselName,
			VesselType:           rec.VesselType,
			Region:               rec.Region,
			County:               rec.County,
			StartDate:            rec.StartDate,
			EndDate:              rec.EndDate,
			Urgency:              rec.Urgency,
			MinExperienceYears:   rec.MinExperienceYears,
			MandatoryCerts:       rec.MandatoryCerts,
			PreferredCerts:       rec.PreferredCerts,
			LanguageRequirements: rec.LanguageRequirements,
			CustomerRequirements: rec.CustomerRequirements,
		},
		ID:         rec.ID,
		Status:     rec.Status,
		AuthorID:   rec.AuthorID,
		AuthorName: authorName,
		CreatedAt:  rec.CreatedAt,
	}
}

type RequirementFilter struct {
	Search  string                   `json:"search"`
	Status  models.RequirementStatus `json:"status"`
	Urgency models.UrgencyTier       `json:"urgency"`
	apimodels.Pagination
}

type StatusChangeData struct {
	Status models.RequirementStatus `json:"status"`
}

func (s StatusChangeData) Validate() error {
	if s.Status == "" {
		return errors.New("target status is required")
	}
	return nil
}
