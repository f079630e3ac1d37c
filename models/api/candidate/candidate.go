package candidateapimodels

import (
	"time"

	"github.com/pkg/errors"

	"crewing-backend/models"
	apimodels "crewing-backend/models/api"
	dbmodels "crewing-backend/models/db"
)

type CandidateData struct {
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	MiddleName        string   `json:"middle_name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	RoleTitle         string   `json:"role_title"`
	HomeRegion        string   `json:"home_region"`
	HomeCounty        string   `json:"home_county"`
	ExperienceYears   int      `json:"experience_years"`
	PerformanceRating *float64 `json:"performance_rating"`
	StcwConfirmed     bool     `json:"stcw_confirmed"`
	Comment           string   `json:"comment"`
}

func (c CandidateData) Validate() error {
	if c.LastName == "" {
		return errors.New("candidate last name is required")
	}
	if c.RoleTitle == "" {
		return errors.New("candidate role title is required")
	}
	if c.ExperienceYears < 0 {
		return errors.New("experience years cannot be negative")
	}
	if c.PerformanceRating != nil && (*c.PerformanceRating < 0 || *c.PerformanceRating > 5) {
		return errors.New("performance rating must be between 0 and 5")
	}
	return nil
}

type CertificateData struct {
	CertType  models.CertificateType `json:"cert_type"`
	IssuedAt  time.Time              `json:"issued_at"`
	ExpiresAt time.Time              `json:"expires_at"`
}

func (c CertificateData) Validate() error {
	if c.CertType == "" {
		return errors.New("certificate type is required")
	}
	if !c.ExpiresAt.After(c.IssuedAt) {
		return errors.New("certificate expiry must be after issue date")
	}
	return nil
}

type AvailabilityData struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (a AvailabilityData) Validate() error {
	if !a.To.After(a.From) {
		return errors.New("availability window end must be after its start")
	}
	return nil
}

type CandidateView struct {
	CandidateData
	ID           string                 `json:"id"`
	FullName     string                 `json:"full_name"`
	Status       models.CandidateStatus `json:"status"`
	Certificates []CertificateView      `json:"certificates"`
	Availability []AvailabilityView     `json:"availability"`
	CreatedAt    time.Time              `json:"created_at"`
}

type CertificateView struct {
	CertificateData
	ID           string                  `json:"id"`
	Verification models.CertVerification `json:"verification"`
}

type AvailabilityView struct {
	AvailabilityData
	ID string `json:"id"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	certs := make([]CertificateView, 0, len(rec.Certificates))
	for _, c := range rec.Certificates {
		certs = append(certs, CertificateView{
			CertificateData: CertificateData{
				CertType:  c.CertType,
				IssuedAt:  c.IssuedAt,
				ExpiresAt: c.ExpiresAt,
			},
			ID:           c.ID,
			Verification: c.Verification,
		})
	}
	windows := make([]AvailabilityView, 0, len(rec.Availability))
	for _, w := range rec.Availability {
		windows = append(windows, AvailabilityView{
			AvailabilityData: AvailabilityData{From: w.From, To: w.To},
			ID:               w.ID,
		})
	}
	return CandidateView{
		CandidateData: CandidateData{
			FirstName:         rec.FirstName,
			LastName:          rec.LastName,
			MiddleName:        rec.MiddleName,
			Email:             rec.Email,
			Phone:             rec.Phone,
			RoleTitle:         rec.RoleTitle,
			HomeRegion:        rec.HomeRegion,
			HomeCounty:        rec.HomeCounty,
			ExperienceYears:   rec.ExperienceYears,
			PerformanceRating: rec.PerformanceRating,
			StcwConfirmed:     rec.StcwConfirmed,
			Comment:           rec.Comment,
		},
		ID:           rec.ID,
		FullName:     rec.GetFullName(),
		Status:       rec.Status,
		Certificates: certs,
		Availability: windows,
		CreatedAt:    rec.CreatedAt,
	}
}

type CandidateFilter struct {
	Search     string                 `json:"search"`
	Status     models.CandidateStatus `json:"status"`
	HomeRegion string                 `json:"home_region"`
	apimodels.Pagination
}
