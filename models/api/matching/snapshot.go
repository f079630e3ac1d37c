package matchingapimodels

import (
	"time"

	"crewing-backend/models"
	dbmodels "crewing-backend/models/db"
)

// CandidateSnapshot is the immutable view of a candidate the evaluator and
// scorer consume. It is assembled from registry rows at evaluation time and
// never written back.
type CandidateSnapshot struct {
	CandidateID       string
	FullName          string
	HomeRegion        string
	HomeCounty        string
	ExperienceYears   int
	PerformanceRating *float64
	StcwConfirmed     bool
	Certificates      []CertificateFact
	Availability      []AvailabilityFact
	Assignments       []AssignmentFact
}

type CertificateFact struct {
	CertType     models.CertificateType
	IssuedAt     time.Time
	ExpiresAt    time.Time
	Verification models.CertVerification
}

type AvailabilityFact struct {
	From time.Time
	To   time.Time
}

type AssignmentFact struct {
	StartDate time.Time
	EndDate   time.Time
	Blocking  bool
}

// HeldCertificate returns the candidate's certificate of the given type with
// the latest expiry, or nil when none is held.
func (s CandidateSnapshot) HeldCertificate(certType models.CertificateType) *CertificateFact {
	var best *CertificateFact
	for idx := range s.Certificates {
		cert := &s.Certificates[idx]
		if cert.CertType != certType {
			continue
		}
		if best == nil || cert.ExpiresAt.After(best.ExpiresAt) {
			best = cert
		}
	}
	return best
}

// CoversPeriod reports whether any availability window fully covers [from, to].
func (s CandidateSnapshot) CoversPeriod(from, to time.Time) bool {
	for _, w := range s.Availability {
		if !w.From.After(from) && !w.To.Before(to) {
			return true
		}
	}
	return false
}

// HasOverlappingAssignment reports whether a blocking assignment intersects [from, to].
func (s CandidateSnapshot) HasOverlappingAssignment(from, to time.Time) bool {
	for _, a := range s.Assignments {
		if a.Blocking && !a.StartDate.After(to) && !a.EndDate.Before(from) {
			return true
		}
	}
	return false
}

func SnapshotConvert(rec dbmodels.Candidate) CandidateSnapshot {
	certs := make([]CertificateFact, 0, len(rec.Certificates))
	for _, c := range rec.Certificates {
		certs = append(certs, CertificateFact{
			CertType:     c.CertType,
			IssuedAt:     c.IssuedAt,
			ExpiresAt:    c.ExpiresAt,
			Verification: c.Verification,
		})
	}
	windows := make([]AvailabilityFact, 0, len(rec.Availability))
	for _, w := range rec.Availability {
		windows = append(windows, AvailabilityFact{From: w.From, To: w.To})
	}
	assignments := make([]AssignmentFact, 0, len(rec.Assignments))
	for _, a := range rec.Assignments {
		assignments = append(assignments, AssignmentFact{
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
			Blocking:  a.Status.IsBlocking(),
		})
	}
	return CandidateSnapshot{
		CandidateID:       rec.ID,
		FullName:          rec.GetFullName(),
		HomeRegion:        rec.HomeRegion,
		HomeCounty:        rec.HomeCounty,
		ExperienceYears:   rec.ExperienceYears,
		PerformanceRating: rec.PerformanceRating,
		StcwConfirmed:     rec.StcwConfirmed,
		Certificates:      certs,
		Availability:      windows,
		Assignments:       assignments,
	}
}

// RequirementFacts is the read-only slice of a requirement the evaluator needs.
type RequirementFacts struct {
	RequirementID      string
	Region             string
	County             string
	StartDate          time.Time
	EndDate            time.Time
	MinExperienceYears int
	MandatoryCerts     []models.CertificateType
	PreferredCerts     []models.CertificateType
}

func RequirementFactsConvert(rec dbmodels.JobRequirement) RequirementFacts {
	return RequirementFacts{
		RequirementID:      rec.ID,
		Region:             rec.Region,
		County:             rec.County,
		StartDate:          rec.StartDate,
		EndDate:            rec.EndDate,
		MinExperienceYears: rec.MinExperienceYears,
		MandatoryCerts:     rec.MandatoryCertTypes(),
		PreferredCerts:     rec.PreferredCertTypes(),
	}
}
