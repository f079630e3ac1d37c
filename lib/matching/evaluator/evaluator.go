package evaluator

import (
	"time"

	"crewing-backend/models"
	matchingapimodels "crewing-backend/models/api/matching"
)

// CertExpiryWarnDays is the window after contract start within which a held
// mandatory certificate's expiry raises a warning instead of passing silently.
const CertExpiryWarnDays = 30

// Result collects every eligibility finding for one candidate against one
// requirement. Rules never short-circuit: a candidate sees all problems at once.
type Result struct {
	Blockers []models.MatchToken
	Warnings []models.MatchToken
	Reasons  []models.MatchToken
}

func (r Result) CanAssign() bool {
	return len(r.Blockers) == 0
}

// Evaluate applies every eligibility rule independently and collects the
// outcome. It is a pure function of its inputs.
func Evaluate(snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts) Result {
	result := Result{
		Blockers: []models.MatchToken{},
		Warnings: []models.MatchToken{},
		Reasons:  []models.MatchToken{},
	}

	allMandatoryOk := true
	for _, certType := range req.MandatoryCerts {
		cert := snap.HeldCertificate(certType)
		if cert == nil {
			result.Blockers = append(result.Blockers, models.MissingCertificateToken(certType))
			allMandatoryOk = false
			continue
		}
		if cert.ExpiresAt.Before(req.StartDate) {
			result.Blockers = append(result.Blockers, models.ExpiredCertificateToken(certType))
			allMandatoryOk = false
			continue
		}
		warnCutoff := req.StartDate.AddDate(0, 0, CertExpiryWarnDays)
		if cert.ExpiresAt.Before(warnCutoff) {
			days := daysBetween(req.StartDate, cert.ExpiresAt)
			result.Warnings = append(result.Warnings, models.CertExpiringSoonToken(certType, days))
		}
	}
	if allMandatoryOk && len(req.MandatoryCerts) > 0 {
		result.Reasons = append(result.Reasons, models.CertificateMatchToken())
	}

	for _, certType := range req.PreferredCerts {
		cert := snap.HeldCertificate(certType)
		if cert == nil || cert.ExpiresAt.Before(req.StartDate) {
			result.Warnings = append(result.Warnings, models.NoPreferredCertToken(certType))
		}
	}

	if snap.CoversPeriod(req.StartDate, req.EndDate) {
		result.Reasons = append(result.Reasons, models.AvailabilityMatchToken())
	} else {
		result.Blockers = append(result.Blockers, models.UnavailableDateRangeToken())
	}

	if snap.HasOverlappingAssignment(req.StartDate, req.EndDate) {
		result.Blockers = append(result.Blockers, models.AlreadyAssignedToken())
	}

	if !snap.StcwConfirmed {
		result.Blockers = append(result.Blockers, models.StcwNotConfirmedToken())
	}

	if snap.ExperienceYears < req.MinExperienceYears {
		result.Warnings = append(result.Warnings, models.LimitedExperienceToken())
	} else if req.MinExperienceYears > 0 {
		result.Reasons = append(result.Reasons, models.ExperienceMatchToken())
	}

	if snap.HomeRegion != "" && snap.HomeRegion == req.Region {
		result.Reasons = append(result.Reasons, models.LocationMatchToken())
	}

	return result
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
