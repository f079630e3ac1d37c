package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crewing-backend/models"
	matchingapimodels "crewing-backend/models/api/matching"
)

var (
	contractStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	contractEnd   = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
)

func buildRequirement() matchingapimodels.RequirementFacts {
	return matchingapimodels.RequirementFacts{
		RequirementID:      "req-1",
		Region:             "Vestland",
		County:             "Bergen",
		StartDate:          contractStart,
		EndDate:            contractEnd,
		MinExperienceYears: 5,
		MandatoryCerts:     []models.CertificateType{models.CertStcwBasic, models.CertDp},
		PreferredCerts:     []models.CertificateType{models.CertGmdss},
	}
}

func buildEligibleSnapshot() matchingapimodels.CandidateSnapshot {
	return matchingapimodels.CandidateSnapshot{
		CandidateID:     "cand-1",
		HomeRegion:      "Vestland",
		ExperienceYears: 8,
		StcwConfirmed:   true,
		Certificates: []matchingapimodels.CertificateFact{
			{CertType: models.CertStcwBasic, ExpiresAt: contractStart.AddDate(1, 0, 0)},
			{CertType: models.CertDp, ExpiresAt: contractStart.AddDate(2, 0, 0)},
			{CertType: models.CertGmdss, ExpiresAt: contractStart.AddDate(1, 0, 0)},
		},
		Availability: []matchingapimodels.AvailabilityFact{
			{From: contractStart.AddDate(0, 0, -15), To: contractEnd.AddDate(0, 0, 15)},
		},
	}
}

func codes(tokens []models.MatchToken) []models.MatchTokenCode {
	result := make([]models.MatchTokenCode, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, token.Code)
	}
	return result
}

func TestEvaluate(t *testing.T) {
	req := buildRequirement()

	t.Run("fully qualified candidate is eligible with positive reasons", func(t *testing.T) {
		result := Evaluate(buildEligibleSnapshot(), req)
		require.True(t, result.CanAssign())
		require.Empty(t, result.Blockers)
		require.Empty(t, result.Warnings)
		require.ElementsMatch(t, []models.MatchTokenCode{
			models.ReasonCertificateMatch,
			models.ReasonAvailabilityMatch,
			models.ReasonExperienceMatch,
			models.ReasonLocationMatch,
		}, codes(result.Reasons))
	})

	t.Run("missing mandatory certificate blocks and names the type", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates = snap.Certificates[:1] // drop DP and GMDSS

		result := Evaluate(snap, req)
		require.False(t, result.CanAssign())
		require.Len(t, result.Blockers, 1)
		require.Equal(t, models.BlockerMissingCertificate, result.Blockers[0].Code)
		require.Equal(t, models.CertDp, result.Blockers[0].CertType)
	})

	t.Run("certificate expiring before contract start blocks", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates[1].ExpiresAt = contractStart.AddDate(0, 0, -1)

		result := Evaluate(snap, req)
		require.Contains(t, codes(result.Blockers), models.BlockerExpiredCertificate)
		require.NotContains(t, codes(result.Reasons), models.ReasonCertificateMatch)
	})

	t.Run("certificate expiring shortly after start warns with the day count", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates[1].ExpiresAt = contractStart.AddDate(0, 0, 10)

		result := Evaluate(snap, req)
		require.True(t, result.CanAssign())
		require.Len(t, result.Warnings, 1)
		require.Equal(t, models.WarningCertExpiringSoon, result.Warnings[0].Code)
		require.Equal(t, models.CertDp, result.Warnings[0].CertType)
		require.Equal(t, 10, result.Warnings[0].Days)
	})

	t.Run("a later duplicate certificate supersedes the expiring one", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates = append(snap.Certificates, matchingapimodels.CertificateFact{
			CertType:  models.CertDp,
			ExpiresAt: contractStart.AddDate(0, 0, 5),
		})

		result := Evaluate(snap, req)
		require.True(t, result.CanAssign())
		require.Empty(t, result.Warnings)
	})

	t.Run("missing preferred certificate only warns", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates = snap.Certificates[:2] // drop GMDSS

		result := Evaluate(snap, req)
		require.True(t, result.CanAssign())
		require.Len(t, result.Warnings, 1)
		require.Equal(t, models.WarningNoPreferredCert, result.Warnings[0].Code)
		require.Equal(t, models.CertGmdss, result.Warnings[0].CertType)
	})

	t.Run("availability gap blocks", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Availability = []matchingapimodels.AvailabilityFact{
			{From: contractStart.AddDate(0, 1, 0), To: contractEnd},
		}

		result := Evaluate(snap, req)
		require.Contains(t, codes(result.Blockers), models.BlockerUnavailableDateRange)
	})

	t.Run("overlapping blocking assignment blocks", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Assignments = []matchingapimodels.AssignmentFact{
			{StartDate: contractStart.AddDate(0, -1, 0), EndDate: contractStart.AddDate(0, 1, 0), Blocking: true},
		}

		result := Evaluate(snap, req)
		require.Contains(t, codes(result.Blockers), models.BlockerAlreadyAssignedOverlapping)
	})

	t.Run("completed assignment in the same period does not block", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Assignments = []matchingapimodels.AssignmentFact{
			{StartDate: contractStart, EndDate: contractEnd, Blocking: false},
		}

		result := Evaluate(snap, req)
		require.True(t, result.CanAssign())
	})

	t.Run("unconfirmed stcw blocks", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.StcwConfirmed = false

		result := Evaluate(snap, req)
		require.Contains(t, codes(result.Blockers), models.BlockerStcwNotConfirmed)
	})

	t.Run("short experience warns, never blocks", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.ExperienceYears = 2

		result := Evaluate(snap, req)
		require.True(t, result.CanAssign())
		require.Contains(t, codes(result.Warnings), models.WarningLimitedExperience)
		require.NotContains(t, codes(result.Reasons), models.ReasonExperienceMatch)
	})

	t.Run("every problem is reported at once", func(t *testing.T) {
		snap := matchingapimodels.CandidateSnapshot{
			CandidateID:     "cand-bad",
			ExperienceYears: 1,
			StcwConfirmed:   false,
			Assignments: []matchingapimodels.AssignmentFact{
				{StartDate: contractStart, EndDate: contractEnd, Blocking: true},
			},
		}

		result := Evaluate(snap, req)
		require.ElementsMatch(t, []models.MatchTokenCode{
			models.BlockerMissingCertificate,
			models.BlockerMissingCertificate,
			models.BlockerUnavailableDateRange,
			models.BlockerAlreadyAssignedOverlapping,
			models.BlockerStcwNotConfirmed,
		}, codes(result.Blockers))
	})

	t.Run("the same input always yields the same result", func(t *testing.T) {
		snap := buildEligibleSnapshot()
		snap.Certificates = snap.Certificates[:2]
		snap.ExperienceYears = 3

		first := Evaluate(snap, req)
		second := Evaluate(snap, req)
		require.Equal(t, first, second)
	})
}
