package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crewing-backend/lib/matching/evaluator"
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
		PreferredCerts:     []models.CertificateType{models.CertGmdss, models.CertDp},
	}
}

func buildSnapshot() matchingapimodels.CandidateSnapshot {
	rating := 5.0
	return matchingapimodels.CandidateSnapshot{
		CandidateID:       "cand-1",
		HomeRegion:        "Vestland",
		ExperienceYears:   8,
		PerformanceRating: &rating,
		StcwConfirmed:     true,
		Certificates: []matchingapimodels.CertificateFact{
			{CertType: models.CertGmdss, ExpiresAt: contractStart.AddDate(1, 0, 0)},
			{CertType: models.CertDp, ExpiresAt: contractStart.AddDate(1, 0, 0)},
		},
		Availability: []matchingapimodels.AvailabilityFact{
			{From: contractStart.AddDate(0, -2, 0), To: contractEnd.AddDate(0, 2, 0)},
		},
	}
}

func TestCalculate(t *testing.T) {
	cfg := DefaultConfig()
	req := buildRequirement()

	t.Run("perfect candidate scores 100", func(t *testing.T) {
		got := Calculate(cfg, buildSnapshot(), req, evaluator.Result{})
		require.Equal(t, 100, got)
	})

	t.Run("each warning costs a fixed penalty", func(t *testing.T) {
		snap := buildSnapshot()
		snap.Availability = []matchingapimodels.AvailabilityFact{
			{From: contractStart.AddDate(0, 0, -7), To: contractEnd.AddDate(0, 0, 7)},
		}
		clean := Calculate(cfg, snap, req, evaluator.Result{})
		require.Equal(t, 92, clean)

		withWarning := Calculate(cfg, snap, req, evaluator.Result{
			Warnings: []models.MatchToken{models.CertExpiringSoonToken(models.CertMedical, 12)},
		})
		require.Equal(t, 87, withWarning)
	})

	t.Run("half the preferred certificates gives half the coverage weight", func(t *testing.T) {
		snap := buildSnapshot()
		snap.Certificates = snap.Certificates[:1]
		got := Calculate(cfg, snap, req, evaluator.Result{})
		require.Equal(t, 85, got)
	})

	t.Run("a preferred certificate expiring before start does not count as held", func(t *testing.T) {
		snap := buildSnapshot()
		snap.Certificates[1].ExpiresAt = contractStart.AddDate(0, 0, -1)
		got := Calculate(cfg, snap, req, evaluator.Result{})
		require.Equal(t, 85, got)
	})

	t.Run("no preferred certificates requested counts as full coverage", func(t *testing.T) {
		bare := buildRequirement()
		bare.PreferredCerts = nil
		snap := buildSnapshot()
		snap.Certificates = nil
		got := Calculate(cfg, snap, bare, evaluator.Result{})
		require.Equal(t, 100, got)
	})

	t.Run("experience scales linearly up to the requested minimum", func(t *testing.T) {
		snap := buildSnapshot()
		snap.ExperienceYears = 3
		// experience component 3/5, so 25 weight points shrink to 15
		got := Calculate(cfg, snap, req, evaluator.Result{})
		require.Equal(t, 90, got)
	})

	t.Run("county match scores between region match and no match", func(t *testing.T) {
		regionSnap := buildSnapshot()

		countySnap := buildSnapshot()
		countySnap.HomeRegion = "Troms"
		countySnap.HomeCounty = "Bergen"

		otherSnap := buildSnapshot()
		otherSnap.HomeRegion = "Troms"
		otherSnap.HomeCounty = "Tromsø"

		region := Calculate(cfg, regionSnap, req, evaluator.Result{})
		county := Calculate(cfg, countySnap, req, evaluator.Result{})
		other := Calculate(cfg, otherSnap, req, evaluator.Result{})
		require.Greater(t, region, county)
		require.Greater(t, county, other)
	})

	t.Run("availability slack saturates at the cap", func(t *testing.T) {
		wide := buildSnapshot()
		wider := buildSnapshot()
		wider.Availability = []matchingapimodels.AvailabilityFact{
			{From: contractStart.AddDate(-1, 0, 0), To: contractEnd.AddDate(1, 0, 0)},
		}
		require.Equal(t,
			Calculate(cfg, wide, req, evaluator.Result{}),
			Calculate(cfg, wider, req, evaluator.Result{}))
	})

	t.Run("missing rating uses the neutral value", func(t *testing.T) {
		snap := buildSnapshot()
		snap.PerformanceRating = nil
		// rating component 0.5, so 15 weight points shrink to 7.5
		got := Calculate(cfg, snap, req, evaluator.Result{})
		require.Equal(t, 93, got)
	})

	t.Run("score never drops below zero", func(t *testing.T) {
		snap := matchingapimodels.CandidateSnapshot{CandidateID: "cand-empty"}
		warnings := make([]models.MatchToken, 12)
		got := Calculate(cfg, snap, req, evaluator.Result{Warnings: warnings})
		require.Equal(t, 0, got)
	})

	t.Run("blocked candidates are scored like everyone else", func(t *testing.T) {
		snap := buildSnapshot()
		blocked := Calculate(cfg, snap, req, evaluator.Result{
			Blockers: []models.MatchToken{models.StcwNotConfirmedToken()},
		})
		require.Equal(t, 100, blocked)
	})
}
