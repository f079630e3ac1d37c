package score

import (
	"math"

	"crewing-backend/lib/matching/evaluator"
	matchingapimodels "crewing-backend/models/api/matching"
)

// Config holds the scoring weights and penalties. Weights sum to 1.0; they
// live here, not inline in the formula, so they can be tested and tuned
// without touching evaluator or ranking code.
type Config struct {
	CertCoverageWeight float64
	ExperienceWeight   float64
	LocationWeight     float64
	AvailabilityWeight float64
	RatingWeight       float64

	WarningPenalty int     // points subtracted per warning
	NeutralRating  float64 // rating component used when no rating exists

	LocationSameCounty float64 // component value for a county-level match
	LocationOther      float64 // component value for no location match
	SlackCapDays       int     // availability slack saturates at this buffer
}

func DefaultConfig() Config {
	return Config{
		CertCoverageWeight: 0.30,
		ExperienceWeight:   0.25,
		LocationWeight:     0.15,
		AvailabilityWeight: 0.15,
		RatingWeight:       0.15,
		WarningPenalty:     5,
		NeutralRating:      0.5,
		LocationSameCounty: 0.6,
		LocationOther:      0.2,
		SlackCapDays:       30,
	}
}

// Calculate returns the 0-100 score of one candidate against one requirement.
// Blocked candidates are scored too; exclusion from the eligible group is the
// ranker's job, not the scorer's.
func Calculate(cfg Config, snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts, eval evaluator.Result) int {
	weighted := cfg.CertCoverageWeight*certCoverage(snap, req) +
		cfg.ExperienceWeight*experienceMatch(snap, req) +
		cfg.LocationWeight*locationProximity(cfg, snap, req) +
		cfg.AvailabilityWeight*availabilitySlack(cfg, snap, req) +
		cfg.RatingWeight*ratingComponent(cfg, snap)

	result := int(math.Round(100 * weighted))
	result -= cfg.WarningPenalty * len(eval.Warnings)
	if result < 0 {
		result = 0
	}
	if result > 100 {
		result = 100
	}
	return result
}

// certCoverage is the fraction of preferred certificates held and valid at
// contract start. No preferred certificates requested counts as full coverage.
func certCoverage(snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts) float64 {
	if len(req.PreferredCerts) == 0 {
		return 1.0
	}
	held := 0
	for _, certType := range req.PreferredCerts {
		cert := snap.HeldCertificate(certType)
		if cert != nil && !cert.ExpiresAt.Before(req.StartDate) {
			held++
		}
	}
	return float64(held) / float64(len(req.PreferredCerts))
}

func experienceMatch(snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts) float64 {
	if req.MinExperienceYears <= 0 {
		return 1.0
	}
	ratio := float64(snap.ExperienceYears) / float64(req.MinExperienceYears)
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

func locationProximity(cfg Config, snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts) float64 {
	if snap.HomeRegion != "" && snap.HomeRegion == req.Region {
		return 1.0
	}
	if snap.HomeCounty != "" && snap.HomeCounty == req.County {
		return cfg.LocationSameCounty
	}
	return cfg.LocationOther
}

// availabilitySlack measures the buffer the candidate's best covering window
// carries beyond the contract dates, saturating at SlackCapDays.
func availabilitySlack(cfg Config, snap matchingapimodels.CandidateSnapshot, req matchingapimodels.RequirementFacts) float64 {
	bestSlack := -1
	for _, w := range snap.Availability {
		if w.From.After(req.StartDate) || w.To.Before(req.EndDate) {
			continue
		}
		slackDays := int(req.StartDate.Sub(w.From).Hours()/24) + int(w.To.Sub(req.EndDate).Hours()/24)
		if slackDays > bestSlack {
			bestSlack = slackDays
		}
	}
	if bestSlack < 0 {
		return 0
	}
	if bestSlack >= cfg.SlackCapDays {
		return 1.0
	}
	return float64(bestSlack) / float64(cfg.SlackCapDays)
}

func ratingComponent(cfg Config, snap matchingapimodels.CandidateSnapshot) float64 {
	if snap.PerformanceRating == nil {
		return cfg.NeutralRating
	}
	return *snap.PerformanceRating / 5.0
}
