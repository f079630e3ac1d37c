package shortlisthandler

import (
	"sort"
	"time"

	dbmodels "crewing-backend/models/db"
)

// Rank orders a requirement's current matches into the shortlist total order:
// eligible candidates strictly before blocked ones, score descending within
// each group, ties broken by rating, earliest availability start, and finally
// candidate id so the order is reproducible for identical inputs.
func Rank(matches []dbmodels.CandidateMatch) []dbmodels.CandidateMatch {
	ranked := make([]dbmodels.CandidateMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(a, b int) bool {
		return lessMatch(ranked[a], ranked[b])
	})
	return ranked
}

func lessMatch(a, b dbmodels.CandidateMatch) bool {
	if a.CanAssign != b.CanAssign {
		return a.CanAssign
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	ratingA := ratingOf(a)
	ratingB := ratingOf(b)
	if ratingA != ratingB {
		return ratingA > ratingB
	}
	startA := earliestAvailability(a)
	startB := earliestAvailability(b)
	if !startA.Equal(startB) {
		return startA.Before(startB)
	}
	return a.CandidateID < b.CandidateID
}

// ratingOf treats a missing rating as lowest, below an explicit zero.
func ratingOf(m dbmodels.CandidateMatch) float64 {
	if m.Candidate == nil || m.Candidate.PerformanceRating == nil {
		return -1
	}
	return *m.Candidate.PerformanceRating
}

var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

func earliestAvailability(m dbmodels.CandidateMatch) time.Time {
	if m.Candidate == nil || len(m.Candidate.Availability) == 0 {
		return farFuture
	}
	earliest := m.Candidate.Availability[0].From
	for _, w := range m.Candidate.Availability[1:] {
		if w.From.Before(earliest) {
			earliest = w.From
		}
	}
	return earliest
}
