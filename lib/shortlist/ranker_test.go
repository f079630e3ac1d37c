package shortlisthandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dbmodels "crewing-backend/models/db"
)

func buildMatch(candidateID string, score int, canAssign bool, rating *float64, availableFrom *time.Time) dbmodels.CandidateMatch {
	candidate := &dbmodels.Candidate{
		PerformanceRating: rating,
	}
	candidate.ID = candidateID
	if availableFrom != nil {
		candidate.Availability = []dbmodels.AvailabilityWindow{
			{CandidateID: candidateID, From: *availableFrom, To: availableFrom.AddDate(0, 6, 0)},
		}
	}
	return dbmodels.CandidateMatch{
		CandidateID: candidateID,
		Candidate:   candidate,
		Score:       score,
		CanAssign:   canAssign,
	}
}

func rankedIDs(matches []dbmodels.CandidateMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.CandidateID)
	}
	return ids
}

func TestRank(t *testing.T) {
	rating8 := 4.8
	rating3 := 4.3
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("eligible candidates come before blocked ones regardless of score", func(t *testing.T) {
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-blocked", 95, false, nil, nil),
			buildMatch("cand-low", 40, true, nil, nil),
		})
		require.Equal(t, []string{"cand-low", "cand-blocked"}, rankedIDs(ranked))
	})

	t.Run("higher score ranks first within a group", func(t *testing.T) {
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-b", 87, true, nil, nil),
			buildMatch("cand-a", 90, true, nil, nil),
		})
		require.Equal(t, []string{"cand-a", "cand-b"}, rankedIDs(ranked))
	})

	t.Run("equal scores fall back to rating", func(t *testing.T) {
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-b", 85, true, &rating3, nil),
			buildMatch("cand-a", 85, true, &rating8, nil),
		})
		require.Equal(t, []string{"cand-a", "cand-b"}, rankedIDs(ranked))
	})

	t.Run("missing rating sorts below an explicit low one", func(t *testing.T) {
		zero := 0.0
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-none", 85, true, nil, nil),
			buildMatch("cand-zero", 85, true, &zero, nil),
		})
		require.Equal(t, []string{"cand-zero", "cand-none"}, rankedIDs(ranked))
	})

	t.Run("equal ratings fall back to earliest availability", func(t *testing.T) {
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-april", 85, true, &rating8, &april),
			buildMatch("cand-march", 85, true, &rating8, &march),
		})
		require.Equal(t, []string{"cand-march", "cand-april"}, rankedIDs(ranked))
	})

	t.Run("identical candidates order by id", func(t *testing.T) {
		ranked := Rank([]dbmodels.CandidateMatch{
			buildMatch("cand-z", 85, true, &rating8, &march),
			buildMatch("cand-a", 85, true, &rating8, &march),
		})
		require.Equal(t, []string{"cand-a", "cand-z"}, rankedIDs(ranked))
	})

	t.Run("ranking the same input twice gives the same order", func(t *testing.T) {
		input := []dbmodels.CandidateMatch{
			buildMatch("cand-c", 70, false, nil, &april),
			buildMatch("cand-a", 90, true, &rating8, &march),
			buildMatch("cand-b", 90, true, &rating3, &march),
			buildMatch("cand-d", 90, true, &rating8, &april),
		}
		first := Rank(input)
		second := Rank(input)
		require.Equal(t, rankedIDs(first), rankedIDs(second))
		require.Equal(t, []string{"cand-a", "cand-d", "cand-b", "cand-c"}, rankedIDs(first))
	})

	t.Run("input slice is left untouched", func(t *testing.T) {
		input := []dbmodels.CandidateMatch{
			buildMatch("cand-b", 50, true, nil, nil),
			buildMatch("cand-a", 90, true, nil, nil),
		}
		Rank(input)
		require.Equal(t, []string{"cand-b", "cand-a"}, rankedIDs(input))
	})
}
