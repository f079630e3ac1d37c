package matchingapimodels

import (
	"time"

	"crewing-backend/models"
	dbmodels "crewing-backend/models/db"
)

type CandidateMatchView struct {
	ID            string              `json:"id"`
	RequirementID string              `json:"requirement_id"`
	CandidateID   string              `json:"candidate_id"`
	CandidateName string              `json:"candidate_name"`
	Score         int                 `json:"score"`
	CanAssign     bool                `json:"can_assign"`
	Reasons       []models.MatchToken `json:"reasons"`
	Warnings      []models.MatchToken `json:"warnings"`
	Blockers      []models.MatchToken `json:"blockers"`
	EvaluatedAt   time.Time           `json:"evaluated_at"`
}

func MatchConvert(rec dbmodels.CandidateMatch) CandidateMatchView {
	candidateName := ""
	if rec.Candidate != nil {
		candidateName = rec.Candidate.GetFullName()
	}
	return CandidateMatchView{
		ID:            rec.ID,
		RequirementID: rec.RequirementID,
		CandidateID:   rec.CandidateID,
		CandidateName: candidateName,
		Score:         rec.Score,
		CanAssign:     rec.CanAssign,
		Reasons:       rec.Reasons,
		Warnings:      rec.Warnings,
		Blockers:      rec.Blockers,
		EvaluatedAt:   rec.EvaluatedAt,
	}
}

type ShortlistEntryView struct {
	ID            string                 `json:"id"`
	RequirementID string                 `json:"requirement_id"`
	CandidateID   string                 `json:"candidate_id"`
	CandidateName string                 `json:"candidate_name"`
	Rank          int                    `json:"rank"`
	Score         int                    `json:"score"`
	CanAssign     bool                   `json:"can_assign"`
	Reasons       []models.MatchToken    `json:"reasons"`
	Warnings      []models.MatchToken    `json:"warnings"`
	Blockers      []models.MatchToken    `json:"blockers"`
	Status        models.ShortlistStatus `json:"status"`
}

func ShortlistEntryConvert(rec dbmodels.ShortlistEntry) ShortlistEntryView {
	candidateName := ""
	if rec.Candidate != nil {
		candidateName = rec.Candidate.GetFullName()
	}
	return ShortlistEntryView{
		ID:            rec.ID,
		RequirementID: rec.RequirementID,
		CandidateID:   rec.CandidateID,
		CandidateName: candidateName,
		Rank:          rec.Rank,
		Score:         rec.Score,
		CanAssign:     rec.CanAssign,
		Reasons:       rec.Reasons,
		Warnings:      rec.Warnings,
		Blockers:      rec.Blockers,
		Status:        rec.Status,
	}
}

type MatchRunView struct {
	ID             string    `json:"id"`
	RequirementID  string    `json:"requirement_id"`
	TriggeredBy    string    `json:"triggered_by"`
	CandidateCount int       `json:"candidate_count"`
	EligibleCount  int       `json:"eligible_count"`
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

func MatchRunConvert(rec dbmodels.MatchRun) MatchRunView {
	return MatchRunView{
		ID:             rec.ID,
		RequirementID:  rec.RequirementID,
		TriggeredBy:    rec.TriggeredBy,
		CandidateCount: rec.CandidateCount,
		EligibleCount:  rec.EligibleCount,
		DurationMs:     rec.DurationMs,
		CreatedAt:      rec.CreatedAt,
	}
}

type EntryStatusData struct {
	Status models.ShortlistStatus `json:"status"`
}
