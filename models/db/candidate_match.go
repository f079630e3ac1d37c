package dbmodels

import (
	"time"
)

// CandidateMatch is one evaluation of one candidate against one requirement.
// Matches are never edited in place: a new evaluation inserts fresh rows and
// flips Superseded on the previous ones, so old explanations stay readable.
type CandidateMatch struct {
	BaseModel
	RequirementID string          `gorm:"type:varchar(36);index:idx_match_requirement"`
	Requirement   *JobRequirement `gorm:"foreignKey:RequirementID"`
	CandidateID   string          `gorm:"type:varchar(36);index"`
	Candidate     *Candidate      `gorm:"foreignKey:CandidateID"`
	Score         int
	CanAssign     bool
	Reasons       TokenList `gorm:"type:jsonb"`
	Warnings      TokenList `gorm:"type:jsonb"`
	Blockers      TokenList `gorm:"type:jsonb"`
	Superseded    bool      `gorm:"index:idx_match_requirement"`
	EvaluatedAt   time.Time
}

// MatchRun is the audit record of one EvaluateAndScore execution.
type MatchRun struct {
	BaseModel
	RequirementID  string `gorm:"type:varchar(36);index"`
	TriggeredBy    string `gorm:"type:varchar(255)"` // staff user id or "System"
	CandidateCount int
	EligibleCount  int
	DurationMs     int64
}
