package dbmodels

import (
	"crewing-backend/models"
)

// ShortlistEntry is one ranked row of a requirement's shortlist. The ranker
// replaces a requirement's entries wholesale; rank is the 1-based position.
// Score and tokens are copied from the match at ranking time.
type ShortlistEntry struct {
	BaseModel
	RequirementID string          `gorm:"type:varchar(36);uniqueIndex:idx_shortlist_pair"`
	Requirement   *JobRequirement `gorm:"foreignKey:RequirementID"`
	CandidateID   string          `gorm:"type:varchar(36);uniqueIndex:idx_shortlist_pair"`
	Candidate     *Candidate      `gorm:"foreignKey:CandidateID"`
	Rank          int
	Score         int
	CanAssign     bool
	Reasons       TokenList              `gorm:"type:jsonb"`
	Warnings      TokenList              `gorm:"type:jsonb"`
	Blockers      TokenList              `gorm:"type:jsonb"`
	Status        models.ShortlistStatus `gorm:"type:varchar(50)"`
}
