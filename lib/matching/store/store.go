package matchingstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	ReplaceForRequirement(requirementID string, recs []dbmodels.CandidateMatch) error
	ListCurrent(requirementID string) (list []dbmodels.CandidateMatch, err error)
	GetCurrent(requirementID, candidateID string) (rec *dbmodels.CandidateMatch, err error)
	CreateRun(rec dbmodels.MatchRun) (id string, err error)
	ListRuns(requirementID string, limit int) (list []dbmodels.MatchRun, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// ReplaceForRequirement supersedes the requirement's current matches and
// inserts the new snapshot in one transaction. Old rows are kept for audit.
func (i impl) ReplaceForRequirement(requirementID string, recs []dbmodels.CandidateMatch) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.CandidateMatch{}).
			Where("requirement_id = ?", requirementID).
			Where("superseded = ?", false).
			Update("superseded", true).
			Error
		if err != nil {
			return err
		}
		for idx := range recs {
			if err := tx.Omit("Requirement", "Candidate").Create(&recs[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) ListCurrent(requirementID string) (list []dbmodels.CandidateMatch, err error) {
	list = []dbmodels.CandidateMatch{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Where("superseded = ?", false).
		Preload("Candidate").
		Preload("Candidate.Availability").
		Order("candidate_id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetCurrent(requirementID, candidateID string) (rec *dbmodels.CandidateMatch, err error) {
	result := dbmodels.CandidateMatch{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Where("candidate_id = ?", candidateID).
		Where("superseded = ?", false).
		First(&result).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (i impl) CreateRun(rec dbmodels.MatchRun) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListRuns(requirementID string, limit int) (list []dbmodels.MatchRun, err error) {
	list = []dbmodels.MatchRun{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
