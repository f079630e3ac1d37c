package shortliststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Replace(requirementID string, recs []dbmodels.ShortlistEntry) error
	List(requirementID string) (list []dbmodels.ShortlistEntry, err error)
	GetEntry(requirementID, candidateID string) (rec *dbmodels.ShortlistEntry, err error)
	UpdateEntry(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Replace swaps the requirement's shortlist wholesale. Workflow statuses of
// surviving candidates carry over; entries of candidates no longer matched
// are removed.
func (i impl) Replace(requirementID string, recs []dbmodels.ShortlistEntry) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		current := []dbmodels.ShortlistEntry{}
		err := tx.
			Where("requirement_id = ?", requirementID).
			Find(&current).
			Error
		if err != nil {
			return err
		}
		statusByCandidate := map[string]dbmodels.ShortlistEntry{}
		for _, rec := range current {
			statusByCandidate[rec.CandidateID] = rec
		}
		err = tx.
			Where("requirement_id = ?", requirementID).
			Delete(&dbmodels.ShortlistEntry{}).
			Error
		if err != nil {
			return err
		}
		for idx := range recs {
			if prev, ok := statusByCandidate[recs[idx].CandidateID]; ok {
				recs[idx].Status = prev.Status
			}
			if err := tx.Omit("Requirement", "Candidate").Create(&recs[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) List(requirementID string) (list []dbmodels.ShortlistEntry, err error) {
	list = []dbmodels.ShortlistEntry{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Preload("Candidate").
		Order("rank ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetEntry(requirementID, candidateID string) (rec *dbmodels.ShortlistEntry, err error) {
	result := dbmodels.ShortlistEntry{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Where("candidate_id = ?", candidateID).
		Preload("Candidate").
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

func (i impl) UpdateEntry(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ShortlistEntry{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
