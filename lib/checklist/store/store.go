package checkliststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewing-backend/models"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ReleaseChecklist) (id string, err error)
	GetByID(id string) (rec *dbmodels.ReleaseChecklist, err error)
	GetActiveForPair(requirementID, candidateID string) (rec *dbmodels.ReleaseChecklist, err error)
	ListByRequirement(requirementID string) (list []dbmodels.ReleaseChecklist, err error)
	// UpdateCAS applies updMap only if the persisted status and version still
	// match what the caller read; it bumps version by one as part of the same
	// write. ok is false when another writer got there first.
	UpdateCAS(id string, expectedStatus models.ChecklistStatus, expectedVersion int, updMap map[string]interface{}) (ok bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ReleaseChecklist) (id string, err error) {
	err = i.db.
		Omit("Requirement", "Candidate").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ReleaseChecklist, error) {
	rec := dbmodels.ReleaseChecklist{}
	err := i.db.
		Where("id = ?", id).
		Preload("Requirement").
		Preload("Candidate").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetActiveForPair(requirementID, candidateID string) (*dbmodels.ReleaseChecklist, error) {
	rec := dbmodels.ReleaseChecklist{}
	err := i.db.
		Where("requirement_id = ?", requirementID).
		Where("candidate_id = ?", candidateID).
		Where("status NOT IN ?", []models.ChecklistStatus{
			models.ChecklistStatusApproved,
			models.ChecklistStatusRejected,
		}).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRequirement(requirementID string) (list []dbmodels.ReleaseChecklist, err error) {
	list = []dbmodels.ReleaseChecklist{}
	err = i.db.
		Where("requirement_id = ?", requirementID).
		Preload("Candidate").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateCAS(id string, expectedStatus models.ChecklistStatus, expectedVersion int, updMap map[string]interface{}) (ok bool, err error) {
	updMap["version"] = expectedVersion + 1
	tx := i.db.
		Model(&dbmodels.ReleaseChecklist{}).
		Where("id = ?", id).
		Where("status = ?", expectedStatus).
		Where("version = ?", expectedVersion).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
