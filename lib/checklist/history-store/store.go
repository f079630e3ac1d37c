package checklisthistorystore

import (
	"gorm.io/gorm"

	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ChecklistHistory) (id string, err error)
	List(checklistID string) (list []dbmodels.ChecklistHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ChecklistHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(checklistID string) (list []dbmodels.ChecklistHistory, err error) {
	list = []dbmodels.ChecklistHistory{}
	err = i.db.
		Where("checklist_id = ?", checklistID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
