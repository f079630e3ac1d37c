package assignmenteventstore

import (
	"time"

	"gorm.io/gorm"

	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AssignmentEvent) (id string, err error)
	ListPending(limit int) (list []dbmodels.AssignmentEvent, err error)
	MarkDispatched(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssignmentEvent) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListPending(limit int) (list []dbmodels.AssignmentEvent, err error) {
	list = []dbmodels.AssignmentEvent{}
	err = i.db.
		Where("dispatched_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkDispatched(id string) error {
	err := i.db.
		Model(&dbmodels.AssignmentEvent{}).
		Where("id = ?", id).
		Update("dispatched_at", time.Now()).
		Error
	if err != nil {
		return err
	}
	return nil
}
