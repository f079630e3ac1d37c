package staffstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StaffUser) (id string, err error)
	GetByID(id string) (rec *dbmodels.StaffUser, err error)
	List() (list []dbmodels.StaffUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StaffUser) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.StaffUser, error) {
	rec := dbmodels.StaffUser{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List() (list []dbmodels.StaffUser, err error) {
	list = []dbmodels.StaffUser{}
	err = i.db.
		Order("last_name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
