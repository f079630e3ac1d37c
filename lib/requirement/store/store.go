package requirementstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewing-backend/models"
	requirementapimodels "crewing-backend/models/api/requirement"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.JobRequirement) (id string, err error)
	GetByID(id string) (rec *dbmodels.JobRequirement, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter requirementapimodels.RequirementFilter) (list []dbmodels.JobRequirement, err error)
	ListCount(filter requirementapimodels.RequirementFilter) (count int64, err error)
	ListOpen() (list []dbmodels.JobRequirement, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobRequirement) (id string, err error) {
	err = i.db.
		Omit("Author").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.JobRequirement, error) {
	rec := dbmodels.JobRequirement{}
	err := i.db.
		Where("id = ?", id).
		Preload("Author").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.JobRequirement{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) applyFilter(tx *gorm.DB, filter requirementapimodels.RequirementFilter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		tx = tx.Where("role_title ILIKE ? OR vessel_name ILIKE ?", search, search)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Urgency != "" {
		tx = tx.Where("urgency = ?", filter.Urgency)
	}
	return tx
}

func (i impl) List(filter requirementapimodels.RequirementFilter) (list []dbmodels.JobRequirement, err error) {
	list = []dbmodels.JobRequirement{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(&dbmodels.JobRequirement{}), filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Author")
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter requirementapimodels.RequirementFilter) (count int64, err error) {
	err = i.applyFilter(i.db.Model(&dbmodels.JobRequirement{}), filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListOpen() (list []dbmodels.JobRequirement, err error) {
	list = []dbmodels.JobRequirement{}
	err = i.db.
		Where("status = ?", models.RequirementStatusOpen).
		Order("start_date ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
