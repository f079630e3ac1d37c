package candidatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewing-backend/models"
	candidateapimodels "crewing-backend/models/api/candidate"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error)
	ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error)
	ListActive() (list []dbmodels.Candidate, err error)
	AddCertificate(rec dbmodels.CandidateCertificate) (id string, err error)
	AddAvailability(rec dbmodels.AvailabilityWindow) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Omit("Certificates", "Availability", "Assignments").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("id = ?", id).
		Preload("Certificates").
		Preload("Availability").
		Preload("Assignments").
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
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) applyFilter(tx *gorm.DB, filter candidateapimodels.CandidateFilter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR role_title ILIKE ?", search, search, search)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.HomeRegion != "" {
		tx = tx.Where("home_region = ?", filter.HomeRegion)
	}
	return tx
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(&dbmodels.Candidate{}), filter).
		Order("last_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Certificates").
		Preload("Availability")
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error) {
	err = i.applyFilter(i.db.Model(&dbmodels.Candidate{}), filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListActive() (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.db.
		Where("status = ?", models.CandidateStatusActive).
		Preload("Certificates").
		Preload("Availability").
		Preload("Assignments").
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AddCertificate(rec dbmodels.CandidateCertificate) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) AddAvailability(rec dbmodels.AvailabilityWindow) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
