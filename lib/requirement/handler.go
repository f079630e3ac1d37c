package requirementhandler

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"crewing-backend/db"
	requirementstore "crewing-backend/lib/requirement/store"
	"crewing-backend/models"
	requirementapimodels "crewing-backend/models/api/requirement"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(authorID string, data requirementapimodels.RequirementData) (id string, err error)
	GetByID(id string) (requirementapimodels.RequirementView, error)
	Update(id string, data requirementapimodels.RequirementData) error
	List(filter requirementapimodels.RequirementFilter) (list []requirementapimodels.RequirementView, rowCount int64, err error)
	ChangeStatus(id string, status models.RequirementStatus) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: requirementstore.NewInstance(db.DB),
	}
}

type impl struct {
	store requirementstore.Provider
}

func (i impl) GetLogger(requirementID string) *log.Entry {
	logger := log.
		WithField("requirement_id", requirementID)
	return logger
}

func (i impl) Create(authorID string, data requirementapimodels.RequirementData) (string, error) {
	rec := dbmodels.JobRequirement{
		RoleTitle:            data.RoleTitle,
		VesselName:           data.VesselName,
		VesselType:           data.VesselType,
		Region:               data.Region,
		County:               data.County,
		StartDate:            data.StartDate,
		EndDate:              data.EndDate,
		Urgency:              data.Urgency,
		MinExperienceYears:   data.MinExperienceYears,
		MandatoryCerts:       pq.StringArray(data.MandatoryCerts),
		PreferredCerts:       pq.StringArray(data.PreferredCerts),
		LanguageRequirements: data.LanguageRequirements,
		CustomerRequirements: data.CustomerRequirements,
		Status:               models.RequirementStatusOpen,
		AuthorID:             authorID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("failed to create job requirement")
		return "", err
	}
	i.GetLogger(id).Info("job requirement created")
	return id, nil
}

func (i impl) GetByID(id string) (requirementapimodels.RequirementView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return requirementapimodels.RequirementView{}, err
	}
	return requirementapimodels.RequirementConvert(*rec), nil
}

func (i impl) Update(id string, data requirementapimodels.RequirementData) error {
	logger := i.GetLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !rec.Status.IsOpen() {
		return errors.Errorf("requirement is %v and can no longer be edited", rec.Status)
	}
	updMap := map[string]interface{}{
		"role_title":            data.RoleTitle,
		"vessel_name":           data.VesselName,
		"vessel_type":           data.VesselType,
		"region":                data.Region,
		"county":                data.County,
		"start_date":            data.StartDate,
		"end_date":              data.EndDate,
		"urgency":               data.Urgency,
		"min_experience_years":  data.MinExperienceYears,
		"mandatory_certs":       pq.StringArray(data.MandatoryCerts),
		"preferred_certs":       pq.StringArray(data.PreferredCerts),
		"language_requirements": data.LanguageRequirements,
		"customer_requirements": data.CustomerRequirements,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update job requirement")
		return err
	}
	logger.Info("job requirement updated")
	return nil
}

func (i impl) List(filter requirementapimodels.RequirementFilter) ([]requirementapimodels.RequirementView, int64, error) {
	list, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("failed to list job requirements")
		return nil, 0, err
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]requirementapimodels.RequirementView, 0, len(list))
	for _, rec := range list {
		result = append(result, requirementapimodels.RequirementConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ChangeStatus(id string, status models.RequirementStatus) error {
	logger := i.GetLogger(id).
		WithField("status", status)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.Status == status {
		return nil
	}
	if !rec.Status.IsAllowChange(status) {
		return errors.Errorf("requirement is %v, its status is final", rec.Status)
	}
	err = i.store.Update(id, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		logger.WithError(err).Error("failed to change requirement status")
		return err
	}
	logger.Info("requirement status changed")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.JobRequirement, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("failed to read requirement")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("requirement not found")
	}
	return rec, nil
}
