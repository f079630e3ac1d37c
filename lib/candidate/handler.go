package candidatehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"crewing-backend/db"
	candidatestore "crewing-backend/lib/candidate/store"
	"crewing-backend/models"
	candidateapimodels "crewing-backend/models/api/candidate"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(data candidateapimodels.CandidateData) (id string, err error)
	GetByID(id string) (candidateapimodels.CandidateView, error)
	Update(id string, data candidateapimodels.CandidateData) error
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	Archive(id string) error
	AddCertificate(id string, data candidateapimodels.CertificateData) (certID string, err error)
	AddAvailability(id string, data candidateapimodels.AvailabilityData) (windowID string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store candidatestore.Provider
}

func (i impl) GetLogger(candidateID string) *log.Entry {
	logger := log.
		WithField("candidate_id", candidateID)
	return logger
}

func (i impl) Create(data candidateapimodels.CandidateData) (string, error) {
	rec := dbmodels.Candidate{
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		MiddleName:        data.MiddleName,
		Email:             data.Email,
		Phone:             data.Phone,
		RoleTitle:         data.RoleTitle,
		HomeRegion:        data.HomeRegion,
		HomeCounty:        data.HomeCounty,
		ExperienceYears:   data.ExperienceYears,
		PerformanceRating: data.PerformanceRating,
		StcwConfirmed:     data.StcwConfirmed,
		Comment:           data.Comment,
		Status:            models.CandidateStatusActive,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("failed to create candidate")
		return "", err
	}
	i.GetLogger(id).Info("candidate created")
	return id, nil
}

func (i impl) GetByID(id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) Update(id string, data candidateapimodels.CandidateData) error {
	logger := i.GetLogger(id)
	_, err := i.getRec(id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"first_name":         data.FirstName,
		"last_name":          data.LastName,
		"middle_name":        data.MiddleName,
		"email":              data.Email,
		"phone":              data.Phone,
		"role_title":         data.RoleTitle,
		"home_region":        data.HomeRegion,
		"home_county":        data.HomeCounty,
		"experience_years":   data.ExperienceYears,
		"performance_rating": data.PerformanceRating,
		"stcw_confirmed":     data.StcwConfirmed,
		"comment":            data.Comment,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update candidate")
		return err
	}
	logger.Info("candidate updated")
	return nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	list, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("failed to list candidates")
		return nil, 0, err
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.CandidateConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Archive(id string) error {
	logger := i.GetLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.Status == models.CandidateStatusArchived {
		return nil
	}
	err = i.store.Update(id, map[string]interface{}{
		"status": models.CandidateStatusArchived,
	})
	if err != nil {
		logger.WithError(err).Error("failed to archive candidate")
		return err
	}
	logger.Info("candidate archived")
	return nil
}

func (i impl) AddCertificate(id string, data candidateapimodels.CertificateData) (string, error) {
	logger := i.GetLogger(id)
	_, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	certID, err := i.store.AddCertificate(dbmodels.CandidateCertificate{
		CandidateID:  id,
		CertType:     data.CertType,
		IssuedAt:     data.IssuedAt,
		ExpiresAt:    data.ExpiresAt,
		Verification: models.CertVerificationPending,
	})
	if err != nil {
		logger.WithError(err).Error("failed to add candidate certificate")
		return "", err
	}
	logger.WithField("cert_type", data.CertType).Info("candidate certificate added")
	return certID, nil
}

func (i impl) AddAvailability(id string, data candidateapimodels.AvailabilityData) (string, error) {
	logger := i.GetLogger(id)
	_, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	windowID, err := i.store.AddAvailability(dbmodels.AvailabilityWindow{
		CandidateID: id,
		From:        data.From,
		To:          data.To,
	})
	if err != nil {
		logger.WithError(err).Error("failed to add candidate availability window")
		return "", err
	}
	logger.Info("candidate availability window added")
	return windowID, nil
}

func (i impl) getRec(id string) (*dbmodels.Candidate, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("failed to read candidate")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("candidate not found")
	}
	return rec, nil
}
