package requirementhandler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crewing-backend/models"
	requirementapimodels "crewing-backend/models/api/requirement"
	dbmodels "crewing-backend/models/db"
)

type memRequirementStore struct {
	mu      sync.Mutex
	recs    map[string]*dbmodels.JobRequirement
	seq     int
	updates int
}

func newMemRequirementStore() *memRequirementStore {
	return &memRequirementStore{recs: map[string]*dbmodels.JobRequirement{}}
}

func (s *memRequirementStore) Create(rec dbmodels.JobRequirement) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("req-%d", s.seq)
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *memRequirementStore) GetByID(id string) (*dbmodels.JobRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *memRequirementStore) Update(id string, updMap map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil
	}
	s.updates++
	for field, value := range updMap {
		switch field {
		case "role_title":
			rec.RoleTitle = value.(string)
		case "vessel_name":
			rec.VesselName = value.(string)
		case "min_experience_years":
			rec.MinExperienceYears = value.(int)
		case "status":
			rec.Status = value.(models.RequirementStatus)
		}
	}
	return nil
}

func (s *memRequirementStore) List(filter requirementapimodels.RequirementFilter) ([]dbmodels.JobRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]dbmodels.JobRequirement, 0, len(s.recs))
	for _, rec := range s.recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (s *memRequirementStore) ListCount(filter requirementapimodels.RequirementFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.recs)), nil
}

func (s *memRequirementStore) ListOpen() ([]dbmodels.JobRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.JobRequirement{}
	for _, rec := range s.recs {
		if rec.Status == models.RequirementStatusOpen {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func requirementData(roleTitle string) requirementapimodels.RequirementData {
	return requirementapimodels.RequirementData{
		RoleTitle:          roleTitle,
		VesselName:         "MV Nordlys",
		Region:             "Vestland",
		StartDate:          time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Urgency:            models.UrgencyPlanned,
		MinExperienceYears: 5,
		MandatoryCerts:     []string{string(models.CertStcwBasic)},
	}
}

func TestRequirementUpdate(t *testing.T) {
	store := newMemRequirementStore()
	handler := impl{store: store}

	id, err := handler.Create("officer-1", requirementData("Chief Engineer"))
	require.NoError(t, err)

	t.Run("open requirement is editable", func(t *testing.T) {
		data := requirementData("Second Engineer")
		require.NoError(t, handler.Update(id, data))
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Second Engineer", view.RoleTitle)
	})

	t.Run("filled requirement can no longer be edited", func(t *testing.T) {
		require.NoError(t, handler.ChangeStatus(id, models.RequirementStatusFilled))
		err := handler.Update(id, requirementData("Master"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "can no longer be edited")
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Second Engineer", view.RoleTitle)
	})
}

func TestRequirementStatusChange(t *testing.T) {
	store := newMemRequirementStore()
	handler := impl{store: store}

	id, err := handler.Create("officer-1", requirementData("Chief Engineer"))
	require.NoError(t, err)

	t.Run("same status is a no-op", func(t *testing.T) {
		before := store.updates
		require.NoError(t, handler.ChangeStatus(id, models.RequirementStatusOpen))
		require.Equal(t, before, store.updates)
	})

	t.Run("open requirement can be cancelled", func(t *testing.T) {
		require.NoError(t, handler.ChangeStatus(id, models.RequirementStatusCancelled))
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.RequirementStatusCancelled, view.Status)
	})

	t.Run("terminal status is final", func(t *testing.T) {
		err := handler.ChangeStatus(id, models.RequirementStatusFilled)
		require.Error(t, err)
		require.Contains(t, err.Error(), "status is final")

		err = handler.ChangeStatus(id, models.RequirementStatusOpen)
		require.Error(t, err)
		require.Contains(t, err.Error(), "status is final")
	})
}
