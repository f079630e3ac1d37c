package checklisthandler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crewing-backend/models"
	candidateapimodels "crewing-backend/models/api/candidate"
	checklistapimodels "crewing-backend/models/api/checklist"
	requirementapimodels "crewing-backend/models/api/requirement"
	dbmodels "crewing-backend/models/db"
)

type memChecklistStore struct {
	mu   sync.Mutex
	recs map[string]*dbmodels.ReleaseChecklist
	seq  int
}

func newMemChecklistStore() *memChecklistStore {
	return &memChecklistStore{recs: map[string]*dbmodels.ReleaseChecklist{}}
}

func (s *memChecklistStore) Create(rec dbmodels.ReleaseChecklist) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("checklist-%d", s.seq)
	rec.CreatedAt = time.Now()
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *memChecklistStore) GetByID(id string) (*dbmodels.ReleaseChecklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.recs[id]
	if !found {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s *memChecklistStore) GetActiveForPair(requirementID, candidateID string) (*dbmodels.ReleaseChecklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.recs {
		if rec.RequirementID == requirementID && rec.CandidateID == candidateID && rec.IsActive() {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memChecklistStore) ListByRequirement(requirementID string) ([]dbmodels.ReleaseChecklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.ReleaseChecklist{}
	for _, rec := range s.recs {
		if rec.RequirementID == requirementID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *memChecklistStore) UpdateCAS(id string, expectedStatus models.ChecklistStatus, expectedVersion int, updMap map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.recs[id]
	if !found || rec.Status != expectedStatus || rec.Version != expectedVersion {
		return false, nil
	}
	rec.Version = expectedVersion + 1
	for field, value := range updMap {
		applyField(rec, field, value)
	}
	return true, nil
}

func applyField(rec *dbmodels.ReleaseChecklist, field string, value interface{}) {
	switch field {
	case "version":
	case "status":
		rec.Status = value.(models.ChecklistStatus)
	case "revision":
		rec.Revision = value.(int)
	case "notes":
		rec.Notes = value.(string)
	case "identity_verified":
		rec.IdentityVerified = value.(bool)
	case "stcw_valid":
		rec.StcwValid = value.(bool)
	case "medical_valid":
		rec.MedicalValid = value.(bool)
	case "contract_signed":
		rec.ContractSigned = value.(bool)
	case "customer_reqs_met":
		rec.CustomerReqsMet = value.(bool)
	case "language_reqs_met":
		rec.LanguageReqsMet = value.(bool)
	case "logistics_confirmed":
		rec.LogisticsConfirmed = value.(bool)
	case "references_checked":
		rec.ReferencesChecked = value.(bool)
	case "prepared_by":
		rec.PreparedBy = toStringPtr(value)
	case "prepared_at":
		rec.PreparedAt = toTimePtr(value)
	case "approved_by":
		rec.ApprovedBy = toStringPtr(value)
	case "approved_at":
		rec.ApprovedAt = toTimePtr(value)
	case "rejected_by":
		rec.RejectedBy = toStringPtr(value)
	case "rejected_at":
		rec.RejectedAt = toTimePtr(value)
	case "reject_reason":
		rec.RejectReason = value.(string)
	}
}

func toStringPtr(value interface{}) *string {
	if value == nil {
		return nil
	}
	str := value.(string)
	return &str
}

func toTimePtr(value interface{}) *time.Time {
	if value == nil {
		return nil
	}
	ts := value.(time.Time)
	return &ts
}

type memHistoryStore struct {
	mu   sync.Mutex
	recs []dbmodels.ChecklistHistory
}

func (s *memHistoryStore) Create(rec dbmodels.ChecklistHistory) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = fmt.Sprintf("history-%d", len(s.recs)+1)
	rec.CreatedAt = time.Now()
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

func (s *memHistoryStore) List(checklistID string) ([]dbmodels.ChecklistHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.ChecklistHistory{}
	for _, rec := range s.recs {
		if rec.ChecklistID == checklistID {
			list = append(list, rec)
		}
	}
	return list, nil
}

type memEventStore struct {
	mu   sync.Mutex
	recs []dbmodels.AssignmentEvent
}

func (s *memEventStore) Create(rec dbmodels.AssignmentEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = fmt.Sprintf("event-%d", len(s.recs)+1)
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

func (s *memEventStore) ListPending(limit int) ([]dbmodels.AssignmentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.AssignmentEvent{}
	for _, rec := range s.recs {
		if rec.DispatchedAt == nil {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (s *memEventStore) MarkDispatched(id string) error {
	return nil
}

type memMatchStore struct {
	matches map[string]*dbmodels.CandidateMatch
}

func (s *memMatchStore) ReplaceForRequirement(requirementID string, recs []dbmodels.CandidateMatch) error {
	return nil
}

func (s *memMatchStore) ListCurrent(requirementID string) ([]dbmodels.CandidateMatch, error) {
	return nil, nil
}

func (s *memMatchStore) GetCurrent(requirementID, candidateID string) (*dbmodels.CandidateMatch, error) {
	rec, found := s.matches[requirementID+"/"+candidateID]
	if !found {
		return nil, nil
	}
	return rec, nil
}

func (s *memMatchStore) CreateRun(rec dbmodels.MatchRun) (string, error) {
	return "run-1", nil
}

func (s *memMatchStore) ListRuns(requirementID string, limit int) ([]dbmodels.MatchRun, error) {
	return nil, nil
}

type memRequirementStore struct {
	recs map[string]*dbmodels.JobRequirement
}

func (s *memRequirementStore) Create(rec dbmodels.JobRequirement) (string, error) {
	return rec.ID, nil
}

func (s *memRequirementStore) GetByID(id string) (*dbmodels.JobRequirement, error) {
	return s.recs[id], nil
}

func (s *memRequirementStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (s *memRequirementStore) List(filter requirementapimodels.RequirementFilter) ([]dbmodels.JobRequirement, error) {
	return nil, nil
}

func (s *memRequirementStore) ListCount(filter requirementapimodels.RequirementFilter) (int64, error) {
	return 0, nil
}

func (s *memRequirementStore) ListOpen() ([]dbmodels.JobRequirement, error) {
	return nil, nil
}

type memCandidateStore struct {
	recs map[string]*dbmodels.Candidate
}

func (s *memCandidateStore) Create(rec dbmodels.Candidate) (string, error) {
	return rec.ID, nil
}

func (s *memCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	return s.recs[id], nil
}

func (s *memCandidateStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (s *memCandidateStore) List(filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (s *memCandidateStore) ListCount(filter candidateapimodels.CandidateFilter) (int64, error) {
	return 0, nil
}

func (s *memCandidateStore) ListActive() ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (s *memCandidateStore) AddCertificate(rec dbmodels.CandidateCertificate) (string, error) {
	return rec.ID, nil
}

func (s *memCandidateStore) AddAvailability(rec dbmodels.AvailabilityWindow) (string, error) {
	return rec.ID, nil
}

type memStaffStore struct {
	users map[string]*dbmodels.StaffUser
}

func (s *memStaffStore) Create(rec dbmodels.StaffUser) (string, error) {
	return rec.ID, nil
}

func (s *memStaffStore) GetByID(id string) (*dbmodels.StaffUser, error) {
	return s.users[id], nil
}

func (s *memStaffStore) List() ([]dbmodels.StaffUser, error) {
	return nil, nil
}

type testEnv struct {
	handler    impl
	store      *memChecklistStore
	history    *memHistoryStore
	events     *memEventStore
	matchStore *memMatchStore
}

func newTestEnv() testEnv {
	store := newMemChecklistStore()
	history := &memHistoryStore{}
	events := &memEventStore{}
	matchStore := &memMatchStore{matches: map[string]*dbmodels.CandidateMatch{
		"req-1/cand-1": {
			RequirementID: "req-1",
			CandidateID:   "cand-1",
			Score:         90,
			CanAssign:     true,
		},
		"req-1/cand-blocked": {
			RequirementID: "req-1",
			CandidateID:   "cand-blocked",
			CanAssign:     false,
		},
	}}
	staff := &memStaffStore{users: map[string]*dbmodels.StaffUser{
		"officer-1":  {FirstName: "Anna", LastName: "Berg"},
		"manager-1":  {FirstName: "Olav", LastName: "Dahl"},
		"operator-2": {FirstName: "Maria", LastName: "Lund"},
	}}
	requirements := &memRequirementStore{recs: map[string]*dbmodels.JobRequirement{
		"req-1": {
			RoleTitle: "Chief Engineer",
			Status:    models.RequirementStatusOpen,
		},
		"req-filled": {
			RoleTitle: "Second Officer",
			Status:    models.RequirementStatusFilled,
		},
	}}
	candidates := &memCandidateStore{recs: map[string]*dbmodels.Candidate{
		"cand-1":       {FirstName: "Jonas", LastName: "Vik"},
		"cand-blocked": {FirstName: "Erik", LastName: "Moe"},
	}}
	return testEnv{
		handler: impl{
			store:            store,
			historyStore:     history,
			eventStore:       events,
			matchStore:       matchStore,
			staffStore:       staff,
			requirementStore: requirements,
			candidateStore:   candidates,
		},
		store:      store,
		history:    history,
		events:     events,
		matchStore: matchStore,
	}
}

func (e testEnv) createChecklist(t *testing.T) checklistapimodels.ChecklistView {
	view, err := e.handler.Create(checklistapimodels.ChecklistCreateData{
		RequirementID: "req-1",
		CandidateID:   "cand-1",
	}, "officer-1")
	require.NoError(t, err)
	return view
}

func (e testEnv) setAllGates(t *testing.T, id string, version int) checklistapimodels.ChecklistView {
	yes := true
	view, err := e.handler.SetGates(id, checklistapimodels.GatesData{
		IdentityVerified:   &yes,
		StcwValid:          &yes,
		MedicalValid:       &yes,
		ContractSigned:     &yes,
		CustomerReqsMet:    &yes,
		LanguageReqsMet:    &yes,
		LogisticsConfirmed: &yes,
		ReferencesChecked:  &yes,
	}, "officer-1")
	require.NoError(t, err)
	require.Equal(t, version+1, view.Version)
	return view
}

func (e testEnv) advance(t *testing.T, id string, action models.ChecklistAction, version int, actorID string) checklistapimodels.ChecklistView {
	view, err := e.handler.Advance(id, checklistapimodels.AdvanceData{
		Action:          action,
		ExpectedVersion: version,
	}, actorID)
	require.NoError(t, err)
	return view
}

func TestChecklistCreate(t *testing.T) {
	t.Run("starts in draft with version one", func(t *testing.T) {
		env := newTestEnv()
		view := env.createChecklist(t)
		require.Equal(t, models.ChecklistStatusDraft, view.Status)
		require.Equal(t, 1, view.Version)
		require.Equal(t, 0, view.Revision)
		require.Len(t, view.MissingGates, 8)
	})
	t.Run("filled requirement is refused", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(checklistapimodels.ChecklistCreateData{
			RequirementID: "req-filled",
			CandidateID:   "cand-1",
		}, "officer-1")
		require.Error(t, err)
	})
	t.Run("blocked candidate is refused", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(checklistapimodels.ChecklistCreateData{
			RequirementID: "req-1",
			CandidateID:   "cand-blocked",
		}, "officer-1")
		require.Error(t, err)
	})
	t.Run("candidate without a match is refused", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(checklistapimodels.ChecklistCreateData{
			RequirementID: "req-1",
			CandidateID:   "cand-unknown",
		}, "officer-1")
		require.Error(t, err)
	})
	t.Run("second active checklist for the pair is refused", func(t *testing.T) {
		env := newTestEnv()
		env.createChecklist(t)
		_, err := env.handler.Create(checklistapimodels.ChecklistCreateData{
			RequirementID: "req-1",
			CandidateID:   "cand-1",
		}, "officer-1")
		require.Error(t, err)
	})
}

func TestChecklistApprovalSequence(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	view = env.setAllGates(t, view.ID, view.Version)

	view = env.advance(t, view.ID, models.ChecklistActionPrepare, view.Version, "officer-1")
	require.Equal(t, models.ChecklistStatusPrepared, view.Status)

	view = env.advance(t, view.ID, models.ChecklistActionSubmit, view.Version, "officer-1")
	require.Equal(t, models.ChecklistStatusPendingApproval, view.Status)
	require.NotNil(t, view.PreparedBy)
	require.Equal(t, "officer-1", *view.PreparedBy)

	view = env.advance(t, view.ID, models.ChecklistActionApprove, view.Version, "manager-1")
	require.Equal(t, models.ChecklistStatusApproved, view.Status)
	require.NotNil(t, view.ApprovedBy)
	require.Equal(t, "manager-1", *view.ApprovedBy)

	pending, err := env.events.ListPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, view.ID, pending[0].ChecklistID)

	history, err := env.handler.History(view.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	require.Equal(t, "Olav Dahl", history[3].ActorName)
}

func TestChecklistSkippedStates(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	view = env.setAllGates(t, view.ID, view.Version)

	for _, action := range []models.ChecklistAction{
		models.ChecklistActionSubmit,
		models.ChecklistActionApprove,
		models.ChecklistActionReject,
		models.ChecklistActionReopen,
	} {
		_, err := env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
			Action:          action,
			ExpectedVersion: view.Version,
		}, "officer-1")
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid, "action %s must not apply in DRAFT", action)
	}
}

func TestChecklistIncompleteGates(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)

	yes := true
	view, err := env.handler.SetGates(view.ID, checklistapimodels.GatesData{
		IdentityVerified:   &yes,
		StcwValid:          &yes,
		MedicalValid:       &yes,
		ContractSigned:     &yes,
		CustomerReqsMet:    &yes,
		LanguageReqsMet:    &yes,
		LogisticsConfirmed: &yes,
	}, "officer-1")
	require.NoError(t, err)

	_, err = env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
		Action:          models.ChecklistActionPrepare,
		ExpectedVersion: view.Version,
	}, "officer-1")
	var incomplete *IncompleteChecklistError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, []models.ChecklistGate{models.GateReferencesChecked}, incomplete.Missing)
}

func TestChecklistSelfApproval(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	view = env.setAllGates(t, view.ID, view.Version)
	view = env.advance(t, view.ID, models.ChecklistActionPrepare, view.Version, "officer-1")
	view = env.advance(t, view.ID, models.ChecklistActionSubmit, view.Version, "officer-1")

	_, err := env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
		Action:          models.ChecklistActionApprove,
		ExpectedVersion: view.Version,
	}, "officer-1")
	var selfApproval *SelfApprovalError
	require.ErrorAs(t, err, &selfApproval)

	view, err = env.handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.ChecklistStatusPendingApproval, view.Status)
}

func TestChecklistRejectAndReopen(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	view = env.setAllGates(t, view.ID, view.Version)
	view = env.advance(t, view.ID, models.ChecklistActionPrepare, view.Version, "officer-1")
	view = env.advance(t, view.ID, models.ChecklistActionSubmit, view.Version, "officer-1")

	t.Run("reject requires a reason", func(t *testing.T) {
		_, err := env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
			Action:          models.ChecklistActionReject,
			ExpectedVersion: view.Version,
		}, "manager-1")
		require.Error(t, err)
	})

	rejected, err := env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
		Action:          models.ChecklistActionReject,
		ExpectedVersion: view.Version,
		Reason:          "medical certificate scan is unreadable",
	}, "manager-1")
	require.NoError(t, err)
	require.Equal(t, models.ChecklistStatusRejected, rejected.Status)
	require.Equal(t, "medical certificate scan is unreadable", rejected.RejectReason)

	reopened := env.advance(t, view.ID, models.ChecklistActionReopen, rejected.Version, "officer-1")
	require.Equal(t, models.ChecklistStatusDraft, reopened.Status)
	require.Equal(t, 1, reopened.Revision)
	require.Nil(t, reopened.PreparedBy)
	require.Nil(t, reopened.RejectedBy)
	require.Empty(t, reopened.RejectReason)
	require.Empty(t, reopened.MissingGates, "gate values survive a reopen")
}

func TestChecklistConcurrentAdvance(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	view = env.setAllGates(t, view.ID, view.Version)
	view = env.advance(t, view.ID, models.ChecklistActionPrepare, view.Version, "officer-1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for n := 0; n < 2; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
				Action:          models.ChecklistActionSubmit,
				ExpectedVersion: view.Version,
			}, "operator-2")
		}(n)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, ErrConcurrentModification)
		}
	}
	require.Equal(t, 1, won, "exactly one concurrent submit must win")

	final, err := env.handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.ChecklistStatusPendingApproval, final.Status)
}

func TestChecklistStaleVersion(t *testing.T) {
	env := newTestEnv()
	view := env.createChecklist(t)
	env.setAllGates(t, view.ID, view.Version)

	_, err := env.handler.Advance(view.ID, checklistapimodels.AdvanceData{
		Action:          models.ChecklistActionPrepare,
		ExpectedVersion: view.Version,
	}, "officer-1")
	require.ErrorIs(t, err, ErrConcurrentModification)
}
