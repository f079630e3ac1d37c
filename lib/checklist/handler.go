package checklisthandler

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"crewing-backend/db"
	assignmenteventstore "crewing-backend/lib/assignment-event/store"
	candidatestore "crewing-backend/lib/candidate/store"
	checklisthistorystore "crewing-backend/lib/checklist/history-store"
	checkliststore "crewing-backend/lib/checklist/store"
	matchingstore "crewing-backend/lib/matching/store"
	requirementstore "crewing-backend/lib/requirement/store"
	staffstore "crewing-backend/lib/staff/store"
	"crewing-backend/models"
	checklistapimodels "crewing-backend/models/api/checklist"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	Create(data checklistapimodels.ChecklistCreateData, actorID string) (checklistapimodels.ChecklistView, error)
	GetByID(id string) (checklistapimodels.ChecklistView, error)
	ListByRequirement(requirementID string) ([]checklistapimodels.ChecklistView, error)
	SetGates(id string, data checklistapimodels.GatesData, actorID string) (checklistapimodels.ChecklistView, error)
	Advance(id string, data checklistapimodels.AdvanceData, actorID string) (checklistapimodels.ChecklistView, error)
	History(id string) ([]checklistapimodels.HistoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            checkliststore.NewInstance(db.DB),
		historyStore:     checklisthistorystore.NewInstance(db.DB),
		eventStore:       assignmenteventstore.NewInstance(db.DB),
		matchStore:       matchingstore.NewInstance(db.DB),
		staffStore:       staffstore.NewInstance(db.DB),
		requirementStore: requirementstore.NewInstance(db.DB),
		candidateStore:   candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store            checkliststore.Provider
	historyStore     checklisthistorystore.Provider
	eventStore       assignmenteventstore.Provider
	matchStore       matchingstore.Provider
	staffStore       staffstore.Provider
	requirementStore requirementstore.Provider
	candidateStore   candidatestore.Provider
}

func (i impl) GetLogger(checklistID string) *log.Entry {
	logger := log.
		WithField("checklist_id", checklistID)
	return logger
}

func (i impl) Create(data checklistapimodels.ChecklistCreateData, actorID string) (checklistapimodels.ChecklistView, error) {
	logger := log.
		WithField("requirement_id", data.RequirementID).
		WithField("candidate_id", data.CandidateID)

	requirement, err := i.requirementStore.GetByID(data.RequirementID)
	if err != nil {
		logger.WithError(err).Error("failed to read requirement")
		return checklistapimodels.ChecklistView{}, err
	}
	if requirement == nil {
		return checklistapimodels.ChecklistView{}, ErrUnknownRequirement
	}
	if requirement.Status != models.RequirementStatusOpen {
		return checklistapimodels.ChecklistView{}, errors.Errorf("requirement is %v, a release checklist needs an open requirement", requirement.Status)
	}

	candidate, err := i.candidateStore.GetByID(data.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to read candidate")
		return checklistapimodels.ChecklistView{}, err
	}
	if candidate == nil {
		return checklistapimodels.ChecklistView{}, ErrUnknownCandidate
	}

	match, err := i.matchStore.GetCurrent(data.RequirementID, data.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to read the candidate's current match")
		return checklistapimodels.ChecklistView{}, err
	}
	if match == nil {
		return checklistapimodels.ChecklistView{}, errors.New("candidate has no current match for this requirement")
	}
	if !match.CanAssign {
		return checklistapimodels.ChecklistView{}, errors.New("candidate is blocked and cannot be selected for release")
	}

	active, err := i.store.GetActiveForPair(data.RequirementID, data.CandidateID)
	if err != nil {
		return checklistapimodels.ChecklistView{}, err
	}
	if active != nil {
		return checklistapimodels.ChecklistView{}, errors.New("an active release checklist already exists for this candidate and requirement")
	}

	rec := dbmodels.ReleaseChecklist{
		RequirementID: data.RequirementID,
		CandidateID:   data.CandidateID,
		Status:        models.ChecklistStatusDraft,
		Version:       1,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create release checklist")
		return checklistapimodels.ChecklistView{}, err
	}
	rec.ID = id
	i.audit(rec, "", "", models.ChecklistStatusDraft, actorID, "checklist created", dbmodels.EntityChanges{})
	logger.WithField("checklist_id", id).Info("release checklist created")
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (checklistapimodels.ChecklistView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return checklistapimodels.ChecklistView{}, err
	}
	return checklistapimodels.ChecklistConvert(*rec), nil
}

func (i impl) ListByRequirement(requirementID string) ([]checklistapimodels.ChecklistView, error) {
	list, err := i.store.ListByRequirement(requirementID)
	if err != nil {
		return nil, err
	}
	result := make([]checklistapimodels.ChecklistView, 0, len(list))
	for _, rec := range list {
		result = append(result, checklistapimodels.ChecklistConvert(rec))
	}
	return result, nil
}

// SetGates updates gate values and notes. Gates are editable only in DRAFT;
// the write is version-guarded like every other checklist mutation.
func (i impl) SetGates(id string, data checklistapimodels.GatesData, actorID string) (checklistapimodels.ChecklistView, error) {
	logger := i.GetLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return checklistapimodels.ChecklistView{}, err
	}
	if rec.Status != models.ChecklistStatusDraft {
		return checklistapimodels.ChecklistView{}, &InvalidTransitionError{From: rec.Status, Action: "set_gates"}
	}

	updMap := map[string]interface{}{}
	changes := dbmodels.EntityChanges{Description: "checklist gates updated"}
	applyGate(updMap, &changes, "identity_verified", rec.IdentityVerified, data.IdentityVerified)
	applyGate(updMap, &changes, "stcw_valid", rec.StcwValid, data.StcwValid)
	applyGate(updMap, &changes, "medical_valid", rec.MedicalValid, data.MedicalValid)
	applyGate(updMap, &changes, "contract_signed", rec.ContractSigned, data.ContractSigned)
	applyGate(updMap, &changes, "customer_reqs_met", rec.CustomerReqsMet, data.CustomerReqsMet)
	applyGate(updMap, &changes, "language_reqs_met", rec.LanguageReqsMet, data.LanguageReqsMet)
	applyGate(updMap, &changes, "logistics_confirmed", rec.LogisticsConfirmed, data.LogisticsConfirmed)
	applyGate(updMap, &changes, "references_checked", rec.ReferencesChecked, data.ReferencesChecked)
	if data.Notes != nil && *data.Notes != rec.Notes {
		updMap["notes"] = *data.Notes
		changes.Data = append(changes.Data, dbmodels.FieldChanges{Field: "notes", OldValue: rec.Notes, NewValue: *data.Notes})
	}
	if len(updMap) == 0 {
		return checklistapimodels.ChecklistConvert(*rec), nil
	}

	ok, err := i.store.UpdateCAS(rec.ID, rec.Status, rec.Version, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update checklist gates")
		return checklistapimodels.ChecklistView{}, err
	}
	if !ok {
		return checklistapimodels.ChecklistView{}, ErrConcurrentModification
	}
	i.audit(*rec, "", rec.Status, rec.Status, actorID, "", changes)
	return i.GetByID(id)
}

// Advance applies one state-machine action. The write is a compare-and-swap
// on (status, version): when two operators race, exactly one wins and the
// other gets ErrConcurrentModification. Never retried here.
func (i impl) Advance(id string, data checklistapimodels.AdvanceData, actorID string) (checklistapimodels.ChecklistView, error) {
	logger := i.GetLogger(id).
		WithField("action", data.Action).
		WithField("actor_id", actorID)

	rec, err := i.getRec(id)
	if err != nil {
		return checklistapimodels.ChecklistView{}, err
	}
	if rec.Version != data.ExpectedVersion {
		return checklistapimodels.ChecklistView{}, ErrConcurrentModification
	}

	toStatus, allowed := data.Action.Transition(rec.Status)
	if !allowed {
		return checklistapimodels.ChecklistView{}, &InvalidTransitionError{From: rec.Status, Action: data.Action}
	}

	now := time.Now()
	updMap := map[string]interface{}{
		"status": toStatus,
	}
	comment := ""

	switch data.Action {
	case models.ChecklistActionPrepare:
		if missing := rec.MissingGates(); len(missing) > 0 {
			return checklistapimodels.ChecklistView{}, &IncompleteChecklistError{Missing: missing}
		}
	case models.ChecklistActionSubmit:
		updMap["prepared_by"] = actorID
		updMap["prepared_at"] = now
	case models.ChecklistActionApprove:
		if rec.PreparedBy != nil && *rec.PreparedBy == actorID {
			return checklistapimodels.ChecklistView{}, &SelfApprovalError{ActorID: actorID}
		}
		updMap["approved_by"] = actorID
		updMap["approved_at"] = now
	case models.ChecklistActionReject:
		if data.Reason == "" {
			return checklistapimodels.ChecklistView{}, errors.New("a rejection reason is required")
		}
		updMap["rejected_by"] = actorID
		updMap["rejected_at"] = now
		updMap["reject_reason"] = data.Reason
		comment = data.Reason
	case models.ChecklistActionReopen:
		updMap["prepared_by"] = nil
		updMap["prepared_at"] = nil
		updMap["approved_by"] = nil
		updMap["approved_at"] = nil
		updMap["rejected_by"] = nil
		updMap["rejected_at"] = nil
		updMap["reject_reason"] = ""
		updMap["revision"] = rec.Revision + 1
	}

	ok, err := i.store.UpdateCAS(rec.ID, rec.Status, rec.Version, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to apply checklist transition")
		return checklistapimodels.ChecklistView{}, err
	}
	if !ok {
		logger.Info("checklist transition lost the version race")
		return checklistapimodels.ChecklistView{}, ErrConcurrentModification
	}

	i.audit(*rec, data.Action, rec.Status, toStatus, actorID, comment, dbmodels.EntityChanges{})
	logger.
		WithField("from_status", rec.Status).
		WithField("to_status", toStatus).
		Info("checklist transition applied")

	if toStatus == models.ChecklistStatusApproved {
		i.emitAssignmentEvent(*rec, actorID, now)
	}
	return i.GetByID(id)
}

func (i impl) History(id string) ([]checklistapimodels.HistoryView, error) {
	list, err := i.historyStore.List(id)
	if err != nil {
		return nil, err
	}
	result := make([]checklistapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, checklistapimodels.HistoryConvert(rec))
	}
	return result, nil
}

func (i impl) getRec(id string) (*dbmodels.ReleaseChecklist, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("failed to read checklist")
		return nil, err
	}
	if rec == nil {
		return nil, ErrUnknownChecklist
	}
	return rec, nil
}

// audit appends a history row; failures are logged, never surfaced, so an
// audit hiccup cannot roll back an applied transition.
func (i impl) audit(rec dbmodels.ReleaseChecklist, action models.ChecklistAction, from, to models.ChecklistStatus, actorID, comment string, changes dbmodels.EntityChanges) {
	actorName := models.SystemUser
	historyRec := dbmodels.ChecklistHistory{
		ChecklistID:   rec.ID,
		RequirementID: rec.RequirementID,
		CandidateID:   rec.CandidateID,
		Action:        action,
		FromStatus:    from,
		ToStatus:      to,
		Comment:       comment,
		Changes:       changes,
	}
	if actorID != "" {
		historyRec.ActorID = &actorID
		user, err := i.staffStore.GetByID(actorID)
		if err != nil {
			i.GetLogger(rec.ID).WithError(err).Error("failed to resolve the transition actor for audit")
		} else if user != nil {
			actorName = user.GetFullName()
		}
	}
	historyRec.ActorName = actorName
	if _, err := i.historyStore.Create(historyRec); err != nil {
		i.GetLogger(rec.ID).WithError(err).Error("failed to append checklist history")
	}
}

func (i impl) emitAssignmentEvent(rec dbmodels.ReleaseChecklist, actorID string, approvedAt time.Time) {
	event := dbmodels.AssignmentEvent{
		EventID:       uuid.NewString(),
		ChecklistID:   rec.ID,
		RequirementID: rec.RequirementID,
		CandidateID:   rec.CandidateID,
		ApprovedBy:    actorID,
		ApprovedAt:    approvedAt,
	}
	if _, err := i.eventStore.Create(event); err != nil {
		i.GetLogger(rec.ID).WithError(err).Error("failed to emit assignment event")
	}
}

func applyGate(updMap map[string]interface{}, changes *dbmodels.EntityChanges, field string, current bool, next *bool) {
	if next == nil || *next == current {
		return
	}
	updMap[field] = *next
	changes.Data = append(changes.Data, dbmodels.FieldChanges{Field: field, OldValue: current, NewValue: *next})
}
