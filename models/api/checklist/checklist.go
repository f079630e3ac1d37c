package checklistapimodels

import (
	"time"

	"github.com/pkg/errors"

	"crewing-backend/models"
	dbmodels "crewing-backend/models/db"
)

type ChecklistCreateData struct {
	RequirementID string `json:"requirement_id"`
	CandidateID   string `json:"candidate_id"`
}

func (c ChecklistCreateData) Validate() error {
	if c.RequirementID == "" {
		return errors.New("requirement id is required")
	}
	if c.CandidateID == "" {
		return errors.New("candidate id is required")
	}
	return nil
}

// GatesData carries gate updates applied while the checklist is in DRAFT.
// Pointers distinguish "leave unchanged" from an explicit false.
type GatesData struct {
	IdentityVerified   *bool   `json:"identity_verified"`
	StcwValid          *bool   `json:"stcw_valid"`
	MedicalValid       *bool   `json:"medical_valid"`
	ContractSigned     *bool   `json:"contract_signed"`
	CustomerReqsMet    *bool   `json:"customer_reqs_met"`
	LanguageReqsMet    *bool   `json:"language_reqs_met"`
	LogisticsConfirmed *bool   `json:"logistics_confirmed"`
	ReferencesChecked  *bool   `json:"references_checked"`
	Notes              *string `json:"notes"`
}

type AdvanceData struct {
	Action          models.ChecklistAction `json:"action"`
	ExpectedVersion int                    `json:"expected_version"`
	Reason          string                 `json:"reason"` // required for reject
}

func (a AdvanceData) Validate() error {
	if !a.Action.IsKnown() {
		return errors.Errorf("unknown checklist action: %v", a.Action)
	}
	if a.Action == models.ChecklistActionReject && a.Reason == "" {
		return errors.New("a rejection reason is required")
	}
	return nil
}

type ChecklistView struct {
	ID            string                 `json:"id"`
	RequirementID string                 `json:"requirement_id"`
	CandidateID   string                 `json:"candidate_id"`
	CandidateName string                 `json:"candidate_name"`
	RoleTitle     string                 `json:"role_title"`
	Status        models.ChecklistStatus `json:"status"`
	Version       int                    `json:"version"`
	Revision      int                    `json:"revision"`
	Gates         map[models.ChecklistGate]bool `json:"gates"`
	MissingGates  []models.ChecklistGate        `json:"missing_gates"`
	Notes         string                        `json:"notes"`
	PreparedBy    *string                       `json:"prepared_by"`
	PreparedAt    *time.Time                    `json:"prepared_at"`
	ApprovedBy    *string                       `json:"approved_by"`
	ApprovedAt    *time.Time                    `json:"approved_at"`
	RejectedBy    *string                       `json:"rejected_by"`
	RejectedAt    *time.Time                    `json:"rejected_at"`
	RejectReason  string                        `json:"reject_reason"`
	CreatedAt     time.Time                     `json:"created_at"`
}

func ChecklistConvert(rec dbmodels.ReleaseChecklist) ChecklistView {
	candidateName := ""
	if rec.Candidate != nil {
		candidateName = rec.Candidate.GetFullName()
	}
	roleTitle := ""
	if rec.Requirement != nil {
		roleTitle = rec.Requirement.RoleTitle
	}
	return ChecklistView{
		ID:            rec.ID,
		RequirementID: rec.RequirementID,
		CandidateID:   rec.CandidateID,
		CandidateName: candidateName,
		RoleTitle:     roleTitle,
		Status:        rec.Status,
		Version:       rec.Version,
		Revision:      rec.Revision,
		Gates:         rec.GateValues(),
		MissingGates:  rec.MissingGates(),
		Notes:         rec.Notes,
		PreparedBy:    rec.PreparedBy,
		PreparedAt:    rec.PreparedAt,
		ApprovedBy:    rec.ApprovedBy,
		ApprovedAt:    rec.ApprovedAt,
		RejectedBy:    rec.RejectedBy,
		RejectedAt:    rec.RejectedAt,
		RejectReason:  rec.RejectReason,
		CreatedAt:     rec.CreatedAt,
	}
}

type HistoryView struct {
	ID          string                 `json:"id"`
	ChecklistID string                 `json:"checklist_id"`
	Action      models.ChecklistAction `json:"action"`
	FromStatus  models.ChecklistStatus `json:"from_status"`
	ToStatus    models.ChecklistStatus `json:"to_status"`
	ActorID     *string                `json:"actor_id"`
	ActorName   string                 `json:"actor_name"`
	Comment     string                 `json:"comment"`
	Changes     dbmodels.EntityChanges `json:"changes"`
	CreatedAt   time.Time              `json:"created_at"`
}

func HistoryConvert(rec dbmodels.ChecklistHistory) HistoryView {
	return HistoryView{
		ID:          rec.ID,
		ChecklistID: rec.ChecklistID,
		Action:      rec.Action,
		FromStatus:  rec.FromStatus,
		ToStatus:    rec.ToStatus,
		ActorID:     rec.ActorID,
		ActorName:   rec.ActorName,
		Comment:     rec.Comment,
		Changes:     rec.Changes,
		CreatedAt:   rec.CreatedAt,
	}
}
