package dbmodels

import (
	"time"

	"crewing-backend/models"
)

// ReleaseChecklist gates a selected candidate's deployment for one requirement.
// Version guards every transition: a write only lands if the persisted status
// and version still match what the caller read.
type ReleaseChecklist struct {
	BaseModel
	RequirementID string          `gorm:"type:varchar(36);index"`
	Requirement   *JobRequirement `gorm:"foreignKey:RequirementID"`
	CandidateID   string          `gorm:"type:varchar(36);index"`
	Candidate     *Candidate      `gorm:"foreignKey:CandidateID"`
	Status        models.ChecklistStatus `gorm:"type:varchar(50);index"`
	Version       int
	Revision      int

	IdentityVerified   bool
	StcwValid          bool
	MedicalValid       bool
	ContractSigned     bool
	CustomerReqsMet    bool
	LanguageReqsMet    bool
	LogisticsConfirmed bool
	ReferencesChecked  bool

	Notes        string
	PreparedBy   *string `gorm:"type:varchar(36)"`
	PreparedAt   *time.Time
	ApprovedBy   *string `gorm:"type:varchar(36)"`
	ApprovedAt   *time.Time
	RejectedBy   *string `gorm:"type:varchar(36)"`
	RejectedAt   *time.Time
	RejectReason string
}

// GateValues maps each gate to its current value, in display order.
func (c ReleaseChecklist) GateValues() map[models.ChecklistGate]bool {
	return map[models.ChecklistGate]bool{
		models.GateIdentityVerified:   c.IdentityVerified,
		models.GateStcwValid:          c.StcwValid,
		models.GateMedicalValid:       c.MedicalValid,
		models.GateContractSigned:     c.ContractSigned,
		models.GateCustomerReqsMet:    c.CustomerReqsMet,
		models.GateLanguageReqsMet:    c.LanguageReqsMet,
		models.GateLogisticsConfirmed: c.LogisticsConfirmed,
		models.GateReferencesChecked:  c.ReferencesChecked,
	}
}

// MissingGates returns the unset gates in display order.
func (c ReleaseChecklist) MissingGates() []models.ChecklistGate {
	values := c.GateValues()
	missing := []models.ChecklistGate{}
	for _, gate := range models.AllChecklistGates {
		if !values[gate] {
			missing = append(missing, gate)
		}
	}
	return missing
}

// IsActive reports whether the checklist still blocks a new one for the pair.
func (c ReleaseChecklist) IsActive() bool {
	return c.Status != models.ChecklistStatusApproved && c.Status != models.ChecklistStatusRejected
}

// ChecklistHistory is the append-only audit trail of checklist transitions.
type ChecklistHistory struct {
	BaseModel
	ChecklistID   string `gorm:"type:varchar(36);index"`
	RequirementID string `gorm:"type:varchar(36)"`
	CandidateID   string `gorm:"type:varchar(36)"`
	Action        models.ChecklistAction `gorm:"type:varchar(50)"`
	FromStatus    models.ChecklistStatus `gorm:"type:varchar(50)"`
	ToStatus      models.ChecklistStatus `gorm:"type:varchar(50)"`
	ActorID       *string                `gorm:"type:varchar(36)"`
	ActorName     string                 `gorm:"type:varchar(255)"`
	Comment       string
	Changes       EntityChanges `gorm:"type:jsonb"`
}
