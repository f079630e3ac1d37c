package models

type ChecklistStatus string

const (
	ChecklistStatusDraft           ChecklistStatus = "DRAFT"
	ChecklistStatusPrepared        ChecklistStatus = "PREPARED"
	ChecklistStatusPendingApproval ChecklistStatus = "PENDING_APPROVAL"
	ChecklistStatusApproved        ChecklistStatus = "APPROVED"
	ChecklistStatusRejected        ChecklistStatus = "REJECTED"
)

var checklistStatusHumanName = map[ChecklistStatus]string{
	ChecklistStatusDraft:           "Draft",
	ChecklistStatusPrepared:        "Prepared",
	ChecklistStatusPendingApproval: "Pending approval",
	ChecklistStatusApproved:        "Approved",
	ChecklistStatusRejected:        "Rejected",
}

func (s ChecklistStatus) ToHuman() string {
	if human, exist := checklistStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal reports whether no further action can be applied directly.
// REJECTED is terminal for the approval round but may be reopened to DRAFT.
func (s ChecklistStatus) IsTerminal() bool {
	return s == ChecklistStatusApproved
}

type ChecklistAction string

const (
	ChecklistActionPrepare ChecklistAction = "prepare"
	ChecklistActionSubmit  ChecklistAction = "submit"
	ChecklistActionApprove ChecklistAction = "approve"
	ChecklistActionReject  ChecklistAction = "reject"
	ChecklistActionReopen  ChecklistAction = "reopen"
)

func (a ChecklistAction) IsKnown() bool {
	switch a {
	case ChecklistActionPrepare, ChecklistActionSubmit, ChecklistActionApprove,
		ChecklistActionReject, ChecklistActionReopen:
		return true
	}
	return false
}

// checklistTransitions maps each action to its required source status and target.
var checklistTransitions = map[ChecklistAction]struct {
	From ChecklistStatus
	To   ChecklistStatus
}{
	ChecklistActionPrepare: {From: ChecklistStatusDraft, To: ChecklistStatusPrepared},
	ChecklistActionSubmit:  {From: ChecklistStatusPrepared, To: ChecklistStatusPendingApproval},
	ChecklistActionApprove: {From: ChecklistStatusPendingApproval, To: ChecklistStatusApproved},
	ChecklistActionReject:  {From: ChecklistStatusPendingApproval, To: ChecklistStatusRejected},
	ChecklistActionReopen:  {From: ChecklistStatusRejected, To: ChecklistStatusDraft},
}

// Transition returns the target status for the action applied in status from.
// ok is false when the state machine does not allow the action from that status.
func (a ChecklistAction) Transition(from ChecklistStatus) (to ChecklistStatus, ok bool) {
	t, exist := checklistTransitions[a]
	if !exist || t.From != from {
		return "", false
	}
	return t.To, true
}

// ChecklistGate names one of the eight boolean compliance gates.
type ChecklistGate string

const (
	GateIdentityVerified   ChecklistGate = "IDENTITY_VERIFIED"
	GateStcwValid          ChecklistGate = "STCW_VALID"
	GateMedicalValid       ChecklistGate = "MEDICAL_VALID"
	GateContractSigned     ChecklistGate = "CONTRACT_SIGNED"
	GateCustomerReqsMet    ChecklistGate = "CUSTOMER_REQS_MET"
	GateLanguageReqsMet    ChecklistGate = "LANGUAGE_REQS_MET"
	GateLogisticsConfirmed ChecklistGate = "LOGISTICS_CONFIRMED"
	GateReferencesChecked  ChecklistGate = "REFERENCES_CHECKED"
)

var checklistGateHumanName = map[ChecklistGate]string{
	GateIdentityVerified:   "Identity verified",
	GateStcwValid:          "STCW certificate valid",
	GateMedicalValid:       "Medical certificate valid",
	GateContractSigned:     "Contract signed",
	GateCustomerReqsMet:    "Customer-specific requirements met",
	GateLanguageReqsMet:    "Language requirements met",
	GateLogisticsConfirmed: "Logistics confirmed",
	GateReferencesChecked:  "References checked",
}

func (g ChecklistGate) ToHuman() string {
	if human, exist := checklistGateHumanName[g]; exist {
		return human
	}
	return string(g)
}

// AllChecklistGates lists the gates in the order they are shown to staffing.
var AllChecklistGates = []ChecklistGate{
	GateIdentityVerified,
	GateStcwValid,
	GateMedicalValid,
	GateContractSigned,
	GateCustomerReqsMet,
	GateLanguageReqsMet,
	GateLogisticsConfirmed,
	GateReferencesChecked,
}
