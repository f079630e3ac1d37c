package models

type RequirementStatus string

const (
	RequirementStatusOpen      RequirementStatus = "OPEN"
	RequirementStatusFilled    RequirementStatus = "FILLED"
	RequirementStatusCancelled RequirementStatus = "CANCELLED"
)

var requirementStatusHumanName = map[RequirementStatus]string{
	RequirementStatusOpen:      "Open",
	RequirementStatusFilled:    "Filled",
	RequirementStatusCancelled: "Cancelled",
}

func (s RequirementStatus) ToHuman() string {
	if human, exist := requirementStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsOpen reports whether the requirement is still editable.
func (s RequirementStatus) IsOpen() bool {
	return s == RequirementStatusOpen
}

// IsAllowChange reports whether the requirement may move to newStatus.
// Open requirements can be filled or cancelled; filled and cancelled are terminal.
func (s RequirementStatus) IsAllowChange(newStatus RequirementStatus) bool {
	if s == newStatus {
		return false
	}
	if s != RequirementStatusOpen {
		return false
	}
	return newStatus == RequirementStatusFilled || newStatus == RequirementStatusCancelled
}

type UrgencyTier string

const (
	UrgencyImmediate UrgencyTier = "IMMEDIATE"
	UrgencyPlanned   UrgencyTier = "PLANNED"
	UrgencyPool      UrgencyTier = "POOL"
)
