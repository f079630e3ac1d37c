package checklisthandler

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"crewing-backend/models"
)

// IncompleteChecklistError reports a prepare attempt with unset gates.
// Recoverable: the operator completes the gates and retries.
type IncompleteChecklistError struct {
	Missing []models.ChecklistGate
}

func (e *IncompleteChecklistError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, gate := range e.Missing {
		names = append(names, gate.ToHuman())
	}
	return fmt.Sprintf("checklist is incomplete, unset gates: %v", strings.Join(names, ", "))
}

// SelfApprovalError reports an approval attempt by the preparer.
// Not retryable with the same actor: separation of duties.
type SelfApprovalError struct {
	ActorID string
}

func (e *SelfApprovalError) Error() string {
	return "checklist cannot be approved by the user who prepared it"
}

// InvalidTransitionError reports an action the state machine does not allow
// from the checklist's current status.
type InvalidTransitionError struct {
	From   models.ChecklistStatus
	Action models.ChecklistAction
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %v is not allowed from status %v", e.Action, e.From)
}

var (
	// ErrConcurrentModification is returned when another writer advanced the
	// checklist between the caller's read and write. Transient: re-read and retry.
	ErrConcurrentModification = errors.New("checklist was modified concurrently, re-read and retry")

	ErrUnknownChecklist   = errors.New("checklist not found")
	ErrUnknownRequirement = errors.New("job requirement not found")
	ErrUnknownCandidate   = errors.New("candidate not found")
)
