package matchinghandler

import "github.com/pkg/errors"

var (
	ErrUnknownRequirement = errors.New("requirement not found")
	ErrNoCurrentMatch     = errors.New("candidate has no current match for this requirement")
)
