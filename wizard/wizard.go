// Package wizard models the document-application flow as an explicit state
// machine: HS code entry, approval selection, then the issued documents.
package wizard

import (
	"errors"
	"strings"
)

type Step string

const (
	StepCode      Step = "code"
	StepApprovals Step = "approvals"
	StepDone      Step = "done"
)

var (
	ErrEmptyCode         = errors.New("hs code is required")
	ErrCodeNotNumeric    = errors.New("hs code must contain digits only")
	ErrEmailNotVerified  = errors.New("email is not verified")
	ErrNoApprovals       = errors.New("at least one approval must be selected")
	ErrInvalidTransition = errors.New("invalid wizard transition")
)

var transitions = map[Step]Step{
	StepCode:      StepApprovals,
	StepApprovals: StepDone,
}

// ValidateCode enforces the step-1 rules: non-empty, numeric-only HS code
// entered by a user with a verified email address.
func ValidateCode(code string, emailVerified bool) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrEmptyCode
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return ErrCodeNotNumeric
		}
	}
	if !emailVerified {
		return ErrEmailNotVerified
	}
	return nil
}

// Advance returns the step following current, or ErrInvalidTransition when
// current has no successor (or is unknown).
func Advance(current Step) (Step, error) {
	next, ok := transitions[current]
	if !ok {
		return current, ErrInvalidTransition
	}
	return next, nil
}

// CanSubmit reports whether a document request may be submitted from the
// given step with the selected approvals.
func CanSubmit(current Step, approvalIDs []int64) error {
	if current != StepApprovals {
		return ErrInvalidTransition
	}
	if len(approvalIDs) == 0 {
		return ErrNoApprovals
	}
	return nil
}

// Parse maps a stored step value back onto the enum; unknown values reset
// the flow to the first step.
func Parse(raw string) Step {
	switch Step(raw) {
	case StepApprovals:
		return StepApprovals
	case StepDone:
		return StepDone
	default:
		return StepCode
	}
}
