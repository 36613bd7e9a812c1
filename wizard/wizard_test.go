package wizard

import (
	"errors"
	"testing"
)

func TestValidateCodeRejectsNonNumeric(t *testing.T) {
	if err := ValidateCode("12a", true); !errors.Is(err, ErrCodeNotNumeric) {
		t.Fatalf("expected ErrCodeNotNumeric, got %v", err)
	}
	if err := ValidateCode("", true); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("expected ErrEmptyCode, got %v", err)
	}
	if err := ValidateCode("  ", true); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("expected ErrEmptyCode for whitespace, got %v", err)
	}
}

func TestValidateCodeRequiresVerifiedEmail(t *testing.T) {
	if err := ValidateCode("8471", false); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
	if err := ValidateCode("8471", true); err != nil {
		t.Fatalf("expected valid code to pass, got %v", err)
	}
}

func TestAdvanceFollowsTransitionTable(t *testing.T) {
	next, err := Advance(StepCode)
	if err != nil || next != StepApprovals {
		t.Fatalf("expected approvals, got %v err=%v", next, err)
	}
	next, err = Advance(StepApprovals)
	if err != nil || next != StepDone {
		t.Fatalf("expected done, got %v err=%v", next, err)
	}
	if _, err := Advance(StepDone); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from done, got %v", err)
	}
	if _, err := Advance(Step("bogus")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown step, got %v", err)
	}
}

func TestCanSubmitOnlyFromApprovalsStep(t *testing.T) {
	if err := CanSubmit(StepCode, []int64{1}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := CanSubmit(StepApprovals, nil); !errors.Is(err, ErrNoApprovals) {
		t.Fatalf("expected ErrNoApprovals, got %v", err)
	}
	if err := CanSubmit(StepApprovals, []int64{3, 4}); err != nil {
		t.Fatalf("expected submit to pass, got %v", err)
	}
}

func TestParseResetsUnknownValues(t *testing.T) {
	if got := Parse("approvals"); got != StepApprovals {
		t.Fatalf("expected approvals, got %v", got)
	}
	if got := Parse("garbage"); got != StepCode {
		t.Fatalf("unknown value must reset to code step, got %v", got)
	}
	if got := Parse(""); got != StepCode {
		t.Fatalf("empty value must reset to code step, got %v", got)
	}
}
