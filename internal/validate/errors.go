package validate

import (
	"fmt"
	"strings"
)

// Stage errors are never silently repaired: the stage fails and the caller
// regenerates, feeding the violation list back into the next prompt.

// MalformedOutlineError reports outline shape/count/budget violations
type MalformedOutlineError struct {
	Violations []string
}

func (e *MalformedOutlineError) Error() string {
	return fmt.Sprintf("malformed outline: %s", strings.Join(e.Violations, "; "))
}

// MalformedAtomSetError reports citation or shape violations in a
// teaching-atom set
type MalformedAtomSetError struct {
	SectionID  string
	Violations []string
}

func (e *MalformedAtomSetError) Error() string {
	return fmt.Sprintf("malformed atom set for %s: %s", e.SectionID, strings.Join(e.Violations, "; "))
}

// MalformedScriptError reports turn/word/marker/phase violations in a
// dialogue script
type MalformedScriptError struct {
	Violations []string
}

func (e *MalformedScriptError) Error() string {
	return fmt.Sprintf("malformed script: %s", strings.Join(e.Violations, "; "))
}

// SourceInsufficiencyWarning is the one recoverable condition: shallow or
// missing sources degrade confidence and populate gaps instead of aborting.
type SourceInsufficiencyWarning struct {
	SectionID string
	Reasons   []string
}

func (w *SourceInsufficiencyWarning) Error() string {
	return fmt.Sprintf("insufficient sources for %s: %s", w.SectionID, strings.Join(w.Reasons, "; "))
}
