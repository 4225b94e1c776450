// Package validate enforces the semantic invariants of each pipeline stage
// after the JSON schema has accepted the shape. Each check appends a plain
// violation string; the collected list drives both the typed stage error and
// the regeneration feedback prompt.
package validate

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// Outline budgets for the 2-3 minute episode format
const (
	MinSections        = 3
	MaxSections        = 4
	MinTotalDurationSec = 120
	MaxTotalDurationSec = 180
)

// TargetWords is the whole-script word budget; WordTolerance the allowed
// relative deviation.
const (
	TargetWords   = 450
	WordTolerance = 0.10
)

// Outline checks the outline invariants. Returns nil or a
// *MalformedOutlineError listing every violation found.
func Outline(o *model.Outline) error {
	var violations []string

	if strings.TrimSpace(o.Title) == "" {
		violations = append(violations, "title is empty")
	}
	if strings.TrimSpace(o.SocraticQuestion) == "" {
		violations = append(violations, "socratic_question is empty")
	} else if !strings.HasSuffix(strings.TrimSpace(o.SocraticQuestion), "?") {
		violations = append(violations, "socratic_question must be a question ending with '?'")
	}
	if strings.TrimSpace(o.KeyInsight) == "" {
		violations = append(violations, "key_insight is empty")
	}

	n := len(o.Sections)
	if n < MinSections || n > MaxSections {
		violations = append(violations, fmt.Sprintf("section count %d outside [%d,%d]", n, MinSections, MaxSections))
	}

	checkpoints := 0
	seenIDs := make(map[string]bool)
	for i, s := range o.Sections {
		if s.IsSocraticCheckpoint {
			checkpoints++
		}
		if s.ID == "" {
			violations = append(violations, fmt.Sprintf("section %d has no id", i+1))
		} else if seenIDs[s.ID] {
			violations = append(violations, fmt.Sprintf("duplicate section id %q", s.ID))
		}
		seenIDs[s.ID] = true

		if len(s.LearningOutcomes) == 0 {
			violations = append(violations, fmt.Sprintf("section %q has no learning outcomes", s.ID))
		}
		if s.EstimatedDurationSec <= 0 {
			violations = append(violations, fmt.Sprintf("section %q has non-positive duration", s.ID))
		}
	}
	if checkpoints != 1 {
		violations = append(violations, fmt.Sprintf("expected exactly 1 socratic checkpoint, found %d", checkpoints))
	}

	total := o.TotalDurationSec()
	if total < MinTotalDurationSec || total > MaxTotalDurationSec {
		violations = append(violations, fmt.Sprintf("total duration %ds outside [%d,%d]", total, MinTotalDurationSec, MaxTotalDurationSec))
	}

	if o.EstimatedWordCount > 0 {
		if !withinTolerance(o.EstimatedWordCount, TargetWords, WordTolerance) {
			violations = append(violations, fmt.Sprintf("estimated word count %d not within %.0f%% of %d",
				o.EstimatedWordCount, WordTolerance*100, TargetWords))
		}
	}

	if len(violations) > 0 {
		return &MalformedOutlineError{Violations: violations}
	}
	return nil
}

func withinTolerance(actual, target int, tolerance float64) bool {
	lo := float64(target) * (1 - tolerance)
	hi := float64(target) * (1 + tolerance)
	return float64(actual) >= lo && float64(actual) <= hi
}
