package validate

import (
	"fmt"

	"github.com/podcastify/podcastify/internal/model"
)

// MaxGappedConfidence caps the confidence an atom set may report once it
// admits to gaps in its source coverage.
const MaxGappedConfidence = 0.7

// MaxDegenerateConfidence caps the confidence of an atom set produced with
// no usable sources.
const MaxDegenerateConfidence = 0.5

// AtomSet checks a teaching-atom set against the synthesis-with-attribution
// rules. allowedURLs is the exact source set the compressor was given: any
// citation outside it is a fabricated citation and fails the set.
func AtomSet(set *model.TeachingAtomSet, allowedURLs []string) error {
	var violations []string

	if set.SectionID == "" {
		violations = append(violations, "section_id is empty")
	}

	allowed := make(map[string]bool, len(allowedURLs))
	for _, u := range allowedURLs {
		allowed[u] = true
	}
	for _, cited := range set.CitedURLs() {
		if !allowed[cited] {
			violations = append(violations, fmt.Sprintf("cited source %q is not in the input source set", cited))
		}
	}

	if set.ConfidenceScore < 0 || set.ConfidenceScore > 1 {
		violations = append(violations, fmt.Sprintf("confidence_score %.2f outside [0,1]", set.ConfidenceScore))
	}

	if len(set.Gaps) > 0 && set.ConfidenceScore > MaxGappedConfidence {
		violations = append(violations, fmt.Sprintf(
			"confidence_score %.2f exceeds %.1f despite %d declared gaps",
			set.ConfidenceScore, MaxGappedConfidence, len(set.Gaps)))
	}

	if len(set.Examples) > 4 {
		violations = append(violations, fmt.Sprintf("%d examples exceeds the 2-4 target range", len(set.Examples)))
	}

	if len(violations) > 0 {
		return &MalformedAtomSetError{SectionID: set.SectionID, Violations: violations}
	}
	return nil
}
