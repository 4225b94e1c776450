package validate

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/extract"
	"github.com/podcastify/podcastify/internal/model"
)

// Dialogue budgets. The base turn window covers the three mandatory phases;
// an optional quick-example phase may append 2-4 more turns. The word budget
// holds regardless.
const (
	MinTurns     = 16
	MaxTurns     = 20
	MaxTurnWords = 40

	MinPauses   = 2
	MaxPauses   = 3
	MaxPauseWords = 9 // Pause prompts stay under 10 words

	MinConcepts = 8
	MaxConcepts = 12

	MinExampleTurns = 2
	MaxExampleTurns = 4
)

// Per-phase turn windows
var phaseTurnRange = map[model.Phase][2]int{
	model.PhaseHook:        {4, 6},
	model.PhaseCoreConcept: {8, 10},
	model.PhaseKeyInsight:  {4, 6},
}

// Brainy's share of spoken words targets 60%, with 10 points of slack
const (
	minBrainyShare = 0.50
	maxBrainyShare = 0.70
)

// Script checks every dialogue invariant against the outline that produced
// it. Returns nil or a *MalformedScriptError listing all violations; the
// defined recovery is regeneration, never partial patching.
func Script(s *model.DialogueScript, outline *model.Outline) error {
	var violations []string

	turns := s.Script
	if len(turns) == 0 {
		return &MalformedScriptError{Violations: []string{"script has no turns"}}
	}

	violations = append(violations, checkTurnBudget(turns)...)
	violations = append(violations, checkPhases(turns)...)
	violations = append(violations, checkTurns(turns, outline)...)
	violations = append(violations, checkWordBudget(turns)...)
	violations = append(violations, checkSpeakerBalance(turns)...)
	violations = append(violations, checkPauses(turns)...)
	violations = append(violations, checkConcepts(turns)...)
	violations = append(violations, checkOpening(turns, outline)...)
	violations = append(violations, checkKeyInsight(turns, outline)...)

	if len(violations) > 0 {
		return &MalformedScriptError{Violations: violations}
	}
	return nil
}

func checkTurnBudget(turns []model.Turn) []string {
	var violations []string

	base, example := 0, 0
	for _, t := range turns {
		if t.Phase == model.PhaseQuickExample {
			example++
		} else {
			base++
		}
	}

	if base < MinTurns || base > MaxTurns {
		violations = append(violations, fmt.Sprintf("turn count %d outside [%d,%d] (excluding quick-example turns)", base, MinTurns, MaxTurns))
	}
	if example > 0 && (example < MinExampleTurns || example > MaxExampleTurns) {
		violations = append(violations, fmt.Sprintf("quick-example phase has %d turns, expected %d-%d", example, MinExampleTurns, MaxExampleTurns))
	}
	return violations
}

// checkPhases enforces the monotonic Hook -> Core Concept -> Key Insight
// (-> Quick Example) traversal and the per-phase turn windows.
func checkPhases(turns []model.Turn) []string {
	var violations []string

	counts := make(map[model.Phase]int)
	lastRank := -1
	for i, t := range turns {
		rank := t.Phase.Rank()
		if rank < 0 {
			violations = append(violations, fmt.Sprintf("turn %d has unknown phase %q", i+1, t.Phase))
			continue
		}
		if rank < lastRank {
			violations = append(violations, fmt.Sprintf("turn %d re-enters phase %q after it was exited", i+1, t.Phase))
		}
		lastRank = rank
		counts[t.Phase]++
	}

	for _, phase := range []model.Phase{model.PhaseHook, model.PhaseCoreConcept, model.PhaseKeyInsight} {
		r := phaseTurnRange[phase]
		n := counts[phase]
		if n == 0 {
			violations = append(violations, fmt.Sprintf("mandatory phase %q is missing", phase))
		} else if n < r[0] || n > r[1] {
			violations = append(violations, fmt.Sprintf("phase %q has %d turns, expected %d-%d", phase, n, r[0], r[1]))
		}
	}
	return violations
}

func checkTurns(turns []model.Turn, outline *model.Outline) []string {
	var violations []string

	patterns := make(map[string]bool)
	for _, p := range model.InteractionPatterns() {
		patterns[p] = true
	}

	streak, prevSpeaker := 0, model.Speaker("")
	for i, t := range turns {
		if t.Speaker != model.SpeakerBrainy && t.Speaker != model.SpeakerSnarky {
			violations = append(violations, fmt.Sprintf("turn %d has unknown speaker %q", i+1, t.Speaker))
		}
		if _, ok := outline.Section(t.SectionID); !ok {
			violations = append(violations, fmt.Sprintf("turn %d references unknown section %q", i+1, t.SectionID))
		}
		if !patterns[t.Notes] {
			violations = append(violations, fmt.Sprintf("turn %d notes %q is not one of the five interaction patterns", i+1, t.Notes))
		}

		if words := extract.WordCount(t.Text); words > MaxTurnWords {
			violations = append(violations, fmt.Sprintf("turn %d has %d words, cap is %d", i+1, words, MaxTurnWords))
		}

		if t.Speaker == prevSpeaker {
			streak++
		} else {
			streak = 1
			prevSpeaker = t.Speaker
		}
		if streak == 3 {
			violations = append(violations, fmt.Sprintf("turn %d is the third consecutive %s turn", i+1, t.Speaker))
		}
	}
	return violations
}

func checkWordBudget(turns []model.Turn) []string {
	total := 0
	for _, t := range turns {
		total += extract.WordCount(t.Text)
	}
	if !withinTolerance(total, TargetWords, WordTolerance) {
		return []string{fmt.Sprintf("total word count %d not within %.0f%% of %d", total, WordTolerance*100, TargetWords)}
	}
	return nil
}

func checkSpeakerBalance(turns []model.Turn) []string {
	brainy, total := 0, 0
	for _, t := range turns {
		words := extract.WordCount(t.Text)
		total += words
		if t.Speaker == model.SpeakerBrainy {
			brainy += words
		}
	}
	if total == 0 {
		return nil
	}
	share := float64(brainy) / float64(total)
	if share < minBrainyShare || share > maxBrainyShare {
		return []string{fmt.Sprintf("Brainy word share %.0f%% outside the 60:40 target (allowed %.0f%%-%.0f%%)",
			share*100, minBrainyShare*100, maxBrainyShare*100)}
	}
	return nil
}

// checkPauses enforces the retrieval-practice rule: a pause marker opens a
// Brainy turn that answers a real Snarky question from the previous turn.
func checkPauses(turns []model.Turn) []string {
	var violations []string

	count := 0
	for i, t := range turns {
		prompts := extract.PausePrompts(t.Text)
		if len(prompts) == 0 {
			continue
		}
		count += len(prompts)

		if len(prompts) > 1 {
			violations = append(violations, fmt.Sprintf("turn %d carries %d pause markers, at most one per turn", i+1, len(prompts)))
		}
		if t.Speaker != model.SpeakerBrainy {
			violations = append(violations, fmt.Sprintf("turn %d: pause markers belong on the guiding persona's turns", i+1))
		}
		if !extract.HasLeadingPause(t.Text) {
			violations = append(violations, fmt.Sprintf("turn %d: pause marker must open the turn, before the answer", i+1))
		}
		if i == 0 || turns[i-1].Speaker != model.SpeakerSnarky || !strings.Contains(turns[i-1].Text, "?") {
			violations = append(violations, fmt.Sprintf("turn %d: pause must follow a Snarky question", i+1))
		}
		for _, p := range prompts {
			if len(strings.Fields(p)) > MaxPauseWords {
				violations = append(violations, fmt.Sprintf("turn %d: pause prompt %q exceeds %d words", i+1, p, MaxPauseWords))
			}
		}
	}

	if count < MinPauses || count > MaxPauses {
		violations = append(violations, fmt.Sprintf("%d pause markers, expected %d-%d", count, MinPauses, MaxPauses))
	}
	return violations
}

// checkConcepts enforces first-mention-only tagging within the [8,12] window
func checkConcepts(turns []model.Turn) []string {
	var violations []string

	seen := make(map[string]bool)
	count := 0
	for i, t := range turns {
		for _, name := range extract.ConceptNames(t.Text) {
			count++
			lower := strings.ToLower(name)
			if seen[lower] {
				violations = append(violations, fmt.Sprintf("turn %d tags %q again; concepts are tagged only at first mention", i+1, name))
			}
			seen[lower] = true
		}
	}

	if count < MinConcepts || count > MaxConcepts {
		violations = append(violations, fmt.Sprintf("%d concept tags, expected %d-%d", count, MinConcepts, MaxConcepts))
	}
	return violations
}

func checkOpening(turns []model.Turn, outline *model.Outline) []string {
	var violations []string

	first := turns[0]
	if first.Speaker != model.SpeakerBrainy {
		violations = append(violations, "script must open with a Brainy turn")
	}
	if first.Phase != model.PhaseHook {
		violations = append(violations, "first turn must be in the hook phase")
	}
	if !strings.HasPrefix(normalize(extract.StripMarkers(first.Text)), normalize(outline.SocraticQuestion)) {
		violations = append(violations, "opening turn must pose the outline's socratic question with no preamble")
	}
	return violations
}

// checkKeyInsight requires the key-insight phase to restate the outline's
// key insight verbatim or near-verbatim (>= 80% word overlap).
func checkKeyInsight(turns []model.Turn, outline *model.Outline) []string {
	var insightText strings.Builder
	for _, t := range turns {
		if t.Phase == model.PhaseKeyInsight {
			insightText.WriteString(normalize(extract.StripMarkers(t.Text)))
			insightText.WriteString(" ")
		}
	}
	haystack := insightText.String()
	if haystack == "" {
		return nil // Missing phase already reported by checkPhases
	}

	needle := normalize(outline.KeyInsight)
	if strings.Contains(haystack, needle) {
		return nil
	}

	words := strings.Fields(needle)
	if len(words) == 0 {
		return nil
	}
	present := 0
	for _, w := range words {
		if strings.Contains(haystack, w) {
			present++
		}
	}
	if float64(present)/float64(len(words)) >= 0.8 {
		return nil
	}

	return []string{"key-insight phase does not restate the outline's key insight"}
}

// normalize lowercases and strips punctuation for fuzzy text comparison
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
