// Package score derives a source-quality ceiling for the confidence the
// research compressor is allowed to report. The LLM's self-reported score
// is clamped to the ceiling so confident-sounding prose over shallow
// material never survives the pipeline.
package score

import (
	"fmt"
	"math"

	"github.com/podcastify/podcastify/internal/model"
)

// SignalType classifies a diagnostic signal
type SignalType string

const (
	SignalSourceCoverage SignalType = "source_coverage" // How many usable sources backed the section
	SignalAuthority      SignalType = "authority_distribution"
	SignalRelevance      SignalType = "relevance"
	SignalGapDensity     SignalType = "gap_density" // Declared gaps vs. populated atoms
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Signal is one transparent scoring observation
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// ConfidenceScorer computes source-quality ceilings
type ConfidenceScorer struct{}

// NewConfidenceScorer creates a new scorer
func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// Ceiling computes the maximum defensible confidence for an atom set given
// the sources it was compressed from, with the signals explaining it.
func (s *ConfidenceScorer) Ceiling(sources []model.SourceDocument, set *model.TeachingAtomSet) (float64, []Signal) {
	var signals []Signal

	coverage, coverageSignal := s.coverage(sources)
	signals = append(signals, coverageSignal)

	authority, authoritySignal := s.authority(sources)
	signals = append(signals, authoritySignal)

	relevance, relevanceSignal := s.relevance(sources)
	signals = append(signals, relevanceSignal)

	// Weighted blend: coverage matters most, then authority, then relevance
	ceiling := 0.5*coverage + 0.3*authority + 0.2*relevance

	// Declared gaps pull the ceiling down further
	if n := len(set.Gaps); n > 0 {
		penalty := math.Min(0.1*float64(n), 0.3)
		ceiling -= penalty
		signals = append(signals, Signal{
			Type:        SignalGapDensity,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("%d declared gaps lower the ceiling by %.2f", n, penalty),
			Data:        map[string]interface{}{"gaps": n, "penalty": penalty},
		})
	}

	return clamp01(ceiling), signals
}

// Clamp bounds an atom set's self-reported confidence by the source-quality
// ceiling and returns the effective score.
func (s *ConfidenceScorer) Clamp(set *model.TeachingAtomSet, sources []model.SourceDocument) (float64, []Signal) {
	ceiling, signals := s.Ceiling(sources, set)
	if set.ConfidenceScore > ceiling {
		return ceiling, signals
	}
	return set.ConfidenceScore, signals
}

func (s *ConfidenceScorer) coverage(sources []model.SourceDocument) (float64, Signal) {
	n := len(sources)
	if n == 0 {
		return 0.3, Signal{
			Type:        SignalSourceCoverage,
			Severity:    SeverityCritical,
			Description: "No usable sources for this section",
			Data:        map[string]interface{}{"sources": 0},
		}
	}

	// Three sources is full coverage for a micro-episode section
	score := math.Min(float64(n)/3.0, 1.0)
	severity := SeverityInfo
	if n == 1 {
		severity = SeverityWarning
	}
	return score, Signal{
		Type:        SignalSourceCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d sources backing the section", n),
		Data:        map[string]interface{}{"sources": n, "score": score},
	}
}

func (s *ConfidenceScorer) authority(sources []model.SourceDocument) (float64, Signal) {
	if len(sources) == 0 {
		return 0, Signal{
			Type:        SignalAuthority,
			Severity:    SeverityWarning,
			Description: "No sources to classify",
		}
	}

	counts := map[AuthorityTier]int{}
	total := 0.0
	for _, src := range sources {
		tier := ClassifyAuthority(src.URL)
		counts[tier]++
		switch tier {
		case TierPrimary:
			total += 1.0
		case TierSecondary:
			total += 0.7
		default:
			total += 0.4
		}
	}
	score := total / float64(len(sources))

	severity := SeverityInfo
	if counts[TierPrimary] == 0 && counts[TierSecondary] == 0 {
		severity = SeverityWarning
	}
	return score, Signal{
		Type:     SignalAuthority,
		Severity: severity,
		Description: fmt.Sprintf("%d primary, %d secondary, %d tertiary sources",
			counts[TierPrimary], counts[TierSecondary], counts[TierTertiary]),
		Data: map[string]interface{}{
			"primary":   counts[TierPrimary],
			"secondary": counts[TierSecondary],
			"tertiary":  counts[TierTertiary],
			"score":     score,
		},
	}
}

func (s *ConfidenceScorer) relevance(sources []model.SourceDocument) (float64, Signal) {
	if len(sources) == 0 {
		return 0, Signal{
			Type:        SignalRelevance,
			Severity:    SeverityWarning,
			Description: "No sources to score",
		}
	}

	sum := 0.0
	for _, src := range sources {
		sum += clamp01(src.RelevanceScore)
	}
	mean := sum / float64(len(sources))

	severity := SeverityInfo
	if mean < 0.5 {
		severity = SeverityWarning
	}
	return mean, Signal{
		Type:        SignalRelevance,
		Severity:    severity,
		Description: fmt.Sprintf("Mean retrieval relevance %.2f", mean),
		Data:        map[string]interface{}{"mean_relevance": mean},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
