package score

import (
	"math"
	"testing"

	"github.com/podcastify/podcastify/internal/model"
)

func TestClassifyAuthority(t *testing.T) {
	tests := []struct {
		url  string
		want AuthorityTier
	}{
		{"https://arxiv.org/abs/2301.00001", TierPrimary},
		{"https://www.nasa.gov/sky", TierPrimary},
		{"https://physics.mit.edu/light", TierPrimary},
		{"https://www.phon.ucl.ac.uk/notes", TierPrimary},
		{"https://en.wikipedia.org/wiki/Rayleigh_scattering", TierSecondary},
		{"https://ocw.mit.edu/courses/optics", TierSecondary},
		{"https://someblog.example.com/post", TierTertiary},
		{"not a url", TierTertiary},
	}

	for _, tt := range tests {
		if got := ClassifyAuthority(tt.url); got != tt.want {
			t.Errorf("ClassifyAuthority(%q) = %s, want %s", tt.url, got, tt.want)
		}
	}
}

func docs(urls ...string) []model.SourceDocument {
	out := make([]model.SourceDocument, len(urls))
	for i, u := range urls {
		out[i] = model.SourceDocument{URL: u, RelevanceScore: 1.0}
	}
	return out
}

func TestCeiling_NoSources(t *testing.T) {
	scorer := NewConfidenceScorer()
	set := &model.TeachingAtomSet{SectionID: "section_1"}

	ceiling, signals := scorer.Ceiling(nil, set)

	// 0.5*0.3 coverage floor + zero authority + zero relevance
	if math.Abs(ceiling-0.15) > 0.001 {
		t.Errorf("Expected ceiling 0.15 with no sources, got %.3f", ceiling)
	}

	critical := false
	for _, s := range signals {
		if s.Type == SignalSourceCoverage && s.Severity == SeverityCritical {
			critical = true
		}
	}
	if !critical {
		t.Error("Expected a critical coverage signal with no sources")
	}
}

func TestCeiling_StrongSources(t *testing.T) {
	scorer := NewConfidenceScorer()
	set := &model.TeachingAtomSet{SectionID: "section_1"}
	sources := docs(
		"https://arxiv.org/abs/2301.00001",
		"https://www.nasa.gov/sky",
		"https://physics.mit.edu/light",
	)

	ceiling, _ := scorer.Ceiling(sources, set)

	// Full coverage, all primary, full relevance: 0.5 + 0.3 + 0.2
	if math.Abs(ceiling-1.0) > 0.001 {
		t.Errorf("Expected ceiling 1.0 for three primary sources, got %.3f", ceiling)
	}
}

func TestCeiling_GapPenalty(t *testing.T) {
	scorer := NewConfidenceScorer()
	sources := docs(
		"https://arxiv.org/abs/2301.00001",
		"https://www.nasa.gov/sky",
		"https://physics.mit.edu/light",
	)

	withGaps := &model.TeachingAtomSet{
		SectionID: "section_1",
		Gaps:      []string{"sources disagree", "no data after 2020"},
	}
	ceiling, signals := scorer.Ceiling(sources, withGaps)
	if math.Abs(ceiling-0.8) > 0.001 {
		t.Errorf("Expected 0.1 penalty per gap, got ceiling %.3f", ceiling)
	}

	found := false
	for _, s := range signals {
		if s.Type == SignalGapDensity {
			found = true
		}
	}
	if !found {
		t.Error("Expected a gap density signal")
	}

	// Penalty saturates at 0.3
	manyGaps := &model.TeachingAtomSet{
		SectionID: "section_1",
		Gaps:      []string{"a", "b", "c", "d", "e"},
	}
	ceiling, _ = scorer.Ceiling(sources, manyGaps)
	if math.Abs(ceiling-0.7) > 0.001 {
		t.Errorf("Expected gap penalty capped at 0.3, got ceiling %.3f", ceiling)
	}
}

func TestClamp(t *testing.T) {
	scorer := NewConfidenceScorer()
	// One tertiary source: 0.5*(1/3) + 0.3*0.4 + 0.2*1.0 = 0.487
	sources := docs("https://someblog.example.com/post")

	set := &model.TeachingAtomSet{SectionID: "section_1", ConfidenceScore: 0.95}
	clamped, _ := scorer.Clamp(set, sources)
	if clamped >= 0.95 {
		t.Errorf("Expected self-reported 0.95 to be clamped down, got %.3f", clamped)
	}
	if math.Abs(clamped-0.487) > 0.01 {
		t.Errorf("Expected ceiling near 0.487, got %.3f", clamped)
	}

	// A modest self-report under the ceiling passes through unchanged
	set = &model.TeachingAtomSet{SectionID: "section_1", ConfidenceScore: 0.3}
	clamped, _ = scorer.Clamp(set, sources)
	if clamped != 0.3 {
		t.Errorf("Expected 0.3 to survive, got %.3f", clamped)
	}
}

func TestCeiling_RelevanceBlend(t *testing.T) {
	scorer := NewConfidenceScorer()
	set := &model.TeachingAtomSet{SectionID: "section_1"}

	sources := docs("https://arxiv.org/abs/2301.00001", "https://www.nasa.gov/sky", "https://physics.mit.edu/light")
	for i := range sources {
		sources[i].RelevanceScore = 0.5
	}

	ceiling, _ := scorer.Ceiling(sources, set)
	// 0.5*1.0 + 0.3*1.0 + 0.2*0.5
	if math.Abs(ceiling-0.9) > 0.001 {
		t.Errorf("Expected ceiling 0.9 at half relevance, got %.3f", ceiling)
	}
}
