package model

// SourceDocument is one retrieved research source handed to the compressor.
// Retrieval itself is external; we only consume {url, title, content, score}.
type SourceDocument struct {
	URL            string  `json:"url"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// CoreConcept is the definitional atom of a section
type CoreConcept struct {
	Definition   string   `json:"definition"`
	WhyItMatters string   `json:"why_it_matters"`
	Sources      []string `json:"sources"`
}

// Intuition captures the mental model and analogy for a concept
type Intuition struct {
	MentalModel       string   `json:"mental_model"`
	Analogy           string   `json:"analogy"`
	VisualDescription string   `json:"visual_description,omitempty"`
	Sources           []string `json:"sources"`
}

// Example is one concrete illustration of the concept
type Example struct {
	Description string `json:"description"`
	WhatItShows string `json:"what_it_shows"`
	Source      string `json:"source"`
}

// Misconception records a common wrong belief and its correction
type Misconception struct {
	Misconception  string `json:"misconception"`
	WhyWrong       string `json:"why_wrong"`
	CorrectVersion string `json:"correct_version"`
	Source         string `json:"source"`
}

// EdgeCase records where the concept breaks down or behaves unexpectedly
type EdgeCase struct {
	Description  string `json:"description"`
	WhyItMatters string `json:"why_it_matters,omitempty"`
	Source       string `json:"source"`
}

// RelatedConcept links a neighboring concept for the concept graph
type RelatedConcept struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Source       string `json:"source,omitempty"`
}

// TeachingAtomSet is the compressed, source-cited knowledge for one outline
// section. Every factual field must cite at least one URL from the input
// source set; conflicting sources are both recorded, never silently dropped.
type TeachingAtomSet struct {
	SectionID       string           `json:"section_id"`
	CoreConcept     CoreConcept      `json:"core_concept"`
	Intuition       Intuition        `json:"intuition"`
	Examples        []Example        `json:"examples"`
	Misconceptions  []Misconception  `json:"misconceptions"`
	EdgeCases       []EdgeCase       `json:"edge_cases,omitempty"`
	RelatedConcepts []RelatedConcept `json:"related_concepts,omitempty"`

	// ConfidenceScore reflects source quality, not correctness. Shallow or
	// contradictory material lowers the score and populates Gaps instead of
	// producing confident-sounding prose.
	ConfidenceScore float64  `json:"confidence_score"`
	Gaps            []string `json:"gaps,omitempty"`
}

// CitedURLs collects every source URL referenced anywhere in the set, deduplicated
func (s *TeachingAtomSet) CitedURLs() []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, u := range s.CoreConcept.Sources {
		add(u)
	}
	for _, u := range s.Intuition.Sources {
		add(u)
	}
	for _, e := range s.Examples {
		add(e.Source)
	}
	for _, m := range s.Misconceptions {
		add(m.Source)
	}
	for _, e := range s.EdgeCases {
		add(e.Source)
	}
	for _, r := range s.RelatedConcepts {
		add(r.Source)
	}
	return urls
}

// DegenerateAtomSet is the non-fatal fallback when a section has no usable
// sources: low confidence, explicit gaps, no invented content.
func DegenerateAtomSet(sectionID string, reason string) TeachingAtomSet {
	return TeachingAtomSet{
		SectionID:       sectionID,
		ConfidenceScore: 0.3,
		Gaps:            []string{reason},
	}
}
