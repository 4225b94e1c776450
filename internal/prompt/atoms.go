package prompt

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// AtomsSystem is the role instruction for the research compression stage
const AtomsSystem = `You are a research librarian compressing source material into teaching atoms. You NEVER invent content: every claim you emit must trace to the provided sources. Quality of attribution matters more than completeness.`

// maxSourceChars bounds how much of each source lands in the prompt
const maxSourceChars = 3000

// AtomsRequest carries the inputs for building a compression prompt
type AtomsRequest struct {
	Section  model.OutlineSection
	Sources  []model.SourceDocument
	Level    model.Level
	Feedback []string
}

// BuildAtoms constructs the research-compression prompt for one section
func BuildAtoms(req AtomsRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Compress the research sources below into teaching atoms for one lesson section.

**Section**: %s (%s)
**Section goal**: %s
**Learning outcomes**:
`, req.Section.ID, req.Section.Title, req.Section.Description)

	for _, outcome := range req.Section.LearningOutcomes {
		fmt.Fprintf(&b, "- %s\n", outcome)
	}

	fmt.Fprintf(&b, "\n**Level**: %s\n%s\n", req.Level, levelGuidance(req.Level))

	b.WriteString("\nALLOWED SOURCES - you may ONLY cite URLs from this list:\n")
	for i, src := range req.Sources {
		content := src.Content
		if len(content) > maxSourceChars {
			content = content[:maxSourceChars] + "..."
		}
		fmt.Fprintf(&b, "\n[Source %d] %s (relevance %.2f)\nURL: %s\n%s\n", i+1, src.Title, src.RelevanceScore, src.URL, content)
	}

	fmt.Fprintf(&b, `
Return your response as valid JSON matching this structure:
{
  "section_id": "%s",
  "core_concept": {"definition": "...", "why_it_matters": "...", "sources": ["url"]},
  "intuition": {"mental_model": "...", "analogy": "...", "visual_description": "...", "sources": ["url"]},
  "examples": [{"description": "...", "what_it_shows": "...", "source": "url"}],
  "misconceptions": [{"misconception": "...", "why_wrong": "...", "correct_version": "...", "source": "url"}],
  "edge_cases": [{"description": "...", "why_it_matters": "...", "source": "url"}],
  "related_concepts": [{"name": "...", "relationship": "...", "source": "url"}],
  "confidence_score": 0.85,
  "gaps": []
}

CRITICAL RULES:
1. Every factual field cites at least one URL from the ALLOWED SOURCES list. Citing any other URL is a hard failure.
2. If two sources disagree, record BOTH positions with an explicit note in "gaps" - never pick one silently.
3. If the sources are shallow, contradictory, or off-topic, LOWER confidence_score and add entries to "gaps" instead of writing confident-sounding prose.
4. confidence_score is in [0,1] and reflects source quality, not how sure the claims sound. With non-empty gaps it must not exceed 0.7.
5. Do not pad: an honest thin atom set beats an invented rich one.
`, req.Section.ID)

	appendFeedback(&b, req.Feedback)
	return b.String()
}

// levelGuidance scales compression depth with the declared difficulty
func levelGuidance(level model.Level) string {
	switch level {
	case model.LevelBeginner:
		return "Prefer fewer, simpler examples (2 at most) and ONE dominant misconception. Skip edge cases unless a source makes one unavoidable."
	case model.LevelAdvanced:
		return "Favor 3-4 nuanced examples and emphasize edge cases over basic examples. Assume the definitional ground is familiar."
	case model.LevelIntermediate:
		return "Balance 2-3 examples with the one or two misconceptions the sources document best."
	default:
		return "Judge the appropriate depth from the sources and the section's learning outcomes."
	}
}
