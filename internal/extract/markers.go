package extract

import (
	"regexp"
	"strings"
)

// Inline marker grammar shared with the dialogue prompt:
//   [CONCEPT: Chlorophyll]    first mention of a navigable concept
//   [PAUSE: "prompt text"]    retrieval-practice pause before an answer
var (
	conceptPattern = regexp.MustCompile(`\[CONCEPT:\s*([^\]\n]+?)\s*\]`)
	pausePattern   = regexp.MustCompile(`\[PAUSE:\s*"([^"]*)"\s*\]`)
)

// ConceptNames returns the concept names tagged in the given text, in order
func ConceptNames(text string) []string {
	matches := conceptPattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSpace(m[1]))
	}
	return names
}

// PausePrompts returns the pause prompts embedded in the given text, in order
func PausePrompts(text string) []string {
	matches := pausePattern.FindAllStringSubmatch(text, -1)
	prompts := make([]string, 0, len(matches))
	for _, m := range matches {
		prompts = append(prompts, strings.TrimSpace(m[1]))
	}
	return prompts
}

// HasLeadingPause reports whether the text begins with a [PAUSE:] marker
func HasLeadingPause(text string) bool {
	loc := pausePattern.FindStringIndex(strings.TrimSpace(text))
	return loc != nil && loc[0] == 0
}

// StripMarkers removes pause markers and unwraps concept markers, leaving
// the spoken text the TTS collaborator would receive.
func StripMarkers(text string) string {
	out := pausePattern.ReplaceAllString(text, "")
	out = conceptPattern.ReplaceAllString(out, "$1")
	return strings.Join(strings.Fields(out), " ")
}

// WordCount counts spoken words, ignoring marker syntax
func WordCount(text string) int {
	return len(strings.Fields(StripMarkers(text)))
}
