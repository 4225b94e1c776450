package extract

import (
	"reflect"
	"testing"
)

func TestConceptNames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single tag",
			text: "Well, [CONCEPT: Chlorophyll] absorbs red and blue light.",
			want: []string{"Chlorophyll"},
		},
		{
			name: "multiple tags with odd spacing",
			text: "[CONCEPT:Rayleigh Scattering] meets [CONCEPT:  Wavelength  ] head on.",
			want: []string{"Rayleigh Scattering", "Wavelength"},
		},
		{
			name: "no tags",
			text: "Just plain dialogue with [brackets] that are not markers.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConceptNames(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ConceptNames(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPausePrompts(t *testing.T) {
	text := `[PAUSE: "What would YOU expect to happen?"] Well, the light scatters.`
	got := PausePrompts(text)
	if len(got) != 1 || got[0] != "What would YOU expect to happen?" {
		t.Errorf("PausePrompts = %v", got)
	}

	if got := PausePrompts("no pauses here"); len(got) != 0 {
		t.Errorf("Expected no prompts, got %v", got)
	}
}

func TestHasLeadingPause(t *testing.T) {
	if !HasLeadingPause(`  [PAUSE: "Think first."] Then the answer.`) {
		t.Error("Expected leading pause with surrounding whitespace to be detected")
	}
	if HasLeadingPause(`The answer. [PAUSE: "Too late."]`) {
		t.Error("Expected trailing pause not to count as leading")
	}
	if HasLeadingPause("no marker at all") {
		t.Error("Expected no pause to be detected")
	}
}

func TestStripMarkers(t *testing.T) {
	text := `[PAUSE: "Guess first."] Think of [CONCEPT: Rayleigh Scattering] as pinballs.`
	want := "Think of Rayleigh Scattering as pinballs."
	if got := StripMarkers(text); got != want {
		t.Errorf("StripMarkers = %q, want %q", got, want)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"one two three", 3},
		{`[PAUSE: "Five words in this prompt?"] one two`, 2},
		{"[CONCEPT: Blue Light] scatters", 3},
		{"", 0},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
