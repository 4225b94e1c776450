package sources

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	raw := `
	<html>
	<head>
		<title>Rayleigh Scattering</title>
		<style>body { color: blue; }</style>
		<script>trackEverything();</script>
	</head>
	<body>
		<nav>Home | About | Contact</nav>
		<h1>Why the sky is blue</h1>
		<p>Shorter wavelengths scatter more strongly than longer ones.</p>
		<p>Violet scatters even more, but our eyes favor blue.</p>
		<footer>Copyright somebody</footer>
	</body>
	</html>
	`

	title, text, err := ExtractText(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if title != "Rayleigh Scattering" {
		t.Errorf("expected title, got %q", title)
	}
	if !strings.Contains(text, "scatter more strongly") {
		t.Errorf("expected body text, got %q", text)
	}
	if strings.Contains(text, "trackEverything") || strings.Contains(text, "color: blue") {
		t.Errorf("expected script/style content to be dropped, got %q", text)
	}
	if strings.Contains(text, "Home | About") || strings.Contains(text, "Copyright") {
		t.Errorf("expected nav/footer chrome to be dropped, got %q", text)
	}

	// Paragraphs come out on separate lines
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		t.Errorf("expected heading and paragraphs on separate lines, got %q", text)
	}
}

func TestExtractText_NoTitle(t *testing.T) {
	title, text, err := ExtractText("<p>Just a fragment.</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "" {
		t.Errorf("expected empty title, got %q", title)
	}
	if text != "Just a fragment." {
		t.Errorf("expected fragment text, got %q", text)
	}
}
