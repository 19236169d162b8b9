package main

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"paragraph", "<p>Hello world</p>", "Hello world"},
		{"heading", "<h2>Section Title</h2>", "## Section Title"},
		{"bold", "<p>some <strong>bold</strong> text</p>", "some **bold** text"},
		{"emphasis", "<p>an <em>italic</em> word</p>", "an *italic* word"},
		{"link", `<p><a href="https://example.com">a link</a></p>`, "[a link](https://example.com)"},
		{"blockquote", "<blockquote>quoted text</blockquote>", "> quoted text"},
		{"entities", "<p>fish &amp; chips</p>", "fish & chips"},
		{"named entity no tags", "fish &amp; chips", "fish & chips"},
		{"numeric entity", "caf&#233; culture", "café culture"},
		{"double encoded", "fish &amp;amp; chips", "fish & chips"},
		{"plain text untouched", "just some plain text", "just some plain text"},
		{"stray angle bracket", "a < b and b > a", "a < b and b > a"},
		{"image", `<p><img src="https://example.com/a.png" alt="pic"></p>`, "![pic](https://example.com/a.png)"},
		{"image empty src", `<p><img src="" alt="broken"></p>`, ""},
		{"image no src", `<p><img alt="broken"></p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize("<ul><li>first</li><li>second</li></ul>")
	if !strings.Contains(result, "- first") || !strings.Contains(result, "- second") {
		t.Errorf("list not converted: %q", result)
	}
}

func TestNormalizeStripsScripts(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name  string
		input string
		junk  string
	}{
		{"script", `<p>before</p><script>alert("x")</script><p>after</p>`, "alert"},
		{"style", `<style>body { color: red }</style><p>text</p>`, "color"},
		{"iframe", `<iframe src="https://evil.example"></iframe><p>text</p>`, "evil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			if strings.Contains(result, tt.junk) {
				t.Errorf("Normalize(%q) kept unsafe content: %q", tt.input, result)
			}
		})
	}
}

func TestNormalizeImageQuotes(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize(`<img src="https://example.com/it's.png" alt="say &quot;hi&quot;">`)
	if strings.Contains(result, `"`) {
		t.Errorf("double quotes survived image conversion: %q", result)
	}
}

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize("first line\n\n\n\n\nsecond line   \n")
	expected := "first line\n\nsecond line"
	if result != expected {
		t.Errorf("Normalize() = %q, want %q", result, expected)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{
		"<p>Hello <strong>world</strong></p><h2>Next</h2>",
		"already clean\n\nmarkdown text with [a link](https://example.com)",
		"<ul><li>one</li><li>two</li></ul>",
		"fish &amp;amp; chips",
		`<p><img src="https://example.com/a.png"></p>`,
		"a < b, stray brackets stay",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	n := NewNormalizer()

	// Must not panic and must keep the text content.
	inputs := []string{
		"<p>unclosed paragraph",
		"<div><span>nested unclosed",
		"<<<>>>",
		"<p>text with <b>partial</p>",
	}

	for _, input := range inputs {
		result := n.Normalize(input)
		_ = result
	}
}

func TestSubtitle(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"first image wins", "some intro text here\n\n![pic](https://example.com/a.png)", "![pic](https://example.com/a.png)"},
		{"first text line", "# Heading\n\nThis is the opening line of the post.", "This is the opening line of the post."},
		{"skips short lines", "hi\n\nA line that is long enough to use.", "A line that is long enough to use."},
		{"empty body", "", ""},
		{"only headings", "# One\n## Two", ""},
		{"link flattened", "Read [the docs](https://example.com/docs) for details.", "Read the docs for details."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Subtitle(tt.body)
			if result != tt.expected {
				t.Errorf("Subtitle(%q) = %q, want %q", tt.body, result, tt.expected)
			}
		})
	}
}

func TestSubtitleTruncates(t *testing.T) {
	n := NewNormalizer()

	long := strings.Repeat("word ", 40)
	result := n.Subtitle(long)
	if !strings.HasSuffix(result, "...") {
		t.Errorf("long subtitle not truncated: %q", result)
	}
	if len([]rune(result)) > 103 {
		t.Errorf("subtitle too long: %d runes", len([]rune(result)))
	}
}

func TestSubtitleEmptySrcImage(t *testing.T) {
	n := NewNormalizer()

	// An empty-src image normalizes away entirely: no subtitle, no
	// dangling markup.
	body := n.Normalize(`<p><img src="" alt="gone"></p>`)
	if body != "" {
		t.Fatalf("empty-src image left residue: %q", body)
	}
	if sub := n.Subtitle(body); sub != "" {
		t.Errorf("Subtitle = %q, want empty", sub)
	}
}
