package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxSlugLen = 80

var (
	nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRe  = regexp.MustCompile(`-{2,}`)
)

// Writer serializes documents into the output directory. It owns the
// run-scoped filename collision table, so one Writer must be shared by
// both the WordPress and the rain passes of a run.
type Writer struct {
	outputDir string
	taken     map[string]bool
}

func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		taken:     make(map[string]bool),
	}
}

// Write serializes the document and writes it under the output directory.
// Returns the filename used. Overwriting a file left by a previous run is
// fine; colliding with a file written earlier in this run gets a numeric
// suffix in encounter order.
func (w *Writer) Write(doc *Document) (string, error) {
	block, err := frontMatterBlock(doc)
	if err != nil {
		return "", err
	}

	name := w.claimFilename(doc)

	content := block
	if doc.Body != "" {
		content += doc.Body + "\n"
	}

	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return name, nil
}

// claimFilename reserves a unique YYYY-MM-DD-<slug>.md name for this run.
func (w *Writer) claimFilename(doc *Document) string {
	base := doc.Date + "-" + Slugify(doc.Title)

	name := base + ".md"
	for i := 1; w.taken[name]; i++ {
		name = fmt.Sprintf("%s-%d.md", base, i)
	}
	w.taken[name] = true
	return name
}

// Slugify converts a title into a filename-safe slug: accents folded,
// lowercased, runs of anything non-alphanumeric become a single hyphen,
// no leading or trailing separators.
func Slugify(title string) string {
	slug := strings.ToLower(foldAccents(title))
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	slug = hyphenRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

// frontMatterBlock builds the YAML metadata block. The block is validated
// by parsing it back with yaml.v3 and comparing every field; a document
// whose metadata cannot round-trip is rejected rather than written broken.
func frontMatterBlock(doc *Document) (string, error) {
	title := inlineScalar(doc.Title)
	subtitle := inlineScalar(doc.Subtitle)
	category := inlineScalar(doc.Category)

	lines := []string{
		"---",
		"title: " + quoteScalar(title),
		"subtitle: " + quoteScalar(subtitle),
		"category: " + quoteScalar(category),
		"tags: " + tagList(doc.Tags),
		"date: " + quoteScalar(doc.Date),
		"type: " + quoteScalar(doc.Type),
	}
	if doc.Type == TypeWordPress {
		lines = append(lines, fmt.Sprintf("wordpress_id: %d", doc.WordPressID))
	}
	lines = append(lines, "---", "", "")

	block := strings.Join(lines, "\n")

	if err := checkRoundTrip(block, doc, title, subtitle, category); err != nil {
		return "", fmt.Errorf("front matter for %q: %w", doc.Title, err)
	}

	return block, nil
}

// quoteScalar picks the quoting style for a metadata value. Double quotes
// by default; single quotes when the value itself carries double quotes
// (typically HTML attributes), which sidesteps escaping collisions.
// Values containing both kinds fall back to escaped double quotes.
func quoteScalar(s string) string {
	switch {
	case strings.Contains(s, `"`) && !strings.Contains(s, "'"):
		return "'" + s + "'"
	case strings.Contains(s, `"`):
		escaped := strings.ReplaceAll(s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	default:
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = quoteScalar(inlineScalar(tag))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// inlineScalar forces a value onto one line; front matter values never
// span lines.
func inlineScalar(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type parsedFront struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	Type        string   `yaml:"type"`
	WordPressID *int     `yaml:"wordpress_id"`
}

func checkRoundTrip(block string, doc *Document, title, subtitle, category string) error {
	inner := strings.TrimPrefix(block, "---\n")
	end := strings.Index(inner, "\n---")
	if end < 0 {
		return fmt.Errorf("missing closing delimiter")
	}

	var got parsedFront
	if err := yaml.Unmarshal([]byte(inner[:end]), &got); err != nil {
		return fmt.Errorf("does not parse: %w", err)
	}

	if got.Title != title || got.Subtitle != subtitle || got.Category != category ||
		got.Date != doc.Date || got.Type != doc.Type {
		return fmt.Errorf("scalar value did not survive quoting")
	}
	if len(got.Tags) != len(doc.Tags) {
		return fmt.Errorf("tag list did not survive quoting")
	}
	if doc.Type == TypeWordPress && (got.WordPressID == nil || *got.WordPressID != doc.WordPressID) {
		return fmt.Errorf("wordpress_id did not survive")
	}
	if doc.Type != TypeWordPress && got.WordPressID != nil {
		return fmt.Errorf("unexpected wordpress_id for type %s", doc.Type)
	}

	return nil
}
