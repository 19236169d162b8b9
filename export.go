package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// wpRendered matches the WordPress REST export envelope where text fields
// arrive as {"rendered": "..."}.
type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID         int        `json:"id"`
	Date       string     `json:"date"`
	Slug       string     `json:"slug"`
	Title      wpRendered `json:"title"`
	Content    wpRendered `json:"content"`
	Categories []any      `json:"categories"`
	Tags       []any      `json:"tags"`
}

// LoadExport reads the WordPress export JSON. Records that fail to decode
// are skipped and counted; an unreadable or structurally invalid file is
// an environment error and aborts the run.
func LoadExport(path string) ([]Post, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading export file %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parsing export file %s: %w", path, err)
	}

	posts := make([]Post, 0, len(raw))
	malformed := 0

	for _, msg := range raw {
		var wp wpPost
		if err := json.Unmarshal(msg, &wp); err != nil {
			malformed++
			continue
		}
		posts = append(posts, Post{
			ID:       wp.ID,
			Title:    strings.TrimSpace(wp.Title.Rendered),
			Content:  wp.Content.Rendered,
			Date:     wp.Date,
			Slug:     strings.TrimSpace(wp.Slug),
			Category: firstString(wp.Categories),
			Tags:     toStrings(wp.Tags),
		})
	}

	return posts, malformed, nil
}

// firstString returns the first category as text. The export is assumed
// to supply one; when it does not, the category stays empty rather than
// being defaulted to a placeholder.
func firstString(values []any) string {
	if len(values) == 0 {
		return ""
	}
	return stringify(values[0])
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := stringify(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringify renders an export value as text. WordPress exports carry
// category and tag references as either names or numeric ids.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
