package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

var fileDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-`)

// looseEnvelope is the front matter schema loose files may already carry.
// Every field is optional; missing values are derived from the filename.
type looseEnvelope struct {
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// ModTimeFunc supplies a file's modification time. It is injected so the
// date-fallback path is testable without touching the filesystem clock.
type ModTimeFunc func(path string) (time.Time, bool)

func statModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// LooseResult is the per-file outcome of ingestion. Files with no
// derivable date are rejected here rather than silently dated.
type LooseResult struct {
	Path string
	Post *LoosePost
	Err  error
}

// LooseLoader reads the posts directory into LoosePost records.
type LooseLoader struct {
	ModTime ModTimeFunc
}

func NewLooseLoader() *LooseLoader {
	return &LooseLoader{ModTime: statModTime}
}

// LoadDir reads every markdown file in dir. Per-file problems surface as
// result errors; an unreadable directory is an environment error.
func (l *LooseLoader) LoadDir(dir string) ([]LooseResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading posts directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	results := make([]LooseResult, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		post, err := l.loadFile(path, name)
		results = append(results, LooseResult{Path: path, Post: post, Err: err})
	}

	return results, nil
}

func (l *LooseLoader) loadFile(path, name string) (*LoosePost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SkipError{Reason: ReasonMalformedInput, Source: name, Err: err}
	}

	var meta looseEnvelope
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &meta)
	if err != nil {
		// Broken front matter: treat the whole file as body.
		meta = looseEnvelope{}
		body = data
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = titleFromFilename(name)
	}

	date, ok := l.resolveDate(path, name, meta.Date)
	if !ok {
		return nil, &SkipError{
			Reason: ReasonMissingField,
			Source: name,
			Err:    fmt.Errorf("no derivable date"),
		}
	}

	return &LoosePost{
		Filename: name,
		Title:    title,
		Body:     strings.TrimSpace(string(body)),
		Date:     date,
		Category: strings.TrimSpace(meta.Category),
		Tags:     meta.Tags,
	}, nil
}

// resolveDate tries the filename prefix, then existing front matter, then
// the file modification time.
func (l *LooseLoader) resolveDate(path, name, metaDate string) (string, bool) {
	if m := fileDateRe.FindStringSubmatch(name); m != nil {
		date := fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
		if _, err := time.Parse("2006-01-02", date); err == nil {
			return date, true
		}
	}

	if d, err := postDate(strings.TrimSpace(metaDate)); err == nil {
		return d, true
	}

	if l.ModTime != nil {
		if t, ok := l.ModTime(path); ok {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

// titleFromFilename recovers a human title from names like
// "2004-01-04-Title_Goes-Here.md".
func titleFromFilename(name string) string {
	s := strings.TrimSuffix(name, ".md")
	s = datePrefixRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ProcessLoose converts a kept loose post into an output document with
// type "rain". The wordpress_id field is omitted entirely for these.
func ProcessLoose(n *Normalizer, lp LoosePost, defaultCategory string) *Document {
	body := n.Normalize(lp.Body)

	category := lp.Category
	if category == "" {
		category = defaultCategory
	}

	return &Document{
		Title:    decodeEntities(lp.Title),
		Subtitle: n.Subtitle(body),
		Category: decodeEntities(category),
		Tags:     decodeEntitiesAll(lp.Tags),
		Date:     lp.Date,
		Type:     TypeRain,
		Body:     body,
	}
}
