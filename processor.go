package main

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// Processor runs the full cleaning pipeline: load, deduplicate, convert,
// compare, and write. All per-record failures are contained and counted;
// only environment errors (unreadable inputs, unwritable output) abort.
type Processor struct {
	settings *Settings
	norm     *Normalizer
	loader   *LooseLoader
}

func NewProcessor(settings *Settings) *Processor {
	return &Processor{
		settings: settings,
		norm:     NewNormalizer(),
		loader:   NewLooseLoader(),
	}
}

// Run executes the pipeline and returns the run summary. Both corpora are
// fully loaded and deduplicated before the first write, so the comparator
// always sees a complete view.
func (p *Processor) Run() (*RunStats, error) {
	stats := &RunStats{}

	if err := os.MkdirAll(p.settings.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log.Printf("Step 1: Deduplicating export...")
	posts, malformed, err := LoadExport(p.settings.ExportFile)
	if err != nil {
		return nil, fmt.Errorf("loading export: %w", err)
	}
	stats.RecordsRead = len(posts) + malformed
	for i := 0; i < malformed; i++ {
		stats.skip(ReasonMalformedInput)
	}

	unique, removed := Dedupe(posts)
	stats.DuplicatesRemoved = removed
	log.Printf("✓ %d records read, %d duplicates removed", stats.RecordsRead, removed)

	log.Printf("Step 2: Loading posts directory...")
	results, err := p.loader.LoadDir(p.settings.PostsDirectory)
	if err != nil {
		return nil, fmt.Errorf("loading posts directory: %w", err)
	}
	stats.LooseSeen = len(results)

	loose := make([]LoosePost, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			p.countSkip(stats, res.Err)
			continue
		}
		loose = append(loose, *res.Post)
	}
	log.Printf("✓ %d loose files loaded", len(loose))

	log.Printf("Step 3: Comparing corpora...")
	unmatched := FindUnmatched(loose, unique)
	stats.LooseMatched = len(loose) - len(unmatched)
	log.Printf("✓ %d loose files matched existing posts, %d kept", stats.LooseMatched, len(unmatched))

	// One writer for both passes: the collision table spans the run.
	writer := NewWriter(p.settings.OutputDirectory)

	log.Printf("Step 4: Writing WordPress posts...")
	for _, post := range unique {
		doc, err := ConvertPost(p.norm, post)
		if err != nil {
			p.countSkip(stats, err)
			continue
		}
		if _, err := writer.Write(doc); err != nil {
			log.Printf("✗ post %d: %v", post.ID, err)
			p.countSkip(stats, err)
			continue
		}
		stats.WordPressWritten++
	}
	log.Printf("✓ %d WordPress posts written", stats.WordPressWritten)

	log.Printf("Step 5: Writing rain posts...")
	for _, lp := range unmatched {
		doc := ProcessLoose(p.norm, lp, p.settings.DefaultCategory)
		if _, err := writer.Write(doc); err != nil {
			log.Printf("✗ %s: %v", lp.Filename, err)
			p.countSkip(stats, err)
			continue
		}
		stats.RainWritten++
	}
	log.Printf("✓ %d rain posts written", stats.RainWritten)

	p.printSummary(stats)
	return stats, nil
}

// countSkip buckets a per-record error into the run summary. Errors that
// are not SkipErrors (e.g. a failed write of one file) count as malformed
// input so they still show up in the totals.
func (p *Processor) countSkip(stats *RunStats, err error) {
	var skip *SkipError
	if errors.As(err, &skip) {
		stats.skip(skip.Reason)
		log.Printf("  skipped: %v", skip)
		return
	}
	stats.skip(ReasonMalformedInput)
}

func (p *Processor) printSummary(stats *RunStats) {
	log.Printf("Summary:")
	log.Printf("  records read:        %d", stats.RecordsRead)
	log.Printf("  duplicates removed:  %d", stats.DuplicatesRemoved)
	log.Printf("  wp posts written:    %d", stats.WordPressWritten)
	log.Printf("  rain posts written:  %d", stats.RainWritten)
	log.Printf("  total unique:        %d", stats.TotalWritten())
	for reason, count := range stats.Skipped {
		log.Printf("  skipped (%s): %d", reason, count)
	}
}
