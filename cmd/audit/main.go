package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: audit <validate|find-duplicates> <output-directory>")
	}

	command := os.Args[1]
	outputDir := os.Args[2]

	switch command {
	case "validate":
		if err := validate(outputDir); err != nil {
			log.Fatal(err)
		}
	case "find-duplicates":
		if err := findDuplicates(outputDir); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("Unknown command %q", command)
	}
}

type documentMeta struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	Type        string   `yaml:"type"`
	WordPressID *int     `yaml:"wordpress_id"`
}

// validate re-parses every output file's front matter and reports files
// whose metadata is missing or does not parse.
func validate(outputDir string) error {
	var checked, bad int

	err := walkMarkdown(outputDir, func(path string, content []byte) {
		checked++
		meta, _, err := parseDocument(content)
		if err != nil {
			bad++
			log.Printf("✗ %s: %v", path, err)
			return
		}
		if meta.Type == "wp" && meta.WordPressID == nil {
			bad++
			log.Printf("✗ %s: type wp without wordpress_id", path)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("Checked %d files, %d invalid", checked, bad)
	if bad > 0 {
		return fmt.Errorf("%d files failed validation", bad)
	}
	return nil
}

// findDuplicates hashes each document body and reports colliding files.
// Report-only: output files belong to the pipeline, so nothing is removed.
func findDuplicates(outputDir string) error {
	seen := make(map[string]string)
	duplicates := 0

	err := walkMarkdown(outputDir, func(path string, content []byte) {
		_, body, err := parseDocument(content)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			return
		}

		sum := sha256.Sum256([]byte(strings.TrimSpace(body)))
		hash := hex.EncodeToString(sum[:])

		if original, ok := seen[hash]; ok {
			duplicates++
			log.Printf("Duplicate content: %s matches %s", path, original)
			return
		}
		seen[hash] = path
	})
	if err != nil {
		return err
	}

	log.Printf("Found %d duplicate files", duplicates)
	return nil
}

func parseDocument(content []byte) (*documentMeta, string, error) {
	var meta documentMeta
	body, err := frontmatter.MustParse(strings.NewReader(string(content)), &meta)
	if err != nil {
		return nil, "", fmt.Errorf("parsing front matter: %w", err)
	}
	if meta.Title == "" || meta.Date == "" || meta.Type == "" {
		return nil, "", fmt.Errorf("missing required front matter keys")
	}
	return &meta, string(body), nil
}

func walkMarkdown(dir string, fn func(path string, content []byte)) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on errors
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading %s: %v", path, err)
			return nil
		}

		fn(path, content)
		return nil
	})
}
