package main

import (
	"fmt"
	"regexp"
	"time"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ConvertPost turns a surviving export record into an output document.
// The body goes through the markup normalizer and the subtitle is
// derived from the result; entity escapes in the title, category, and
// tags are decoded before they reach front matter or the slug.
func ConvertPost(n *Normalizer, post Post) (*Document, error) {
	if post.Title == "" && StripTags(post.Content) == "" {
		return nil, &SkipError{
			Reason: ReasonMalformedInput,
			Source: fmt.Sprintf("post %d", post.ID),
			Err:    fmt.Errorf("no title and no content"),
		}
	}

	date, err := postDate(post.Date)
	if err != nil {
		return nil, &SkipError{
			Reason: ReasonMissingField,
			Source: fmt.Sprintf("post %d", post.ID),
			Err:    err,
		}
	}

	body := n.Normalize(post.Content)

	return &Document{
		Title:       decodeEntities(post.Title),
		Subtitle:    n.Subtitle(body),
		Category:    decodeEntities(post.Category),
		Tags:        decodeEntitiesAll(post.Tags),
		Date:        date,
		Type:        TypeWordPress,
		WordPressID: post.ID,
		Body:        body,
	}, nil
}

// postDate reduces an export timestamp ("2020-01-02T03:04:05") to the
// YYYY-MM-DD form used in front matter and filenames.
func postDate(raw string) (string, error) {
	if !isoDateRe.MatchString(raw) {
		return "", fmt.Errorf("no usable publish date in %q", raw)
	}
	date := raw[:10]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid publish date %q: %w", date, err)
	}
	return date, nil
}
