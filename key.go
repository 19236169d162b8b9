package main

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separatorRe  = regexp.MustCompile(`[-_]+`)
	nonWordRe    = regexp.MustCompile(`[^a-z0-9 ]+`)
	datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

	foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// BuildKey derives the comparison key used by duplicate detection. Inputs
// that differ only in case, spacing, markup, or trailing punctuation
// produce the same key.
func BuildKey(title, body string) NormalizedKey {
	return NormalizedKey{
		TitleKey:           TitleKey(title),
		ContentFingerprint: ContentFingerprint(title, body),
	}
}

// TitleKey normalizes a title for equality comparison: accent folding,
// lowercase, collapsed whitespace, terminal punctuation stripped.
func TitleKey(title string) string {
	s := foldAccents(StripTags(title))
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".,;:!?…")
}

// ContentFingerprint hashes the normalized title together with the
// plain text of a body. The digest is insensitive to HTML-vs-plain
// differences, but posts that share a body under different titles
// still fingerprint apart.
func ContentFingerprint(title, body string) string {
	s := TitleKey(title) + "\n" + strings.ToLower(StripTags(body))
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// MatchKey normalizes a filename or title for cross-corpus comparison.
// Hyphens, underscores and casing are folded so "Hello_World" and
// "hello-world" and "Hello World" all collide; a leading YYYY-MM-DD-
// prefix and a .md extension are ignored.
func MatchKey(s string) string {
	s = strings.TrimSuffix(s, ".md")
	s = datePrefixRe.ReplaceAllString(s, "")
	s = strings.ToLower(foldAccents(StripTags(s)))
	s = separatorRe.ReplaceAllString(s, " ")
	s = nonWordRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// foldAccents strips combining marks after NFKD decomposition so that
// accented and unaccented spellings compare equal.
func foldAccents(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
