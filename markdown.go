package main

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Normalizer converts rich WordPress content into clean markdown. It is
// idempotent: feeding its own output back in produces identical text, so
// re-running the pipeline never churns already-clean documents.
type Normalizer struct {
	conv *md.Converter
}

var (
	// Matches a complete opening/closing tag or comment. A stray "<" that
	// never closes does not match and stays literal text.
	htmlTagRe   = regexp.MustCompile(`(?i)</?[a-z][^<>]*>|<!--`)
	anyTagRe    = regexp.MustCompile(`<[^<>]+>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	attrQuoteRe = regexp.MustCompile(`="([^"]*)"`)
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\(\s*[^)\s][^)]*\)`)
	mdLinkRe    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	headingRe   = regexp.MustCompile(`^#{1,6}\s`)
)

// NewNormalizer builds the converter with the fixed tag mapping. Scripts,
// styles and embedded frames are removed entirely; images with an empty
// src are dropped instead of emitting broken markdown.
func NewNormalizer() *Normalizer {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
	})

	conv.AddRules(
		md.Rule{
			Filter: []string{"script", "style", "iframe", "noscript"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				return md.String("")
			},
		},
		md.Rule{
			Filter: []string{"img"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				src := strings.TrimSpace(selec.AttrOr("src", ""))
				if src == "" {
					return md.String("")
				}
				// Single quotes survive embedding in double-quoted
				// front matter values.
				src = strings.ReplaceAll(src, `"`, "'")
				alt := strings.ReplaceAll(strings.TrimSpace(selec.AttrOr("alt", "")), `"`, "'")
				return md.String(fmt.Sprintf("![%s](%s)", alt, src))
			},
		},
	)

	return &Normalizer{conv: conv}
}

// Normalize converts raw rich-text content to markdown. Plain text and
// already-clean markdown pass through the entity and whitespace passes
// only, which is what keeps the whole function idempotent. Malformed
// markup never produces an error: conversion failure degrades to tag
// stripping with the text content preserved.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")

	if htmlTagRe.MatchString(s) {
		out, err := n.conv.ConvertString(s)
		if err != nil {
			out = StripTags(s)
		}
		s = decodeEntities(out)
	} else {
		s = decodeEntities(s)
	}

	return tidyWhitespace(s)
}

// Subtitle derives a one-line summary from a normalized body: the first
// image reference if the body has one, otherwise the first substantial
// line of text, flattened and truncated. Returns "" when neither exists.
func (n *Normalizer) Subtitle(body string) string {
	if m := imageRe.FindString(body); m != "" {
		return m
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || headingRe.MatchString(line) {
			continue
		}
		line = flattenInline(line)
		if len([]rune(line)) < 10 {
			continue
		}
		return truncateLine(line, 100)
	}

	return ""
}

// StripTags removes all markup and returns decoded plain text with
// whitespace collapsed. Used for content fingerprints and as the
// degraded path for unconvertible markup.
func StripTags(s string) string {
	s = anyTagRe.ReplaceAllString(s, " ")
	s = decodeEntities(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// decodeEntities resolves named and numeric entities. It loops to a
// fixpoint so double-encoded input ("&amp;amp;") fully decodes and a
// second pass is a no-op.
func decodeEntities(s string) string {
	for i := 0; i < 3; i++ {
		out := html.UnescapeString(s)
		if out == s {
			return s
		}
		s = out
	}
	return s
}

// decodeEntitiesAll decodes every string in a list, preserving order.
func decodeEntitiesAll(list []string) []string {
	if len(list) == 0 {
		return list
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = decodeEntities(s)
	}
	return out
}

// flattenInline reduces a line to plain prose for use in metadata:
// markdown links become their text, surviving HTML fragments get their
// attribute quotes singled, and whitespace collapses.
func flattenInline(line string) string {
	line = mdLinkRe.ReplaceAllString(line, "$1")
	line = anyTagRe.ReplaceAllStringFunc(line, func(tag string) string {
		return attrQuoteRe.ReplaceAllString(tag, "='$1'")
	})
	return strings.Join(strings.Fields(line), " ")
}

func truncateLine(line string, max int) string {
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func tidyWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
