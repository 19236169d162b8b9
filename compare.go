package main

// FindUnmatched returns the loose posts that have no counterpart in the
// export. Matching is by normalized key over the export's titles and
// slugs, so filename variants that differ only in separators or casing
// are treated as the same post and excluded.
func FindUnmatched(loose []LoosePost, posts []Post) []LoosePost {
	known := make(map[string]bool, len(posts)*2)
	for _, post := range posts {
		if k := MatchKey(post.Title); k != "" {
			known[k] = true
		}
		if k := MatchKey(post.Slug); k != "" {
			known[k] = true
		}
	}

	var unmatched []LoosePost
	for _, lp := range loose {
		key := MatchKey(lp.Filename)
		if key == "" {
			key = MatchKey(lp.Title)
		}
		if key != "" && known[key] {
			continue
		}
		unmatched = append(unmatched, lp)
	}

	return unmatched
}
