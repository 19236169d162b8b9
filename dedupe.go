package main

// Dedupe removes duplicate posts from the export, preserving input order.
// A post is a duplicate when its title+body fingerprint or its non-empty
// title key has been seen before; a shared body alone does not pair posts
// with distinct titles. The first occurrence always wins; later duplicates
// are discarded wholesale, no field merging. Returns the surviving posts
// and the number removed.
func Dedupe(posts []Post) ([]Post, int) {
	seenContent := make(map[string]bool, len(posts))
	seenTitle := make(map[string]bool, len(posts))

	unique := make([]Post, 0, len(posts))
	removed := 0

	for _, post := range posts {
		key := BuildKey(post.Title, post.Content)
		hasContent := StripTags(post.Content) != ""

		if (hasContent && seenContent[key.ContentFingerprint]) ||
			(key.TitleKey != "" && seenTitle[key.TitleKey]) {
			removed++
			continue
		}

		if hasContent {
			seenContent[key.ContentFingerprint] = true
		}
		if key.TitleKey != "" {
			seenTitle[key.TitleKey] = true
		}
		unique = append(unique, post)
	}

	return unique, removed
}
