package main

import "testing"

func TestFindUnmatched(t *testing.T) {
	posts := []Post{
		{ID: 1, Title: "Hello World"},
		{ID: 2, Title: "Another Post", Slug: "another-post"},
	}

	loose := []LoosePost{
		{Filename: "2022-01-01-Hello_World.md", Title: "Hello World"},
		{Filename: "2021-03-03-another-post.md", Title: "another post"},
		{Filename: "2020-02-02-Rainy_Day.md", Title: "Rainy Day"},
	}

	unmatched := FindUnmatched(loose, posts)

	if len(unmatched) != 1 {
		t.Fatalf("unmatched count = %d, want 1: %v", len(unmatched), unmatched)
	}
	if unmatched[0].Filename != "2020-02-02-Rainy_Day.md" {
		t.Errorf("kept %q, want the rainy day post", unmatched[0].Filename)
	}
}

func TestFindUnmatchedSeparatorVariants(t *testing.T) {
	posts := []Post{{ID: 1, Title: "Hello World"}}

	// Separator and case variants are the same post, not distinct ones.
	tests := []string{
		"2022-01-01-Hello_World.md",
		"2022-01-01-hello-world.md",
		"2022-01-01-HELLO_WORLD.md",
	}

	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			unmatched := FindUnmatched([]LoosePost{{Filename: filename}}, posts)
			if len(unmatched) != 0 {
				t.Errorf("%q not matched against export title", filename)
			}
		})
	}
}

func TestFindUnmatchedSlugMatch(t *testing.T) {
	posts := []Post{{ID: 1, Title: "A Completely Different Display Title", Slug: "old-permalink"}}
	loose := []LoosePost{{Filename: "2019-09-09-old_permalink.md"}}

	if unmatched := FindUnmatched(loose, posts); len(unmatched) != 0 {
		t.Errorf("loose file matching an export slug was kept: %v", unmatched)
	}
}

func TestFindUnmatchedEmptyExport(t *testing.T) {
	loose := []LoosePost{{Filename: "2020-01-01-keep_me.md"}}

	unmatched := FindUnmatched(loose, nil)
	if len(unmatched) != 1 {
		t.Errorf("unmatched count = %d, want 1", len(unmatched))
	}
}
