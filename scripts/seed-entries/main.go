// scripts/seed-entries/main.go
//
// Generates a directory of sample markdown journal entries for trying out
// the import and experiment flows without real journal data:
//
//	go run ./scripts/seed-entries ./samples
//	jrn import ./samples
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

type sample struct {
	filename string
	title    string
	tags     string
	body     string
}

var samples = []sample{
	{
		filename: "2026-08-10-monday.md",
		title:    "Monday reset",
		tags:     "[work, energy]",
		body: `Back at the desk after a week off and the inbox is exactly as bad as I
feared. Spent the first two hours just triaging, which felt productive in
the moment but by lunch I realized I had not actually started anything.

What surprised me was how fast the vacation calm evaporated. By three in
the afternoon I was back to checking messages every few minutes, as if the
week away never happened. I want to hold on to at least one habit from the
break: no screens for the first hour of the morning.

Tomorrow I will block the morning for the migration work before opening
anything else. Writing that down so future me can check whether it happened.`,
	},
	{
		filename: "2026-08-12-wednesday.md",
		title:    "Conversation with R",
		tags:     "[relationships]",
		body: `Had a long call with R tonight, the first real one in months. We circled
the same disagreement as always, but this time I noticed I was rehearsing
my reply while they were still talking instead of listening.

When I finally just listened, the conversation changed. They were not
asking me to fix anything. They wanted to be heard. I keep relearning this
lesson and I am not sure why it does not stick.

Something to sit with: the urge to fix might be about my own discomfort,
not their problem.`,
	},
	{
		filename: "2026-08-14-friday.md",
		title:    "Short note",
		tags:     "[mood]",
		body:     `Tired today. Slept badly, skipped the run, ate lunch at my desk.`,
	},
	{
		filename: "2026-08-16-weekend.md",
		title:    "Long walk",
		tags:     "[health, mood]",
		body: `Walked the long loop by the river this morning, almost two hours. No
podcast, no music, just walking. The first half hour my head was full of
work noise, but somewhere past the old bridge it went quiet.

I thought about the experiment idea again, the one I keep postponing. The
honest reason I have not started is fear that it will not work, and as long
as I do not start, it cannot fail. Seeing that written out makes it look as
silly as it is.

Resolved: spend one hour on it Sunday evening. Just one hour. The goal is
not to finish, the goal is to make it real enough that stopping feels like
a decision instead of a default.

Also noted that I felt better the entire rest of the day. The walk is not
optional, apparently.`,
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed-entries failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := "samples"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	for _, s := range samples {
		content := fmt.Sprintf("---\ntitle: %s\ntags: %s\n---\n\n%s\n", s.title, s.tags, s.body)
		path := filepath.Join(dir, s.filename)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	fmt.Printf("\n%d sample entries written to %s\n", len(samples), dir)
	fmt.Printf("import them with: jrn import %s\n", dir)
	return nil
}
