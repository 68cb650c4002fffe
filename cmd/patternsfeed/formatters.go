package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pevans/patternsfeed/newsfeed"
	"github.com/pevans/patternsfeed/scraper"
)

var outputFormats = map[string]func(io.Writer, *newsfeed.Feed) error{
	"table":    writeTable,
	"json":     newsfeed.WriteJSON,
	"rss":      newsfeed.WriteRSS,
	"atom":     newsfeed.WriteAtom,
	"markdown": newsfeed.WriteMarkdown,
}

// writeTable prints items in human-readable table format
func writeTable(w io.Writer, feed *newsfeed.Feed) error {
	if len(feed.Items) == 0 {
		_, err := fmt.Fprintln(w, "No posts found.")
		return err
	}

	fmt.Fprintf(w, "%s (%s) - %d posts\n\n", feed.Title, feed.Language, len(feed.Items))

	for i, item := range feed.Items {
		// Truncate title and summary for display
		title := truncate(item.Title, 70)
		summary := truncate(plainText(item.Content), 150)

		fmt.Fprintf(w, "%2d. %s\n", i+1, title)
		if summary != "" {
			fmt.Fprintf(w, "    %s\n", summary)
		}
		fmt.Fprintf(w, "    URL: %s\n", item.URI)
		fmt.Fprintln(w)
	}

	return nil
}

// truncate shortens s to at most limit characters, ending in "..." when cut.
// Counts runes so accented text is never split mid-character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// plainText strips tags from an HTML fragment and collapses whitespace.
func plainText(fragment string) string {
	doc, err := scraper.ParseHTML(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
