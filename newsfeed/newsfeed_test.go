package newsfeed

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: create a feed with two sample items
func createSampleFeed() *Feed {
	return NewFeed(
		"I Am Patterns Blog",
		"https://iampatterns.fr/blog/",
		"The latest blog posts from I Am Patterns.",
		"fr",
		[]FeedItem{
			{
				Title:   "Hello",
				URI:     "https://iampatterns.fr/hello/",
				Content: "<p>Body with <strong>bold</strong> text</p><p>World</p>",
			},
			{
				Title:   "No title",
				URI:     "https://iampatterns.fr/blog/",
				Content: "No content available.",
			},
		},
	)
}

// TestGUID_Stable verifies the same URI always yields the same id
func TestGUID_Stable(t *testing.T) {
	a := FeedItem{URI: "https://example.com/a"}
	b := FeedItem{URI: "https://example.com/a", Title: "different"}
	c := FeedItem{URI: "https://example.com/c"}

	assert.Equal(t, a.GUID(), b.GUID())
	assert.NotEqual(t, a.GUID(), c.GUID())
	assert.Equal(t, 5, int(a.GUID().Version()))
}

// TestNewFeed_NilItems verifies items are never nil
func TestNewFeed_NilItems(t *testing.T) {
	feed := NewFeed("t", "l", "d", "en", nil)

	assert.NotNil(t, feed.Items)
	assert.Empty(t, feed.Items)
	assert.False(t, feed.Updated.IsZero())
}

// TestWriteRSS_ParsesBack verifies RSS output round-trips through gofeed
func TestWriteRSS_ParsesBack(t *testing.T) {
	feed := createSampleFeed()

	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, feed))

	parsed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)

	assert.Equal(t, "rss", parsed.FeedType)
	assert.Equal(t, "I Am Patterns Blog", parsed.Title)
	assert.Equal(t, "fr", parsed.Language)
	require.Len(t, parsed.Items, 2)

	assert.Equal(t, "Hello", parsed.Items[0].Title)
	assert.Equal(t, "https://iampatterns.fr/hello/", parsed.Items[0].Link)
	assert.Equal(t, "urn:uuid:"+feed.Items[0].GUID().String(), parsed.Items[0].GUID)
	assert.Contains(t, parsed.Items[0].Description, "<strong>bold</strong>")

	assert.Equal(t, "No title", parsed.Items[1].Title)
	assert.Equal(t, "No content available.", parsed.Items[1].Description)
}

// TestWriteAtom_ParsesBack verifies Atom output round-trips through gofeed
func TestWriteAtom_ParsesBack(t *testing.T) {
	feed := createSampleFeed()

	var buf bytes.Buffer
	require.NoError(t, WriteAtom(&buf, feed))
	assert.Contains(t, buf.String(), `xmlns="http://www.w3.org/2005/Atom"`)

	parsed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)

	assert.Equal(t, "atom", parsed.FeedType)
	assert.Equal(t, "I Am Patterns Blog", parsed.Title)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Hello", parsed.Items[0].Title)
	assert.Equal(t, "https://iampatterns.fr/hello/", parsed.Items[0].Link)
	assert.Contains(t, parsed.Items[0].Content, "<p>World</p>")
}

// TestWriteRSS_EmptyFeed verifies a feed without items is still valid
func TestWriteRSS_EmptyFeed(t *testing.T) {
	feed := NewFeed("Empty", "https://example.com/", "", "en", nil)

	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, feed))

	parsed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
}

// TestWriteJSON verifies JSON field names and order
func TestWriteJSON(t *testing.T) {
	feed := createSampleFeed()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, feed))

	var decoded struct {
		Title string     `json:"title"`
		Link  string     `json:"link"`
		Items []FeedItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "I Am Patterns Blog", decoded.Title)
	assert.Equal(t, "https://iampatterns.fr/blog/", decoded.Link)
	assert.Equal(t, feed.Items, decoded.Items)
	assert.Contains(t, buf.String(), `"uri": "https://iampatterns.fr/hello/"`)
}

// TestWriteMarkdown verifies HTML content is converted for the terminal
func TestWriteMarkdown(t *testing.T) {
	feed := createSampleFeed()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, feed))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# I Am Patterns Blog\n"))
	assert.Contains(t, out, "## [Hello](https://iampatterns.fr/hello/)")
	assert.Contains(t, out, "**bold**")
	assert.NotContains(t, out, "<strong>")
	assert.Contains(t, out, "No content available.")
}
