package newsfeed

import (
	"time"

	"github.com/google/uuid"
)

// FeedItem is a single blog post as exposed in the feed.
type FeedItem struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Content string `json:"content"`
}

// GUID returns a stable identifier for the item, derived from its URI so that
// the same post keeps the same id across runs.
func (i FeedItem) GUID() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(i.URI))
}

// Feed wraps a collection of items with the channel-level metadata needed to
// render it.
type Feed struct {
	Title       string
	Link        string
	Description string
	Language    string
	Updated     time.Time
	Items       []FeedItem
}

// NewFeed creates a feed stamped with the current time.
func NewFeed(title, link, description, language string, items []FeedItem) *Feed {
	if items == nil {
		items = []FeedItem{}
	}

	return &Feed{
		Title:       title,
		Link:        link,
		Description: description,
		Language:    language,
		Updated:     time.Now().UTC(),
		Items:       items,
	}
}
