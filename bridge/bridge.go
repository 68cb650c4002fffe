package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pevans/patternsfeed/logging"
	"github.com/pevans/patternsfeed/newsfeed"
	"github.com/pevans/patternsfeed/scraper"
)

const (
	Name        = "I Am Patterns Blog"
	Description = "The latest blog posts from I Am Patterns."

	frenchURL  = "https://iampatterns.fr/blog/"
	englishURL = "https://iampatterns.fr/en/journal/"

	noTitle            = "No title"
	noContent          = "No content available."
	failedContentLabel = "Failed to fetch content: "
)

// teaserEscaper escapes only the characters that would break the wrapping
// paragraph; quotes and apostrophes stay as they are.
var teaserEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ErrListingUnavailable is returned when the listing page cannot be fetched
// or parsed. No items are produced in that case.
var ErrListingUnavailable = errors.New("listing page unavailable")

// Fetcher retrieves and parses a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (scraper.Node, error)
}

// Cache stores collected items keyed by listing URL and language. Misses are
// reported with found == false.
type Cache interface {
	Get(url, lang string) (items []newsfeed.FeedItem, found bool, err error)
	Set(url, lang string, items []newsfeed.FeedItem) error
}

// Bridge turns the blog's listing page into feed items.
type Bridge struct {
	fetcher Fetcher
	site    scraper.SiteConfig
	cache   Cache
	log     zerolog.Logger

	// baseURL overrides the language-specific listing URL when set.
	baseURL string
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithSiteConfig overrides the selectors used on the listing and post pages.
func WithSiteConfig(site scraper.SiteConfig) Option {
	return func(b *Bridge) {
		b.site = site.WithDefaults()
	}
}

// WithCache enables result caching.
func WithCache(cache Cache) Option {
	return func(b *Bridge) {
		b.cache = cache
	}
}

// WithBaseURL points the bridge at a different listing page regardless of
// language. Used for mirrors and fixtures.
func WithBaseURL(baseURL string) Option {
	return func(b *Bridge) {
		b.baseURL = baseURL
	}
}

// New creates a bridge that fetches pages with fetcher.
func New(fetcher Fetcher, opts ...Option) *Bridge {
	b := &Bridge{
		fetcher: fetcher,
		site:    scraper.DefaultSiteConfig(),
		log:     logging.NewLogger("bridge"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BaseURL returns the listing URL for the given language.
func (b *Bridge) BaseURL(lang Language) string {
	if b.baseURL != "" {
		return b.baseURL
	}
	return BaseURL(lang)
}

// Feed collects the items for lang and wraps them with channel metadata.
func (b *Bridge) Feed(ctx context.Context, lang Language) (*newsfeed.Feed, error) {
	items, err := b.Collect(ctx, lang)
	if err != nil {
		return nil, err
	}
	return newsfeed.NewFeed(Name, b.BaseURL(lang), Description, string(lang), items), nil
}

// Collect fetches the listing page for lang and returns one item per post, in
// page order. It fails only when the listing page itself cannot be
// retrieved; problems with individual posts degrade that item's fields.
func (b *Bridge) Collect(ctx context.Context, lang Language) ([]newsfeed.FeedItem, error) {
	baseURL := b.BaseURL(lang)

	if b.cache != nil {
		items, found, err := b.cache.Get(baseURL, string(lang))
		if err != nil {
			b.log.Warn().Err(err).Str("url", baseURL).Msg("Cache read failed")
		} else if found {
			b.log.Debug().Str("url", baseURL).Int("items", len(items)).Msg("Serving cached items")
			return items, nil
		}
	}

	b.log.Info().Str("url", baseURL).Str("lang", string(lang)).Msg("Fetching listing page")
	doc, err := b.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: could not request %s: %w", ErrListingUnavailable, baseURL, err)
	}

	posts := doc.FindAll(b.site.List.PostSelector)
	items := make([]newsfeed.FeedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, b.parsePost(ctx, post, baseURL))
	}
	b.log.Info().Str("url", baseURL).Int("items", len(items)).Msg("Collected posts")

	// A cancelled caller degrades every remaining post; such a run must not
	// be served to later callers.
	if err := ctx.Err(); err != nil {
		b.log.Warn().Err(err).Str("url", baseURL).Msg("Collection interrupted, not caching")
	} else if b.cache != nil {
		if err := b.cache.Set(baseURL, string(lang), items); err != nil {
			b.log.Warn().Err(err).Str("url", baseURL).Msg("Cache write failed")
		}
	}

	return items, nil
}

// parsePost builds the item for a single listing entry.
func (b *Bridge) parsePost(ctx context.Context, post scraper.Node, baseURL string) newsfeed.FeedItem {
	item := newsfeed.FeedItem{
		Title:   noTitle,
		URI:     baseURL,
		Content: noContent,
	}

	if link, ok := post.FindFirst(b.site.List.TitleSelector); ok {
		if title := strings.TrimSpace(link.Text()); title != "" {
			item.Title = title
		}
		if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
			item.URI = strings.TrimSpace(href)
			item.Content = b.fetchContent(ctx, resolveURL(baseURL, item.URI)).String()
		}
	}

	if teaser, ok := post.FindFirst(b.site.List.TeaserSelector); ok {
		item.Content += "<p>" + teaserEscaper.Replace(strings.TrimSpace(teaser.Text())) + "</p>"
	}

	b.log.Debug().Str("title", item.Title).Str("uri", item.URI).Msg("Parsed post")
	return item
}

// ContentResult is the outcome of fetching a single post's body.
type ContentResult struct {
	HTML string
	Err  error
}

// String returns the body HTML, or a readable failure message in its place.
func (r ContentResult) String() string {
	if r.Err != nil {
		return failedContentLabel + r.Err.Error()
	}
	return r.HTML
}

// fetchContent retrieves a post page and returns the inner HTML of its
// content block. A page without a content block yields an empty body.
func (b *Bridge) fetchContent(ctx context.Context, postURL string) ContentResult {
	doc, err := b.fetcher.Fetch(ctx, postURL)
	if err != nil {
		b.log.Warn().Err(err).Str("url", postURL).Msg("Failed to fetch post content")
		return ContentResult{Err: err}
	}

	content, ok := doc.FindFirst(b.site.Article.ContentSelector)
	if !ok {
		return ContentResult{}
	}

	inner, err := content.InnerHTML()
	if err != nil {
		b.log.Warn().Err(err).Str("url", postURL).Msg("Failed to render post content")
		return ContentResult{Err: err}
	}
	return ContentResult{HTML: inner}
}

// resolveURL resolves href against base. Absolute hrefs and unparseable
// input are returned unchanged.
func resolveURL(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
