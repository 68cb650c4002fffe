package scraper

// SiteConfig defines where the interesting parts of a blog live, both on its
// listing page and on the individual post pages.
type SiteConfig struct {
	List    ListConfig    `json:"list" yaml:"list"`
	Article ArticleConfig `json:"article" yaml:"article"`
}

// ListConfig defines how to find posts on the listing page.
type ListConfig struct {
	PostSelector   string `json:"post_selector" yaml:"post_selector"`
	TitleSelector  string `json:"title_selector" yaml:"title_selector"`   // must match the link element
	TeaserSelector string `json:"teaser_selector" yaml:"teaser_selector"` // optional
}

// ArticleConfig defines how to extract the body from a single post page.
type ArticleConfig struct {
	ContentSelector string `json:"content_selector" yaml:"content_selector"`
}

// DefaultSiteConfig returns the selectors used by the I Am Patterns blog
// theme.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		List: ListConfig{
			PostSelector:   ".blog-post",
			TitleSelector:  ".entry-title-archive a",
			TeaserSelector: ".entry-content-archive p",
		},
		Article: ArticleConfig{
			ContentSelector: ".entry-content",
		},
	}
}

// WithDefaults fills in any empty selector with its default value.
func (c SiteConfig) WithDefaults() SiteConfig {
	def := DefaultSiteConfig()
	if c.List.PostSelector == "" {
		c.List.PostSelector = def.List.PostSelector
	}
	if c.List.TitleSelector == "" {
		c.List.TitleSelector = def.List.TitleSelector
	}
	if c.List.TeaserSelector == "" {
		c.List.TeaserSelector = def.List.TeaserSelector
	}
	if c.Article.ContentSelector == "" {
		c.Article.ContentSelector = def.Article.ContentSelector
	}
	return c
}
