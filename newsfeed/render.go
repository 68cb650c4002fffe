package newsfeed

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

const generator = "patternsfeed"

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	Generator     string    `xml:"generator"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	Description string  `xml:"description"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type atomDocument struct {
	XMLName   xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	ID        string      `xml:"id"`
	Title     string      `xml:"title"`
	Subtitle  string      `xml:"subtitle,omitempty"`
	Updated   string      `xml:"updated"`
	Generator string      `xml:"generator"`
	Link      atomLink    `xml:"link"`
	Entries   []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomEntry struct {
	ID      string      `xml:"id"`
	Title   string      `xml:"title"`
	Updated string      `xml:"updated"`
	Link    atomLink    `xml:"link"`
	Content atomContent `xml:"content"`
}

type atomContent struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type jsonFeed struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Updated     time.Time  `json:"updated"`
	Items       []FeedItem `json:"items"`
}

// WriteRSS renders the feed as RSS 2.0. Item content goes into the
// description element as escaped HTML.
func WriteRSS(w io.Writer, f *Feed) error {
	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:         f.Title,
			Link:          f.Link,
			Description:   f.Description,
			Language:      f.Language,
			Generator:     generator,
			LastBuildDate: f.Updated.Format(time.RFC1123Z),
			Items:         make([]rssItem, 0, len(f.Items)),
		},
	}

	for _, item := range f.Items {
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title: item.Title,
			Link:  item.URI,
			GUID: rssGUID{
				IsPermaLink: "false",
				Value:       "urn:uuid:" + item.GUID().String(),
			},
			Description: item.Content,
		})
	}

	return writeXML(w, doc)
}

// WriteAtom renders the feed as Atom 1.0.
func WriteAtom(w io.Writer, f *Feed) error {
	updated := f.Updated.Format(time.RFC3339)
	doc := atomDocument{
		ID:        f.Link,
		Title:     f.Title,
		Subtitle:  f.Description,
		Updated:   updated,
		Generator: generator,
		Link:      atomLink{Href: f.Link, Rel: "alternate"},
		Entries:   make([]atomEntry, 0, len(f.Items)),
	}

	for _, item := range f.Items {
		doc.Entries = append(doc.Entries, atomEntry{
			ID:      "urn:uuid:" + item.GUID().String(),
			Title:   item.Title,
			Updated: updated,
			Link:    atomLink{Href: item.URI, Rel: "alternate"},
			Content: atomContent{Type: "html", Value: item.Content},
		})
	}

	return writeXML(w, doc)
}

func writeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush feed: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// WriteJSON renders the feed as indented JSON.
func WriteJSON(w io.Writer, f *Feed) error {
	data, err := json.MarshalIndent(jsonFeed{
		Title:       f.Title,
		Link:        f.Link,
		Description: f.Description,
		Language:    f.Language,
		Updated:     f.Updated,
		Items:       f.Items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteMarkdown renders the feed as a Markdown document, converting each
// item's HTML content for reading in a terminal.
func WriteMarkdown(w io.Writer, f *Feed) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.Title)
	if f.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", f.Description)
	}

	for _, item := range f.Items {
		fmt.Fprintf(&b, "## [%s](%s)\n\n", item.Title, item.URI)

		body, err := htmltomarkdown.ConvertString(item.Content, converter.WithDomain(f.Link))
		if err != nil {
			return fmt.Errorf("failed to convert content of %s: %w", item.URI, err)
		}
		if body = strings.TrimSpace(body); body != "" {
			b.WriteString(body)
			b.WriteString("\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
