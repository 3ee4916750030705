// Package feed renders blog posts as an RSS 2.0 document.
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"atelier/app/models"
)

// PubDateLayout formats item dates. Posts carry a day, not a time, so the
// clock is always midnight UTC.
const PubDateLayout = "Mon, 02 Jan 2006 00:00:00 +0000"

const (
	DefaultTitle       = "Blog da Isabela"
	DefaultDescription = "Artigos sobre ensino, ENEM, Física, Matemática e marketing educacional."
	DefaultLanguage    = "pt-br"
)

// Options describes the channel.
type Options struct {
	BaseURL     string
	Title       string
	Description string
	Language    string
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       cdata  `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description cdata  `xml:"description"`
	GUID        string `xml:"guid"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Description == "" {
		o.Description = DefaultDescription
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return o
}

// PostURL returns the public address of a post under baseURL.
func PostURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/blog/" + slug
}

// Build renders every given post as a feed item, in the order given.
func Build(posts []*models.Post, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       opts.Title,
			Link:        opts.BaseURL,
			Description: opts.Description,
			Language:    opts.Language,
		},
	}
	for _, p := range posts {
		link := PostURL(opts.BaseURL, p.Slug)
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       cdata{p.Title},
			Link:        link,
			PubDate:     p.Date.UTC().Format(PubDateLayout),
			Description: cdata{p.Summary},
			GUID:        link,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	return buf.Bytes(), nil
}
