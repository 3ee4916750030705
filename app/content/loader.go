// Package content turns a directory of Markdown files into blog posts.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"atelier/app/content/frontmatter"
	"atelier/app/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DateLayout is the expected format of the "date" header.
	DateLayout = "2006-01-02"
	// DefaultDate is used for slugs when a post has no date header.
	DefaultDate = "1970-01-01"

	postExt = ".md"
)

// Loader reads posts from a directory on disk. Every call to LoadPosts reads
// the directory again.
type Loader struct {
	dir      string
	renderer Renderer
}

// NewLoader creates a Loader for dir.
func NewLoader(dir string, renderer Renderer) *Loader {
	if renderer == nil {
		renderer = NewMarkdownRenderer()
	}
	return &Loader{dir: dir, renderer: renderer}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadPosts returns every post in the directory, newest first. A missing
// directory yields no posts.
func (l *Loader) LoadPosts() ([]*models.Post, error) {
	if l.dir == "" {
		return []*models.Post{}, nil
	}
	return LoadPostsFS(os.DirFS(l.dir), l.renderer)
}

// LoadPostsFS loads the posts found at the root of fsys, newest first.
// Files are visited in reverse name order and the date sort is stable, so
// posts sharing a date keep that order.
func LoadPostsFS(fsys fs.FS, renderer Renderer) ([]*models.Post, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*models.Post{}, nil
		}
		return nil, fmt.Errorf("failed to read content directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	posts := make([]*models.Post, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read post %s: %w", name, err)
		}

		post, err := ParsePost(name, string(raw), renderer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse post %s: %w", name, err)
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// ParsePost builds a post from the raw contents of the file called name.
func ParsePost(name, raw string, renderer Renderer) (*models.Post, error) {
	doc := frontmatter.Parse(raw)

	title := doc.Meta["title"]
	if title == "" {
		title = TitleFromFilename(name)
	}

	dateStr := doc.Meta["date"]
	if dateStr == "" {
		dateStr = DefaultDate
	}

	rendered, err := renderer.Render([]byte(doc.Body))
	if err != nil {
		return nil, err
	}

	return &models.Post{
		Title:      title,
		Date:       ParseDate(dateStr),
		Slug:       Slugify(dateStr, title),
		HTML:       rendered,
		Summary:    Summarize(doc.Body),
		Tags:       ParseTags(doc.Meta["tags"]),
		SourcePath: name,
	}, nil
}

// TitleFromFilename turns "meu-primeiro-post.md" into "Meu Primeiro Post".
func TitleFromFilename(name string) string {
	base := path.Base(name)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return cases.Title(language.Und).String(strings.ReplaceAll(stem, "-", " "))
}

// ParseDate parses a YYYY-MM-DD date, falling back to the epoch.
func ParseDate(value string) time.Time {
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return models.Epoch
	}
	return date
}

// ParseTags splits a comma separated list, dropping empty entries.
func ParseTags(value string) []string {
	tags := []string{}
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FindSlugCollisions maps every slug shared by more than one post to the
// files that produce it.
func FindSlugCollisions(posts []*models.Post) map[string][]string {
	seen := make(map[string][]string)
	for _, post := range posts {
		seen[post.Slug] = append(seen[post.Slug], post.SourcePath)
	}

	collisions := make(map[string][]string)
	for slug, sources := range seen {
		if len(sources) > 1 {
			collisions[slug] = sources
		}
	}
	return collisions
}
