package repositories

import (
	"atelier/app/content"
	"atelier/app/models"
)

// MarkdownPostRepository implements PostRepository on a directory of Markdown files
type MarkdownPostRepository struct {
	loader *content.Loader
}

// NewMarkdownPostRepository creates a MarkdownPostRepository reading dir
func NewMarkdownPostRepository(dir string) *MarkdownPostRepository {
	return &MarkdownPostRepository{loader: content.NewLoader(dir, content.NewMarkdownRenderer())}
}

// Dir returns the content directory
func (r *MarkdownPostRepository) Dir() string {
	return r.loader.Dir()
}

// List loads every post, newest first
func (r *MarkdownPostRepository) List() ([]*models.Post, error) {
	return r.loader.LoadPosts()
}
