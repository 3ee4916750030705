package services

import (
	"atelier/app/models"
	"atelier/app/repositories"
	"fmt"
)

// HomePostCount is how many posts the home page shows
const HomePostCount = 3

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts retrieves every post, newest first
func (s *PostService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return posts, nil
}

// RecentPosts retrieves at most n of the newest posts
func (s *PostService) RecentPosts(n int) ([]*models.Post, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts, nil
}

// GetPost retrieves a post by slug. When several posts share a slug the
// newest one wins.
func (s *PostService) GetPost(slug string) (*models.Post, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}
