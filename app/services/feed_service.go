package services

import (
	"atelier/app/feed"
	"atelier/app/repositories"
	"fmt"
)

// FeedLimit is the number of posts published in the feed
const FeedLimit = 20

// FeedService builds the RSS feed from the newest posts
type FeedService struct {
	postRepo repositories.PostRepository
	options  feed.Options
}

// NewFeedService creates a new FeedService. BaseURL in options is ignored;
// it is given on every call.
func NewFeedService(postRepo repositories.PostRepository, options feed.Options) *FeedService {
	return &FeedService{postRepo: postRepo, options: options}
}

// BuildFeed renders the feed with links rooted at baseURL
func (s *FeedService) BuildFeed(baseURL string) ([]byte, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	if len(posts) > FeedLimit {
		posts = posts[:FeedLimit]
	}

	opts := s.options
	opts.BaseURL = baseURL
	return feed.Build(posts, opts)
}
