package controllers

import (
	"encoding/hex"
	"log"
	"net/http"

	"atelier/app/services"

	"golang.org/x/crypto/blake2b"
)

// FeedController serves the RSS feed
type FeedController struct {
	feedService *services.FeedService
	baseURL     string
}

// NewFeedController creates a new FeedController. With an empty baseURL,
// links are built from the scheme and host of each request.
func NewFeedController(feedService *services.FeedService, baseURL string) *FeedController {
	return &FeedController{feedService: feedService, baseURL: baseURL}
}

// RSS writes the feed, answering 304 when the client already has it
func (fc *FeedController) RSS(w http.ResponseWriter, r *http.Request) {
	baseURL := fc.baseURL
	if baseURL == "" {
		baseURL = requestBaseURL(r)
	}

	data, err := fc.feedService.BuildFeed(baseURL)
	if err != nil {
		log.Printf("feed: %v", err)
		sendError(w, r, "Failed to build feed", http.StatusInternalServerError)
		return
	}

	sum := blake2b.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("failed to write feed: %v", err)
	}
}
