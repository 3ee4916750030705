package controllers

import (
	"errors"
	"log"
	"net/http"

	"atelier/app/repositories"
	"atelier/app/services"

	"github.com/gorilla/mux"
)

// PostController serves blog posts as JSON
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		log.Printf("list posts: %v", err)
		sendError(w, r, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(mux.Vars(r)["slug"])
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("show post: %v", err)
		sendError(w, r, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
