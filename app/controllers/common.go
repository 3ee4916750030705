package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// isAPIRequest reports whether the client expects JSON
func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		sendJSON(w, status, map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// requestBaseURL rebuilds the scheme and host the client used to reach us
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}
