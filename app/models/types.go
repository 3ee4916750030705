package models

import (
	"html/template"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a blog post loaded from a Markdown file.
type Post struct {
	Title      string        `json:"title"`
	Date       time.Time     `json:"date"`
	Slug       string        `json:"slug"`
	HTML       template.HTML `json:"html"`
	Summary    string        `json:"summary"`
	Tags       []string      `json:"tags"`
	SourcePath string        `json:"-"`
}

// Customer identifies who placed an order.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone,omitempty"`
}

// LineItem is a single cart entry. Prices and quantities are taken as sent,
// whatever their JSON type.
type LineItem struct {
	ID    any    `json:"id"`
	Title string `json:"title"`
	Qty   any    `json:"qty"`
	Price any    `json:"price"`
}

// Order is the typed view of a checkout submission.
type Order struct {
	Customer Customer    `json:"customer"`
	Items    []LineItem `json:"items" validate:"min=1"`
	Total    any        `json:"total"`
}

// OrderRecord is the ledger entry written for every accepted order.
type OrderRecord struct {
	Sequence   uint64    `json:"sequence"`
	FileName   string    `json:"file_name"`
	ReceivedAt time.Time `json:"received_at"`
	Digest     string    `json:"digest"`
}
