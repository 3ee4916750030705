package repositories

import (
	"encoding/json"

	"atelier/app/models"
)

// PostRepository defines the interface for blog post access
type PostRepository interface {
	List() ([]*models.Post, error)
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Create(doc json.RawMessage) (*models.OrderRecord, error)
	List() ([]*models.OrderRecord, error)
}

// CatalogRepository defines the interface for the product and social link stores
type CatalogRepository interface {
	Products() (any, error)
	Social() (any, error)
}
