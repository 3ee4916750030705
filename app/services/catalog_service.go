package services

import (
	"atelier/app/repositories"
	"fmt"
)

// CatalogService exposes the product list and the social links
type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// Products returns the products as stored
func (s *CatalogService) Products() (any, error) {
	products, err := s.catalogRepo.Products()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Social returns the social links as stored
func (s *CatalogService) Social() (any, error) {
	social, err := s.catalogRepo.Social()
	if err != nil {
		return nil, fmt.Errorf("failed to load social links: %w", err)
	}
	return social, nil
}
