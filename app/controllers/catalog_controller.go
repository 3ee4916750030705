package controllers

import (
	"log"
	"net/http"

	"atelier/app/services"
)

// CatalogController serves the product list as JSON
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// Products returns products.json as stored
func (cc *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	products, err := cc.catalogService.Products()
	if err != nil {
		log.Printf("products: %v", err)
		sendError(w, r, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, products)
}
