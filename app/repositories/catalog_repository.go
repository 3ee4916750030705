package repositories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	ProductsFile = "products.json"
	SocialFile   = "social.json"
)

// JSONCatalogRepository reads the product list and social links from JSON
// files. Their contents are passed through without a schema.
type JSONCatalogRepository struct {
	dir string
}

// NewJSONCatalogRepository creates a JSONCatalogRepository reading from dir
func NewJSONCatalogRepository(dir string) *JSONCatalogRepository {
	return &JSONCatalogRepository{dir: dir}
}

// Products returns the decoded products file, or an empty list when absent
func (r *JSONCatalogRepository) Products() (any, error) {
	return readJSONFile(filepath.Join(r.dir, ProductsFile), []any{})
}

// Social returns the decoded social links file, or an empty object when absent
func (r *JSONCatalogRepository) Social() (any, error) {
	return readJSONFile(filepath.Join(r.dir, SocialFile), map[string]any{})
}

func readJSONFile(path string, empty any) (any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var v any
	if err := unmarshalEntity(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return v, nil
}
