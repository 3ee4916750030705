package mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"atelier/app/models"
)

type PostRepository struct {
	Posts []*models.Post
	Err   error
	mutex sync.RWMutex
	calls int
}

type OrderRepository struct {
	Documents []json.RawMessage
	Payloads  []map[string]any
	Records   []*models.OrderRecord
	Err       error
	mutex     sync.RWMutex
}

type CatalogRepository struct {
	ProductList any
	SocialLinks any
	Err         error
}

func NewPostRepository(posts ...*models.Post) *PostRepository {
	return &PostRepository{Posts: posts}
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		ProductList: []any{},
		SocialLinks: map[string]any{},
	}
}

// PostRepository implementation
func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.Post, len(m.Posts))
	copy(posts, m.Posts)
	return posts, nil
}

// Calls returns how many times List was called
func (m *PostRepository) Calls() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.calls
}

// OrderRepository implementation
func (m *OrderRepository) Create(doc json.RawMessage) (*models.OrderRecord, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	seq := uint64(len(m.Records) + 1)
	now := time.Now()
	record := &models.OrderRecord{
		Sequence:   seq,
		FileName:   fmt.Sprintf("order-%s-%06d.json", now.Format("20060102-150405"), seq),
		ReceivedAt: now.UTC(),
	}
	m.Documents = append(m.Documents, doc)
	m.Payloads = append(m.Payloads, payload)
	m.Records = append(m.Records, record)
	return record, nil
}

func (m *OrderRepository) List() ([]*models.OrderRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	records := make([]*models.OrderRecord, len(m.Records))
	copy(records, m.Records)
	return records, nil
}

// CatalogRepository implementation
func (m *CatalogRepository) Products() (any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ProductList, nil
}

func (m *CatalogRepository) Social() (any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SocialLinks, nil
}
