package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const productBlob = "products"

type ProductStore struct {
	mu       sync.Mutex
	blobs    blobstore.Store
	products []models.Product
}

func NewProductStore(blobs blobstore.Store) (*ProductStore, error) {
	s := &ProductStore{blobs: blobs}
	if err := loadSnapshot(blobs, productBlob, &s.products); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProductStore) All() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Lookup reports whether the product exists. Orders keep referencing deleted
// products; consumers treat a missing product as a zero-valued record.
func (s *ProductStore) Lookup(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range s.products {
		if product.ID == id {
			return product, true
		}
	}
	return models.Product{}, false
}

func (s *ProductStore) Add(product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = newID("prod")
	product.TotalSales = 0
	if product.Status == "" {
		product.Status = string(models.ProductActive)
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	s.products = append(s.products, product)
	if err := saveSnapshot(s.blobs, productBlob, s.products); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductStore) Update(id string, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		product.ID = id
		product.CreatedAt = s.products[i].CreatedAt
		product.TotalSales = s.products[i].TotalSales
		product.UpdatedAt = time.Now()
		s.products[i] = product
		if err := saveSnapshot(s.blobs, productBlob, s.products); err != nil {
			return models.Product{}, err
		}
		return product, nil
	}
	return models.Product{}, ErrNotFound
}

// RecordSale bumps the product's cached sales rollup when an order is placed.
// Missing products are ignored; the order keeps its frozen totals either way.
func (s *ProductStore) RecordSale(id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products[i].TotalSales += amount
		return saveSnapshot(s.blobs, productBlob, s.products)
	}
	return nil
}

// Delete removes the product by id without cascading to orders that
// reference it. Deleting a missing id is a no-op.
func (s *ProductStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	for _, product := range s.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	s.products = kept
	return saveSnapshot(s.blobs, productBlob, s.products)
}
