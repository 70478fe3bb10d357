package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const customerBlob = "customers"

type CustomerStore struct {
	mu        sync.Mutex
	blobs     blobstore.Store
	customers []models.Customer
}

func NewCustomerStore(blobs blobstore.Store) (*CustomerStore, error) {
	s := &CustomerStore{blobs: blobs}
	if err := loadSnapshot(blobs, customerBlob, &s.customers); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CustomerStore) All() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *CustomerStore) Get(id string) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, customer := range s.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return models.Customer{}, ErrNotFound
}

func (s *CustomerStore) Add(customer models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer.ID = newID("cust")
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	customer.TotalSales, customer.TotalGrossProfit = models.ComputeRollups(customer.Orders)

	s.customers = append(s.customers, customer)
	if err := saveSnapshot(s.blobs, customerBlob, s.customers); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *CustomerStore) Update(id string, customer models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID != id {
			continue
		}
		customer.ID = id
		customer.CreatedAt = s.customers[i].CreatedAt
		customer.TotalSales, customer.TotalGrossProfit = models.ComputeRollups(customer.Orders)
		s.customers[i] = customer
		if err := saveSnapshot(s.blobs, customerBlob, s.customers); err != nil {
			return models.Customer{}, err
		}
		return customer, nil
	}
	return models.Customer{}, ErrNotFound
}

// AddOrder appends an order whose totals were already frozen against the
// product's prices at order time, then recomputes the customer rollups.
func (s *CustomerStore) AddOrder(customerID string, order models.CustomerOrder) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID != customerID {
			continue
		}
		s.customers[i].Orders = append(s.customers[i].Orders, order)
		s.customers[i].TotalSales, s.customers[i].TotalGrossProfit = models.ComputeRollups(s.customers[i].Orders)
		if err := saveSnapshot(s.blobs, customerBlob, s.customers); err != nil {
			return models.Customer{}, err
		}
		return s.customers[i], nil
	}
	return models.Customer{}, ErrNotFound
}

// Delete removes the customer by id. Deleting a missing id is a no-op.
func (s *CustomerStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.customers[:0]
	for _, customer := range s.customers {
		if customer.ID != id {
			kept = append(kept, customer)
		}
	}
	s.customers = kept
	return saveSnapshot(s.blobs, customerBlob, s.customers)
}

// ByOrderDate returns customers that placed at least one order on the given day.
func (s *CustomerStore) ByOrderDate(day time.Time) []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Customer
	for _, customer := range s.customers {
		for _, order := range customer.Orders {
			if sameDay(order.OrderDate, day) {
				out = append(out, customer)
				break
			}
		}
	}
	return out
}
