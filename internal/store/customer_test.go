package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

func newCustomerStore(t *testing.T) (*CustomerStore, blobstore.Store) {
	t.Helper()
	blobs := blobstore.NewMemoryStore()
	s, err := NewCustomerStore(blobs)
	require.NoError(t, err)
	return s, blobs
}

func TestAddCustomerComputesRollups(t *testing.T) {
	s, _ := newCustomerStore(t)

	customer, err := s.Add(models.Customer{
		Name: "Jane",
		Orders: []models.CustomerOrder{
			{ProductID: "prod_1", OrderDate: time.Now(), TotalAmount: 2000, GrossProfit: 800},
			{ProductID: "prod_2", OrderDate: time.Now(), TotalAmount: 1000, GrossProfit: 300},
		},
		// Hand-supplied rollups must be overwritten by the computed ones.
		TotalSales:       1,
		TotalGrossProfit: 1,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, 3000.0, customer.TotalSales)
	assert.Equal(t, 1100.0, customer.TotalGrossProfit)
}

func TestUpdateCustomerRecomputesRollups(t *testing.T) {
	s, _ := newCustomerStore(t)

	customer, err := s.Add(models.Customer{
		Name: "Jane",
		Orders: []models.CustomerOrder{
			{ProductID: "prod_1", OrderDate: time.Now(), TotalAmount: 2000, GrossProfit: 800},
		},
	})
	require.NoError(t, err)

	customer.Orders = customer.Orders[:0]
	updated, err := s.Update(customer.ID, customer)
	require.NoError(t, err)

	assert.Equal(t, 0.0, updated.TotalSales)
	assert.Equal(t, 0.0, updated.TotalGrossProfit)
}

func TestUpdateMissingCustomer(t *testing.T) {
	s, _ := newCustomerStore(t)

	_, err := s.Update("cust_missing", models.Customer{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddOrderRecomputesRollups(t *testing.T) {
	s, _ := newCustomerStore(t)

	customer, err := s.Add(models.Customer{Name: "Jane"})
	require.NoError(t, err)

	updated, err := s.AddOrder(customer.ID, models.CustomerOrder{
		ProductID:   "prod_1",
		Quantity:    map[models.Variant]int{models.FiveSeater: 2},
		OrderDate:   time.Now(),
		TotalAmount: 2000,
		GrossProfit: 800,
	})
	require.NoError(t, err)

	assert.Len(t, updated.Orders, 1)
	assert.Equal(t, 2000.0, updated.TotalSales)
	assert.Equal(t, 800.0, updated.TotalGrossProfit)
}

func TestDeleteCustomerIsIdempotent(t *testing.T) {
	s, _ := newCustomerStore(t)

	customer, err := s.Add(models.Customer{Name: "Jane"})
	require.NoError(t, err)
	_, err = s.Add(models.Customer{Name: "Ali"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(customer.ID))
	afterFirst := s.All()

	require.NoError(t, s.Delete(customer.ID))
	afterSecond := s.All()

	assert.Equal(t, afterFirst, afterSecond)
	assert.Len(t, afterSecond, 1)
}

func TestCustomerSnapshotSurvivesReload(t *testing.T) {
	s, blobs := newCustomerStore(t)

	customer, err := s.Add(models.Customer{
		Name: "Jane",
		Orders: []models.CustomerOrder{
			{ProductID: "prod_1", OrderDate: time.Now(), TotalAmount: 2000, GrossProfit: 800},
		},
	})
	require.NoError(t, err)

	reloaded, err := NewCustomerStore(blobs)
	require.NoError(t, err)

	got, err := reloaded.Get(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, 2000.0, got.TotalSales)
}

func TestCustomersByOrderDate(t *testing.T) {
	s, _ := newCustomerStore(t)

	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	_, err := s.Add(models.Customer{
		Name: "Jane",
		Orders: []models.CustomerOrder{
			{ProductID: "prod_1", OrderDate: day, TotalAmount: 2000, GrossProfit: 800},
		},
	})
	require.NoError(t, err)
	_, err = s.Add(models.Customer{
		Name: "Ali",
		Orders: []models.CustomerOrder{
			{ProductID: "prod_1", OrderDate: day.AddDate(0, 0, -1), TotalAmount: 500, GrossProfit: 100},
		},
	})
	require.NoError(t, err)

	matched := s.ByOrderDate(day)
	require.Len(t, matched, 1)
	assert.Equal(t, "Jane", matched[0].Name)
}
