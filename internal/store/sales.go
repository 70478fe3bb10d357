package store

import (
	"sort"
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const salesBlob = "sales"

// SalesStore owns the singleton yearly revenue ledger.
type SalesStore struct {
	mu    sync.Mutex
	blobs blobstore.Store
	data  models.SalesData
}

func NewSalesStore(blobs blobstore.Store) (*SalesStore, error) {
	s := &SalesStore{blobs: blobs, data: models.SalesData{ID: "sales_data"}}
	if err := loadSnapshot(blobs, salesBlob, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SalesStore) Data() models.SalesData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	out.YearlyData = make([]models.YearlySales, len(s.data.YearlyData))
	copy(out.YearlyData, s.data.YearlyData)
	return out
}

// UpsertYear sets the total for a year, adding the year if it is new, then
// recomputes total revenue and year-over-year growth. YearlyData stays
// sorted ascending by year.
func (s *SalesStore) UpsertYear(year int, total float64) (models.SalesData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.data.YearlyData {
		if s.data.YearlyData[i].Year == year {
			s.data.YearlyData[i].Total = total
			found = true
			break
		}
	}
	if !found {
		s.data.YearlyData = append(s.data.YearlyData, models.YearlySales{Year: year, Total: total})
	}

	sort.Slice(s.data.YearlyData, func(i, j int) bool {
		return s.data.YearlyData[i].Year < s.data.YearlyData[j].Year
	})

	var totalRevenue float64
	for _, yearly := range s.data.YearlyData {
		totalRevenue += yearly.Total
	}
	s.data.TotalRevenue = totalRevenue
	s.data.YearOverYearGrowth = growth(s.data.YearlyData)
	s.data.LastUpdated = time.Now()

	if err := saveSnapshot(s.blobs, salesBlob, &s.data); err != nil {
		return models.SalesData{}, err
	}
	return s.data, nil
}

// YearsAround returns the entries within radius years of center, for the
// trend chart.
func (s *SalesStore) YearsAround(center, radius int) []models.YearlySales {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.YearlySales
	for _, yearly := range s.data.YearlyData {
		if yearly.Year >= center-radius && yearly.Year <= center+radius {
			out = append(out, yearly)
		}
	}
	return out
}

// growth is the percent change between the two chronologically last years.
// A missing or zero prior year means growth 0, never Inf or NaN.
func growth(yearly []models.YearlySales) float64 {
	if len(yearly) < 2 {
		return 0
	}
	latest := yearly[len(yearly)-1]
	previous := yearly[len(yearly)-2]
	if previous.Total == 0 {
		return 0
	}
	return (latest.Total - previous.Total) / previous.Total * 100
}
