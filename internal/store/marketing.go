package store

import (
	"sync"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const marketingBlob = "marketing"

// MarketingStore keeps the content calendar, one entry per date.
type MarketingStore struct {
	mu    sync.Mutex
	blobs blobstore.Store
	days  []models.MarketingDay
}

func NewMarketingStore(blobs blobstore.Store) (*MarketingStore, error) {
	s := &MarketingStore{blobs: blobs}
	if err := loadSnapshot(blobs, marketingBlob, &s.days); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MarketingStore) All() []models.MarketingDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MarketingDay, len(s.days))
	copy(out, s.days)
	return out
}

func (s *MarketingStore) ByDate(date string) (models.MarketingDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, day := range s.days {
		if day.Date == date {
			return day, true
		}
	}
	return models.MarketingDay{}, false
}

// AddContent schedules a content item on the given date, creating the date
// entry if it does not exist yet.
func (s *MarketingStore) AddContent(date string, item models.ContentItem) (models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = newID("content")
	if item.Status == "" {
		item.Status = string(models.ContentPending)
	}

	found := false
	for i := range s.days {
		if s.days[i].Date == date {
			s.days[i].Contents = append(s.days[i].Contents, item)
			found = true
			break
		}
	}
	if !found {
		s.days = append(s.days, models.MarketingDay{
			ID:       newID("date"),
			Date:     date,
			Contents: []models.ContentItem{item},
		})
	}

	if err := saveSnapshot(s.blobs, marketingBlob, s.days); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

func (s *MarketingStore) SetStatus(date, contentID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.days {
		if s.days[i].Date != date {
			continue
		}
		for j := range s.days[i].Contents {
			if s.days[i].Contents[j].ID == contentID {
				s.days[i].Contents[j].Status = status
				return saveSnapshot(s.blobs, marketingBlob, s.days)
			}
		}
	}
	return ErrNotFound
}

// EditContent replaces the item's fields, keeping its id and status.
func (s *MarketingStore) EditContent(date, contentID string, item models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.days {
		if s.days[i].Date != date {
			continue
		}
		for j := range s.days[i].Contents {
			if s.days[i].Contents[j].ID == contentID {
				item.ID = contentID
				item.Status = s.days[i].Contents[j].Status
				s.days[i].Contents[j] = item
				return saveSnapshot(s.blobs, marketingBlob, s.days)
			}
		}
	}
	return ErrNotFound
}

// DeleteContent removes the item; a date entry with no items left is removed
// entirely. Deleting a missing item is a no-op.
func (s *MarketingStore) DeleteContent(date, contentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.days {
		if s.days[i].Date != date {
			continue
		}
		kept := s.days[i].Contents[:0]
		for _, content := range s.days[i].Contents {
			if content.ID != contentID {
				kept = append(kept, content)
			}
		}
		s.days[i].Contents = kept
		if len(kept) == 0 {
			s.days = append(s.days[:i], s.days[i+1:]...)
		}
		break
	}
	return saveSnapshot(s.blobs, marketingBlob, s.days)
}
