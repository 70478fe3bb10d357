package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const prospectBlob = "prospects"

type ProspectStore struct {
	mu        sync.Mutex
	blobs     blobstore.Store
	prospects []models.Prospect
}

func NewProspectStore(blobs blobstore.Store) (*ProspectStore, error) {
	s := &ProspectStore{blobs: blobs}
	if err := loadSnapshot(blobs, prospectBlob, &s.prospects); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProspectStore) All() []models.Prospect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Prospect, len(s.prospects))
	copy(out, s.prospects)
	return out
}

func (s *ProspectStore) Get(id string) (models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prospect := range s.prospects {
		if prospect.ID == id {
			return prospect, nil
		}
	}
	return models.Prospect{}, ErrNotFound
}

func (s *ProspectStore) Add(prospect models.Prospect) (models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prospect.ID = newID("prospect")
	if prospect.CreatedAt.IsZero() {
		prospect.CreatedAt = time.Now()
	}

	s.prospects = append(s.prospects, prospect)
	if err := saveSnapshot(s.blobs, prospectBlob, s.prospects); err != nil {
		return models.Prospect{}, err
	}
	return prospect, nil
}

func (s *ProspectStore) Update(id string, prospect models.Prospect) (models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.prospects {
		if s.prospects[i].ID != id {
			continue
		}
		prospect.ID = id
		prospect.CreatedAt = s.prospects[i].CreatedAt
		s.prospects[i] = prospect
		if err := saveSnapshot(s.blobs, prospectBlob, s.prospects); err != nil {
			return models.Prospect{}, err
		}
		return prospect, nil
	}
	return models.Prospect{}, ErrNotFound
}

func (s *ProspectStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.prospects[:0]
	for _, prospect := range s.prospects {
		if prospect.ID != id {
			kept = append(kept, prospect)
		}
	}
	s.prospects = kept
	return saveSnapshot(s.blobs, prospectBlob, s.prospects)
}

func (s *ProspectStore) ByDate(day time.Time) []models.Prospect {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Prospect
	for _, prospect := range s.prospects {
		if sameDay(prospect.CreatedAt, day) {
			out = append(out, prospect)
		}
	}
	return out
}

func (s *ProspectStore) ByMonth(year int, month time.Month) []models.Prospect {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Prospect
	for _, prospect := range s.prospects {
		if prospect.CreatedAt.Year() == year && prospect.CreatedAt.Month() == month {
			out = append(out, prospect)
		}
	}
	return out
}
