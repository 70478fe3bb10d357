package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const settingsBlob = "outreach-settings"

// SettingsStore persists the operator's vendor credentials so the
// configuration form survives restarts.
type SettingsStore struct {
	mu       sync.Mutex
	blobs    blobstore.Store
	settings models.OutreachSettings
}

func NewSettingsStore(blobs blobstore.Store) (*SettingsStore, error) {
	s := &SettingsStore{blobs: blobs}
	if err := loadSnapshot(blobs, settingsBlob, &s.settings); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SettingsStore) Get() models.OutreachSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *SettingsStore) Set(apiKey, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.OutreachSettings{
		APIKey:     apiKey,
		InstanceID: instanceID,
		UpdatedAt:  time.Now(),
	}
	return saveSnapshot(s.blobs, settingsBlob, &s.settings)
}
