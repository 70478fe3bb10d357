// Package store holds the whole-collection entity stores. Each store owns one
// in-memory collection, loads it from its snapshot blob at construction time,
// and rewrites the whole snapshot synchronously after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"crm_manager/internal/blobstore"
)

var ErrNotFound = errors.New("record not found")

func loadSnapshot(blobs blobstore.Store, name string, dest interface{}) error {
	data, err := blobs.Load(name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s snapshot: %w", name, err)
	}
	return nil
}

func saveSnapshot(blobs blobstore.Store, name string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", name, err)
	}
	return blobs.Save(name, data)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newID returns a timestamp-derived identifier such as "cust_1712054400123".
// Strictly increasing so ids minted within the same millisecond stay unique.
func newID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return fmt.Sprintf("%s_%d", prefix, now)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
