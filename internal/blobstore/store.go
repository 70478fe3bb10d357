// Package blobstore persists each collection as one named snapshot blob.
// Stores load their blob once at startup and rewrite it wholesale after every
// mutation; the last save wins.
package blobstore

import (
	"errors"
)

var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	// Load returns the current snapshot for name, or ErrNotFound if no
	// snapshot has been saved yet.
	Load(name string) ([]byte, error)
	// Save replaces the snapshot for name.
	Save(name string, data []byte) error
}
