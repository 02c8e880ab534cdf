package interfaces

import (
	"errors"
	"snappy/internal/models"
)

var ErrNotFound = errors.New("snapshot: not found")

// SnapshotStoreInterface is what a case runner needs from the on-disk store.
// LoadAccepted wraps ErrNotFound when no accepted snapshot exists.
type SnapshotStoreInterface interface {
	Root() string
	Provision(testName string) error
	LoadAccepted(testName, snapName string) (*models.Record, error)
	SavePending(rec *models.Record) error
}
