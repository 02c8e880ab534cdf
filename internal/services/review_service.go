package services

import (
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage"
	"snappy/internal/structures"
)

type ReviewServiceInterface interface {
	Pending() ([]storage.PendingSnapshot, error)
	Diff(p storage.PendingSnapshot) (*SnapDiff, error)
	Accept(p storage.PendingSnapshot) error
	Reject(p storage.PendingSnapshot) error
}

// SnapDiff holds a pending candidate and the accepted snapshot it replaces.
type SnapDiff struct {
	Pending  storage.PendingSnapshot
	New      *models.Record
	Accepted *models.Record
}

func (d *SnapDiff) NewContent() string {
	content, _ := d.New.Content()
	return content
}

// OldContent returns the accepted body, or false for a brand new snapshot.
func (d *SnapDiff) OldContent() (string, bool) {
	if d.Accepted == nil {
		return "", false
	}
	return d.Accepted.Content()
}

type ReviewService struct {
	store   *storage.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewReviewService(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ReviewServiceInterface {
	return &ReviewService{
		store:   storage.NewStore(conf.Snapshots.Root, cache, logger),
		logger:  logger,
		metrics: metrics,
	}
}

func (rs *ReviewService) Pending() ([]storage.PendingSnapshot, error) {
	pending, err := rs.store.ListPending()
	if err != nil {
		return nil, err
	}
	rs.logger.Debugf(providers.TypeReview, "Found %d pending snaps under %s", len(pending), rs.store.Root())
	return pending, nil
}

func (rs *ReviewService) Diff(p storage.PendingSnapshot) (*SnapDiff, error) {
	candidate, accepted, err := rs.store.LoadPending(p)
	if err != nil {
		return nil, err
	}
	return &SnapDiff{Pending: p, New: candidate, Accepted: accepted}, nil
}

func (rs *ReviewService) Accept(p storage.PendingSnapshot) error {
	if err := rs.store.Accept(p); err != nil {
		return err
	}
	rs.metrics.IncSnapshots("accepted")
	return nil
}

func (rs *ReviewService) Reject(p storage.PendingSnapshot) error {
	if err := rs.store.Reject(p); err != nil {
		return err
	}
	rs.metrics.IncSnapshots("rejected")
	return nil
}
