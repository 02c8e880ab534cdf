package services

import (
	"errors"
	"fmt"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage/interfaces"
	"strings"
	"time"
)

var (
	ErrAlreadyRan  = errors.New("test case already ran")
	ErrInvalidName = errors.New("invalid name")
)

// Capturer is handed to every test case function.
type Capturer interface {
	Snap(content, name string) error
}

type CaseFunc func(c Capturer) error

// CaseRunner drives one test case: it compares every captured snapshot with
// the accepted one and records the outcome in the case's report subtree.
type CaseRunner struct {
	name    string
	fn      CaseFunc
	store   interfaces.SnapshotStoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	report   *models.Report
	ran      bool
	newSnaps []string
}

// NewCaseRunner provisions the snapshot directory of the case.
func NewCaseRunner(name string, fn CaseFunc, store interfaces.SnapshotStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*CaseRunner, error) {
	if err := store.Provision(name); err != nil {
		return nil, fmt.Errorf("provision %s: %w", name, err)
	}
	return &CaseRunner{
		name:    name,
		fn:      fn,
		store:   store,
		logger:  logger,
		metrics: metrics,
		report:  models.NewReport(name),
	}, nil
}

func (cr *CaseRunner) Name() string {
	return cr.name
}

func (cr *CaseRunner) Report() *models.Report {
	return cr.report
}

// NewSnaps returns the snap names written as pending, in call order.
func (cr *CaseRunner) NewSnaps() []string {
	return cr.newSnaps
}

// Run binds report (a fresh one when nil) and calls the case function once.
func (cr *CaseRunner) Run(report *models.Report) error {
	if cr.ran {
		return fmt.Errorf("%w: %s", ErrAlreadyRan, cr.name)
	}
	cr.ran = true

	if report == nil {
		report = models.NewReport(cr.name)
	}
	cr.report = report
	cr.newSnaps = nil

	if err := cr.fn(cr); err != nil {
		return fmt.Errorf("case %s: %w", cr.name, err)
	}

	status := cr.report.Status()
	cr.metrics.IncCases(status.Label())
	cr.logger.Debugf(providers.TypeRun, "Case %s finished: %s, %d new snaps", cr.name, status.Label(), len(cr.newSnaps))
	return nil
}

// Snap compares content with the accepted snapshot called name. A match marks
// the leaf Pass and writes nothing; anything else stores a pending candidate
// and marks the leaf Fail.
func (cr *CaseRunner) Snap(content, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	leaf := cr.report.ChildByPath(name)

	fresh := models.NewRecord(cr.name, name, content)

	accepted, err := cr.store.LoadAccepted(cr.name, name)
	switch {
	case err == nil:
		if fresh.Equal(accepted) {
			leaf.SetStatus(models.StatusPass)
			cr.metrics.IncSnapshots(models.StatusPass.Label())
			return nil
		}
	case errors.Is(err, interfaces.ErrNotFound):
	case errors.Is(err, models.ErrMalformedSnapshot):
		cr.logger.Warnf(providers.TypeRun, "Unreadable accepted snapshot %s/%s, treating as changed: %v", cr.name, name, err)
	default:
		return err
	}

	start := time.Now()
	if err := cr.store.SavePending(fresh); err != nil {
		return fmt.Errorf("save pending %s/%s: %w", cr.name, name, err)
	}
	cr.metrics.ObservePersistenceDuration(time.Since(start))

	leaf.SetStatus(models.StatusFail)
	cr.metrics.IncSnapshots(models.StatusFail.Label())
	cr.newSnaps = append(cr.newSnaps, name)
	cr.logger.Infof(providers.TypeRun, "New snap %s/%s to review", cr.name, name)
	return nil
}

// Case and snap names become file names under the store root, so they may not
// contain path separators or empty dot-separated segments.
func validateName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, segment := range strings.Split(name, models.PathSeparator) {
		if segment == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidName, name)
		}
	}
	return nil
}
