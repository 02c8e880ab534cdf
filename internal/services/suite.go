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

var ErrDuplicateCase = errors.New("duplicate test case")

// Suite is an ordered collection of test cases sharing one snapshot store.
type Suite struct {
	name    string
	store   interfaces.SnapshotStoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	cases   []*CaseRunner
}

func NewSuite(name string, store interfaces.SnapshotStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Suite {
	return &Suite{
		name:    name,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *Suite) Name() string {
	return s.name
}

func (s *Suite) Cases() []*CaseRunner {
	return s.cases
}

// TestCase registers fn under name and creates its snapshot directory.
// Case names cannot be dotted since every case is one child of the suite report.
func (s *Suite) TestCase(name string, fn CaseFunc) error {
	if err := validateName(name); err != nil {
		return err
	}
	if strings.Contains(name, models.PathSeparator) {
		return fmt.Errorf("%w: case %q contains %q", ErrInvalidName, name, models.PathSeparator)
	}
	for _, existing := range s.cases {
		if existing.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateCase, name)
		}
	}

	runner, err := NewCaseRunner(name, fn, s.store, s.logger, s.metrics)
	if err != nil {
		return err
	}
	s.cases = append(s.cases, runner)
	return nil
}

// RunAll runs every case in registration order under a root report named
// after the suite. The first case error stops the run.
func (s *Suite) RunAll() (*models.Report, error) {
	root := models.NewReport(s.name)
	start := time.Now()

	for _, runner := range s.cases {
		if err := runner.Run(root.ChildByPath(runner.Name())); err != nil {
			s.logger.Errorf(providers.TypeRun, "Suite %s halted: %v", s.name, err)
			return nil, fmt.Errorf("suite %s: %w", s.name, err)
		}
	}

	s.logger.Infof(providers.TypeRun, "Suite %s ran %d cases in %s", s.name, len(s.cases), time.Since(start))
	return root, nil
}
