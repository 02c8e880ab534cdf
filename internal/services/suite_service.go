package services

import (
	"fmt"
	"path/filepath"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage"
	"snappy/internal/structures"
	"time"
)

type SuiteServiceInterface interface {
	RunAll() (*models.Report, error)
}

// SuiteService runs every registered suite against its own store under
// <snapshots.root>/<suite>.
type SuiteService struct {
	conf     *structures.Config
	registry *Registry
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewSuiteService(conf *structures.Config, registry *Registry, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SuiteServiceInterface {
	return &SuiteService{
		conf:     conf,
		registry: registry,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// RunAll returns a report named after the app with one child per suite.
func (ss *SuiteService) RunAll() (*models.Report, error) {
	root := models.NewReport(ss.conf.AppName)
	start := time.Now()
	defer func() {
		ss.metrics.ObserveRunDuration(time.Since(start))
	}()

	names := ss.registry.Names()
	if len(names) == 0 {
		ss.logger.Warnf(providers.TypeRun, "No suites registered")
	}

	for _, name := range names {
		setup, _ := ss.registry.Setup(name)
		store := storage.NewStore(filepath.Join(ss.conf.Snapshots.Root, name), ss.cache, ss.logger)
		suite := NewSuite(name, store, ss.logger, ss.metrics)

		if err := setup(suite); err != nil {
			return nil, fmt.Errorf("setup suite %s: %w", name, err)
		}

		suiteReport, err := suite.RunAll()
		if err != nil {
			return nil, err
		}
		root.AddChild(suiteReport)
	}

	stats := ss.cache.Stats()
	ss.logger.Debugf(providers.TypeRun, "Header cache: %d entries, %d hits, %d misses", stats.Entries, stats.Hits, stats.Misses)
	return root, nil
}
