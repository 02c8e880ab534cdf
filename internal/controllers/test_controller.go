package controllers

import (
	"fmt"
	"io"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/services"
	"snappy/internal/storage"
	"time"

	"github.com/oklog/ulid/v2"
)

// TestController runs every registered suite and presents the outcome.
type TestController struct {
	suites    services.SuiteServiceInterface
	artifacts *storage.ArtifactManager
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

func NewTestController(suites services.SuiteServiceInterface, artifacts *storage.ArtifactManager, logger providers.Logger, metrics providers.MetricsProviderInterface) *TestController {
	return &TestController{
		suites:    suites,
		artifacts: artifacts,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run writes the rendered report followed by the summary to out. A failed
// case is not an error; callers check Summary.OK.
func (tc *TestController) Run(out io.Writer) (models.Summary, error) {
	runID := ulid.Make().String()
	startedAt := time.Now().UTC()
	tc.logger.Infof(providers.TypeRun, "Run %s started", runID)

	report, err := tc.suites.RunAll()
	if err != nil {
		tc.logger.Errorf(providers.TypeRun, "Run %s aborted: %v", runID, err)
		return models.Summary{}, err
	}
	finishedAt := time.Now().UTC()

	summary := models.Summarize(report.Children()...)
	for _, line := range append(report.Lines(), summary.Lines()...) {
		if _, err = fmt.Fprintln(out, line); err != nil {
			return summary, err
		}
	}

	if _, err = tc.artifacts.Save(models.NewRunArtifact(runID, startedAt, finishedAt, report)); err != nil {
		tc.logger.Errorf(providers.TypeRun, "Run %s artifact not saved: %v", runID, err)
		return summary, fmt.Errorf("save run artifact: %w", err)
	}

	if err = tc.metrics.Flush(); err != nil {
		tc.logger.Warnf(providers.TypeRun, "Metrics flush error: %v", err)
	}

	tc.logger.Infof(providers.TypeRun, "Run %s finished: %d ran, %d passed, %d failed, %d to review",
		runID, summary.Ran, summary.Passed, summary.Failed, summary.ToReview)
	return summary, nil
}

func (tc *TestController) Close() {
	tc.artifacts.Close()
}
