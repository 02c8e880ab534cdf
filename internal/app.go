package internal

import (
	"fmt"
	"io"
	"snappy/internal/controllers"
	"snappy/internal/providers"
	"snappy/internal/structures"
)

const (
	ExitOK     = 0
	ExitFailed = 1
	ExitError  = 2
)

type App struct {
	flags  *structures.CliFlags
	conf   *structures.Config
	logger providers.Logger
	tests  *controllers.TestController
	review *controllers.ReviewController
}

func NewApp(flags *structures.CliFlags, conf *structures.Config, logger providers.Logger, tests *controllers.TestController, review *controllers.ReviewController) *App {
	return &App{
		flags:  flags,
		conf:   conf,
		logger: logger,
		tests:  tests,
		review: review,
	}
}

// Run executes the mode chosen on the command line and returns the process
// exit code: ExitFailed when a test case failed, ExitError on any error.
func (a *App) Run(in io.Reader, out io.Writer) (int, error) {
	channel := providers.GetLogTypeByMode(a.flags.Mode)
	a.logger.Infof(channel, "Starting %s in %s mode, snapshots at %s", a.conf.AppName, a.flags.Mode, a.conf.Snapshots.Root)

	switch a.flags.Mode {
	case structures.ModeTest:
		summary, err := a.tests.Run(out)
		if err != nil {
			return ExitError, err
		}
		if !summary.OK() {
			return ExitFailed, nil
		}
		return ExitOK, nil

	case structures.ModeReview:
		if _, err := a.review.Review(in, out, a.flags.AcceptAll); err != nil {
			return ExitError, err
		}
		return ExitOK, nil

	default:
		return ExitError, fmt.Errorf("unknown mode %q", a.flags.Mode)
	}
}

func (a *App) Close() {
	a.tests.Close()
	a.logger.Close()
}
