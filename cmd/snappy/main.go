// Command snappy runs the registered snapshot suites and reviews the
// snapshots they leave pending.
package main

import (
	"fmt"
	"os"
	"snappy/internal/di"
	"snappy/internal/structures"

	"github.com/urfave/cli/v2"

	_ "snappy/internal/suites/selfcheck"
)

// Build information, set via ldflags.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "snappy",
		Usage:   "A snapshot test manager",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"SNAPPY_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Mirror logs to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      structures.ModeTest,
				Usage:     "Run every registered suite against the snapshots in a directory",
				ArgsUsage: "<directory>",
				Action: func(c *cli.Context) error {
					return run(c, structures.ModeTest, false)
				},
			},
			{
				Name:      structures.ModeReview,
				Usage:     "Review pending snapshots in a directory",
				ArgsUsage: "<directory>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "accept-all",
						Usage: "Accept every pending snapshot without prompting",
					},
				},
				Action: func(c *cli.Context) error {
					return run(c, structures.ModeReview, c.Bool("accept-all"))
				},
			},
		},
	}
}

func run(c *cli.Context, mode string, acceptAll bool) error {
	if c.NArg() != 1 {
		return cli.Exit(fmt.Sprintf("%s: expected exactly one directory argument", mode), 2)
	}

	app, err := di.InitApp(&structures.CliFlags{
		ConfigPath: c.String("config"),
		DebugMode:  c.Bool("debug"),
		Mode:       mode,
		Directory:  c.Args().First(),
		AcceptAll:  acceptAll,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	code, err := app.Run(os.Stdin, c.App.Writer)
	if err != nil {
		return err
	}
	if code != 0 {
		return cli.Exit("", code)
	}
	return nil
}
