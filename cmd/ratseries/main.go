package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/govalues/rational/internal/config"
	"github.com/govalues/rational/internal/logger"
)

func main() {
	os.Exit(execute(newApp(), os.Args))
}

// execute runs the app and returns the process exit code.
// Errors are logged to the app's ErrWriter.
func execute(app *cli.App, args []string) int {
	logger.SetOutput(app.ErrWriter)
	logger.SetLevel(logger.ERROR)
	err := app.Run(args)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ratseries"
	app.Usage = "Approximate constants with exact rational partial sums"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the TOML configuration `FILE`",
		},
		&cli.IntFlag{
			Name:    "digits",
			Aliases: []string{"d"},
			Value:   config.DefaultDigits,
			Usage:   "the decimal places of the printed approximation",
		},
		&cli.IntFlag{
			Name:    "log",
			Aliases: []string{"l"},
			Value:   logger.INFO,
			Usage:   "the log level",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "the RE2 regex pattern to filter log",
		},
		&cli.IntFlag{
			Name:  "limiter",
			Usage: "the maximum number of identical log lines, 0 for no limit",
		},
	}
	app.Metadata = map[string]any{}
	app.ErrWriter = os.Stderr
	app.Before = setup
	app.Commands = []*cli.Command{
		{
			Name:    "euler",
			Aliases: []string{"e"},
			Usage:   "Approximate Euler's number by the series of 1/k!",
			Action:  eulerCmd,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "order",
					Aliases: []string{"o"},
					Value:   config.DefaultEulerOrder,
					Usage:   "the last k of the partial sum",
				},
			},
		},
		{
			Name:    "zeno",
			Aliases: []string{"z"},
			Usage:   "Approach 1 by the series of 1/2^k",
			Action:  zenoCmd,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "order",
					Aliases: []string{"o"},
					Value:   config.DefaultZenoOrder,
					Usage:   "the last k of the partial sum",
				},
			},
		},
		{
			Name:      "eval",
			Usage:     "Evaluate a binary operation on two rationals",
			ArgsUsage: "A OP B, with OP one of + - * / < <= > >= == !=",
			Action:    evalCmd,
		},
	}
	return app
}
