// Command qfactor runs the classical factorizers and derives seeded toy RSA keys.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/qfactor/qfactor"
	"github.com/qfactor/qfactor/numtheory"
)

// VERSION is injected by buildflags
var VERSION = "SELFBUILD"

const (
	exitFailure = 1
	exitUsage   = 2
)

func newApp() *cli.App {
	myApp := cli.NewApp()
	myApp.Name = "qfactor"
	myApp.Usage = "factor integers classically or from phase samples, derive seeded RSA keys"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "YAML config file, flags override its values",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log the progress of the factorizers",
		},
	}
	myApp.Before = func(c *cli.Context) error {
		cfg := DefaultConfig()
		if path := c.String("config"); path != "" {
			var err error
			if cfg, err = LoadConfig(path); err != nil {
				return cli.NewExitError(err.Error(), exitUsage)
			}
		}
		if c.IsSet("verbose") {
			cfg.Verbose = c.Bool("verbose")
		}

		if cfg.Verbose {
			qfactor.Logger.SetLevel(logrus.DebugLevel)
		} else {
			qfactor.Logger.SetLevel(logrus.WarnLevel)
		}
		if c.App.Metadata == nil {
			c.App.Metadata = map[string]interface{}{}
		}
		c.App.Metadata["config"] = cfg
		return nil
	}
	myApp.Commands = []cli.Command{
		factorCommand(),
		keygenCommand(),
	}
	return myApp
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	myApp := newApp()
	myApp.Metadata = map[string]interface{}{"context": ctx}
	if err := myApp.Run(os.Args); err != nil {
		qfactor.Logger.Fatal(err)
	}
}

func configFrom(c *cli.Context) *Config {
	if cfg, ok := c.App.Metadata["config"].(*Config); ok {
		return cfg
	}
	return DefaultConfig()
}

func contextFrom(c *cli.Context) context.Context {
	if ctx, ok := c.App.Metadata["context"].(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// exitError reports err and selects the exit code: invalid input is a usage error,
// everything else (exhausted searches, primes, cancellation) a failure.
func exitError(err error) error {
	code := exitFailure
	if errors.Is(err, numtheory.ErrInvalidArgument) {
		code = exitUsage
	}
	return cli.NewExitError(err.Error(), code)
}

func usageError(format string, args ...interface{}) error {
	return exitError(numtheory.Invalid(format, args...))
}
