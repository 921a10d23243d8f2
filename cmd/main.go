package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"cert-checker/internal/prompt"
)

var (
	version  = "dev"
	revision = "unknown"
)

const (
	exitFailure = 1
	exitConfig  = 2
)

type cliApp struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// interactive enables the folder and threshold prompts.
	interactive bool
}

func newApp(a *cliApp) *cli.App {
	return &cli.App{
		Name:    "cert-checker",
		Usage:   "Find X.509 certificates in a folder that expire soon",
		Version: fmt.Sprintf("%s (%s)", version, revision),
		Flags:   append(append([]cli.Flag{}, globalFlags...), scanFlags...),
		Action:  a.scanAction,
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "Scan a folder once and print the expiring certificates",
				Flags:  append(append([]cli.Flag{}, globalFlags...), scanFlags...),
				Action: a.scanAction,
			},
			{
				Name:   "watch",
				Usage:  "Scan periodically and on folder changes, serving metrics and the latest report over HTTP",
				Flags:  append(append([]cli.Flag{}, globalFlags...), watchFlags...),
				Action: a.watchAction,
			},
		},
		Reader:                 a.in,
		Writer:                 a.out,
		ErrWriter:              a.errOut,
		UseShortOptionHandling: true,
		// exit codes are handled in main
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFailure
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := newApp(&cliApp{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: prompt.IsInteractive(os.Stdin) && prompt.IsInteractive(os.Stdout),
	})

	err := app.RunContext(ctx, os.Args)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
