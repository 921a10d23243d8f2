package main

import (
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file",
		EnvVars: []string{"CERTCHECK_CONFIG"},
	}

	envFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Usage: "Environment file to load (ignored when missing)",
		Value: ".env",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Log format: text or json",
	}

	langFlag = &cli.StringFlag{
		Name:  "lang",
		Usage: "Interface language: ru or en (default: from $LC_ALL / $LANG)",
	}

	folderFlag = &cli.StringFlag{
		Name:    "folder",
		Aliases: []string{"f"},
		Usage:   "Folder containing .cer, .crt and .pem files",
	}

	daysFlag = &cli.IntFlag{
		Name:    "days",
		Aliases: []string{"d"},
		Usage:   "Report certificates expiring within this many days (1-365)",
	}

	includeExpiredFlag = &cli.BoolFlag{
		Name:  "include-expired",
		Usage: "Also report certificates that have already expired",
	}

	tsvFlag = &cli.BoolFlag{
		Name:  "tsv",
		Usage: "Print the report as tab-separated values instead of a table",
	}

	copyFlag = &cli.BoolFlag{
		Name:  "copy",
		Usage: "Copy the report to the clipboard after the scan",
	}

	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "Address for /metrics, /healthz and /report",
	}

	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "Time between periodic scans (0 disables them)",
	}

	debounceFlag = &cli.DurationFlag{
		Name:  "debounce",
		Usage: "Delay before rescanning after folder changes (0 disables the folder watcher)",
	}
)

var globalFlags = []cli.Flag{
	configFlag,
	envFileFlag,
	logLevelFlag,
	logFormatFlag,
	langFlag,
}

var scanFlags = []cli.Flag{
	folderFlag,
	daysFlag,
	includeExpiredFlag,
	tsvFlag,
	copyFlag,
}

var watchFlags = []cli.Flag{
	folderFlag,
	daysFlag,
	includeExpiredFlag,
	listenFlag,
	intervalFlag,
	debounceFlag,
}
