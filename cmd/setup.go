package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"cert-checker/internal/config"
	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
	"cert-checker/internal/infrastructure/log"
)

type appEnv struct {
	cfg    *config.Config
	lang   i18n.Lang
	logger *logrus.Entry
}

// lookup returns the innermost context where the flag was set, so global
// flags work both before and after the command name.
func lookup(cCtx *cli.Context, name string) (*cli.Context, bool) {
	for _, c := range cCtx.Lineage() {
		if c.IsSet(name) {
			return c, true
		}
	}
	return nil, false
}

// loadConfig layers CLI flags over config.Load. Only flags given on the
// command line override the file and environment.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	opts := config.LoadOptions{EnvFile: envFileFlag.Value}
	if c, ok := lookup(cCtx, configFlag.Name); ok {
		opts.ConfigPath = c.String(configFlag.Name)
	}
	if c, ok := lookup(cCtx, envFileFlag.Name); ok {
		opts.EnvFile = c.String(envFileFlag.Name)
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	if c, ok := lookup(cCtx, folderFlag.Name); ok {
		cfg.Folder = c.String(folderFlag.Name)
	}
	if c, ok := lookup(cCtx, daysFlag.Name); ok {
		cfg.DayThreshold = c.Int(daysFlag.Name)
	}
	if c, ok := lookup(cCtx, includeExpiredFlag.Name); ok {
		cfg.IncludeExpired = c.Bool(includeExpiredFlag.Name)
	}
	if c, ok := lookup(cCtx, langFlag.Name); ok {
		cfg.Language = c.String(langFlag.Name)
	}
	if c, ok := lookup(cCtx, logLevelFlag.Name); ok {
		cfg.Logging.Level = c.String(logLevelFlag.Name)
	}
	if c, ok := lookup(cCtx, logFormatFlag.Name); ok {
		cfg.Logging.Format = c.String(logFormatFlag.Name)
	}
	if c, ok := lookup(cCtx, listenFlag.Name); ok {
		cfg.Watch.ListenAddr = c.String(listenFlag.Name)
	}
	if c, ok := lookup(cCtx, intervalFlag.Name); ok {
		cfg.Watch.ScanInterval = c.Duration(intervalFlag.Name)
	}
	if c, ok := lookup(cCtx, debounceFlag.Name); ok {
		cfg.Watch.Debounce = c.Duration(debounceFlag.Name)
	}

	if cfg.Language != "" {
		lang, err := i18n.ParseLang(cfg.Language)
		if err != nil {
			return nil, entity.ConfigError(err.Error())
		}
		cfg.Language = string(lang)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *cliApp) setup(cCtx *cli.Context) (*appEnv, error) {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	logger.Logger.SetOutput(a.errOut)

	lang := i18n.Lang(cfg.Language)
	if lang == "" {
		lang = i18n.Detect(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
	}

	return &appEnv{cfg: cfg, lang: lang, logger: logger}, nil
}
