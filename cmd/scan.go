package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"cert-checker/internal/app"
	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
	"cert-checker/internal/infrastructure/certloader"
	"cert-checker/internal/prompt"
	"cert-checker/internal/report"
	"cert-checker/internal/usecase"
)

// exitError keeps ConfigError distinguishable by exit code.
func exitError(err error) error {
	var cfgErr entity.ConfigError
	if errors.As(err, &cfgErr) {
		return cli.Exit(err.Error(), exitConfig)
	}
	return cli.Exit(err.Error(), exitFailure)
}

func (a *cliApp) scanAction(cCtx *cli.Context) error {
	env, err := a.setup(cCtx)
	if err != nil {
		return exitError(err)
	}
	ctx := cCtx.Context

	svc := &usecase.CertScanService{
		Source: certloader.NewDirLoader(env.logger.WithField("component", "certloader")),
		Logger: env.logger.WithField("component", "scan"),
	}
	scanCfg := env.cfg.ScanConfig()

	if cCtx.Bool(tsvFlag.Name) {
		result, err := svc.Scan(ctx, scanCfg)
		if err != nil {
			return exitError(err)
		}
		state := i18n.NewState(env.lang).Scanning(result.Folder, result.Threshold).Done(len(result.Certificates()))
		table := report.Build(result, i18n.Render(state))
		if err := (report.WriterSink{W: a.out}).WriteText(table.TSV()); err != nil {
			return exitError(err)
		}
		return nil
	}

	session := app.NewSession(svc, env.lang, a.out, env.logger)

	if a.interactive && env.cfg.Folder == "" {
		err := session.Interact(ctx, prompt.New(a.in, a.out), scanCfg, report.ClipboardSink{})
		if err != nil {
			return exitError(err)
		}
		return nil
	}

	if err := session.Scan(ctx, scanCfg); err != nil {
		return exitError(err)
	}
	if cCtx.Bool(copyFlag.Name) {
		if err := session.Export(report.ClipboardSink{}); err != nil {
			return exitError(err)
		}
	}
	return nil
}
