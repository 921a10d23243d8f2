package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"cert-checker/internal/infrastructure/certloader"
	"cert-checker/internal/infrastructure/httpserver"
	"cert-checker/internal/infrastructure/metrics"
	"cert-checker/internal/infrastructure/watcher"
	"cert-checker/internal/report"
	"cert-checker/internal/usecase"
)

func (a *cliApp) watchAction(cCtx *cli.Context) error {
	env, err := a.setup(cCtx)
	if err != nil {
		return exitError(err)
	}
	ctx := cCtx.Context
	cfg := env.cfg
	logger := env.logger

	scanCfg := cfg.ScanConfig()
	if err := scanCfg.Validate(); err != nil {
		return exitError(err)
	}

	metrics.SetBuildInfo(version, revision)

	svc := &usecase.CertScanService{
		Source:    certloader.NewDirLoader(logger.WithField("component", "certloader")),
		Publisher: metrics.NewPromPublisher(time.Now),
		Logger:    logger.WithField("component", "scan"),
	}

	var trigger <-chan struct{}
	if cfg.Watch.Debounce > 0 {
		w, err := watcher.NewFolderWatcher(cfg.Folder, cfg.Watch.Debounce, logger.WithField("component", "watcher"))
		if err != nil {
			return exitError(err)
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Stop()
			return exitError(err)
		}
		defer w.Stop()
		trigger = w.C()
	}

	if cfg.Watch.ScanInterval > 0 {
		logger.Infof("Starting periodic scan every %s", cfg.Watch.ScanInterval)
	}
	go svc.RunPeriodic(ctx, scanCfg, cfg.Watch.ScanInterval, trigger)

	reports := report.Latest{Store: svc, Lang: env.lang}
	server := httpserver.NewServer(cfg.Watch.ListenAddr, reports, logger.WithField("component", "http"))
	if err := server.Serve(ctx); err != nil {
		return exitError(err)
	}
	return nil
}
