package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"cert-checker/internal/entity"
)

type CertScanService struct {
	Source CertSource
	// Publisher is optional; one-shot scans run without one.
	Publisher MetricsPublisher
	Logger    Logger
	Clock     func() time.Time

	mu   sync.RWMutex
	last *entity.ScanResult
}

func (s *CertScanService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Scan evaluates every candidate file of cfg.FolderPath, one after the other.
// A ConfigError is returned before any file is read. Per-file failures become
// ErrorEntry values and never stop the scan.
func (s *CertScanService) Scan(ctx context.Context, cfg entity.ScanConfig) (*entity.ScanResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Policy == "" {
		cfg.Policy = entity.PolicyUpcoming
	}

	paths, err := s.Source.ListCandidates(ctx, cfg.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cfg.FolderPath, err)
	}

	result := &entity.ScanResult{
		Folder:    cfg.FolderPath,
		Threshold: cfg.DayThreshold,
		Policy:    cfg.Policy,
		Today:     entity.DateOf(s.now()),
		Entries:   make([]entity.ScanEntry, 0, len(paths)),
	}

	for _, path := range paths {
		rec, err := s.Source.LoadFile(ctx, path)
		if err != nil {
			s.Logger.Warnf("Skipping %s: %v", path, err)
			result.Entries = append(result.Entries, entity.NewErrorEntry(filepath.Base(path), err))
			continue
		}

		cert := entity.ExpiringCertificate{
			CertificateRecord: rec,
			DaysLeft:          rec.DaysFrom(result.Today),
		}
		if cfg.Policy.Includes(cert.DaysLeft, cfg.DayThreshold) {
			result.Entries = append(result.Entries, cert)
		} else {
			s.Logger.Debugf("%s expires in %d days, outside threshold %d", rec.FileName, cert.DaysLeft, cfg.DayThreshold)
			result.Skipped = append(result.Skipped, cert)
		}
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	return result, nil
}

// Last returns the most recent successful scan, or nil.
func (s *CertScanService) Last() *entity.ScanResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *CertScanService) RunOnce(ctx context.Context, cfg entity.ScanConfig) {
	start := time.Now()
	s.Logger.Infof("Starting certificate scan of %s...", cfg.FolderPath)

	result, err := s.Scan(ctx, cfg)
	if err != nil {
		s.Logger.Errorf("Scan failed: %v", err)
		return
	}
	if s.Publisher != nil {
		s.Publisher.PublishScan(result)
	}
	s.Logger.Infof("Scan done in %s: %d expiring certs, %d skipped, %d errors",
		time.Since(start), len(result.Certificates()), len(result.Skipped), len(result.Errors()))
}

// RunPeriodic triggers an initial scan and then keeps scanning at the given interval,
// and on every receive from trigger, until ctx is cancelled. A nil trigger is never ready.
func (s *CertScanService) RunPeriodic(ctx context.Context, cfg entity.ScanConfig, interval time.Duration, trigger <-chan struct{}) {
	s.runOnceSafe(ctx, cfg)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.Logger.Infof("Stopping periodic scan")
			return
		case <-tick:
			s.runOnceSafe(ctx, cfg)
		case <-trigger:
			s.Logger.Debugf("Folder change detected, rescanning")
			s.runOnceSafe(ctx, cfg)
		}
	}
}

func (s *CertScanService) runOnceSafe(ctx context.Context, cfg entity.ScanConfig) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Errorf("panic recovered in RunPeriodic: %v", r)
		}
	}()
	s.RunOnce(ctx, cfg)
}
