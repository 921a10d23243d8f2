package usecase

import (
	"context"

	"cert-checker/internal/entity"
)

// CertSource lists candidate files in a folder and loads them one at a time.
type CertSource interface {
	ListCandidates(ctx context.Context, dir string) ([]string, error)
	LoadFile(ctx context.Context, path string) (entity.CertificateRecord, error)
}

// Publishing Metrics
type MetricsPublisher interface {
	PublishScan(result *entity.ScanResult)
}

// Logger
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
