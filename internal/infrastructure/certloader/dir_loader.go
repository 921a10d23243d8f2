package certloader

import (
	"context"
	"os"
	"path/filepath"

	"cert-checker/internal/entity"
	"cert-checker/internal/usecase"
)

type DirLoader struct {
	Logger usecase.Logger
}

func NewDirLoader(logger usecase.Logger) *DirLoader {
	return &DirLoader{
		Logger: logger,
	}
}

// ListCandidates returns the certificate files directly inside dir, in os.ReadDir order.
// Sub-directories are not descended into.
func (l *DirLoader) ListCandidates(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.NewCertError(dir, entity.ErrTypeUnknown, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, entity.NewCertError(dir, entity.ErrTypeRead, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			l.Logger.Debugf("Skipping directory %s", e.Name())
			continue
		}
		if !entity.HasCertExtension(e.Name()) {
			l.Logger.Debugf("Ignoring %s: not a certificate extension", e.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	return paths, nil
}
