package certloader

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cert-checker/internal/entity"
)

// LoadFile reads one certificate file and parses it.
// The returned error, when non-nil, is always an *entity.CertError.
func (l *DirLoader) LoadFile(ctx context.Context, path string) (entity.CertificateRecord, error) {
	if err := ctx.Err(); err != nil {
		return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypeUnknown, err)
	}

	l.Logger.Debugf("Loading certificate from file %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypeRead, err)
	}

	rec, cerr := ParseCertificate(path, data)
	if cerr != nil {
		return entity.CertificateRecord{}, cerr
	}
	return rec, nil
}

// ParseCertificate decodes a PEM or DER certificate. PEM is chosen when the data
// holds any PEM block, DER otherwise. Only the first CERTIFICATE block is used.
func ParseCertificate(path string, data []byte) (entity.CertificateRecord, *entity.CertError) {
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypePEM, fmt.Errorf("empty file"))
	}

	block, seenPEM := firstCertificateBlock(data)
	if seenPEM {
		if block == nil {
			return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypePEM, fmt.Errorf("no CERTIFICATE PEM block found"))
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypeParse, err)
		}
		return recordOf(path, cert), nil
	}

	cert, err := x509.ParseCertificate(data)
	if err != nil {
		return entity.CertificateRecord{}, entity.NewCertError(path, entity.ErrTypePEM, fmt.Errorf("not PEM nor DER X.509: %w", err))
	}
	return recordOf(path, cert), nil
}

func firstCertificateBlock(data []byte) (*pem.Block, bool) {
	rest := data
	seenPEM := false

	for len(rest) > 0 {
		block, remaining := pem.Decode(rest)
		if block == nil {
			break
		}
		seenPEM = true
		rest = remaining

		if block.Type == "CERTIFICATE" {
			return block, true
		}
	}

	return nil, seenPEM
}

func recordOf(path string, cert *x509.Certificate) entity.CertificateRecord {
	serial := ""
	if cert.SerialNumber != nil {
		serial = strings.ToUpper(cert.SerialNumber.Text(16))
	}

	return entity.CertificateRecord{
		FileName:     filepath.Base(path),
		Expiry:       entity.DateOf(cert.NotAfter),
		NotBefore:    cert.NotBefore,
		NotAfter:     cert.NotAfter,
		Issuer:       entity.NameOf(cert.Issuer.CommonName),
		Subject:      entity.NameOf(cert.Subject.CommonName),
		SerialNumber: serial,
	}
}
