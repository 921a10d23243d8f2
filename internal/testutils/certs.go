// Package testutils generates throwaway certificates for tests.
package testutils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type CertOptions struct {
	CommonName string
	IssuerCN   string
	Serial     *big.Int
	NotBefore  time.Time
	NotAfter   time.Time
}

// GenerateCert returns a DER encoded certificate. With an IssuerCN the
// certificate is signed by a throwaway CA of that name, otherwise it is self-signed.
func GenerateCert(t *testing.T, opts CertOptions) []byte {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}

	serial := opts.Serial
	if serial == nil {
		serial = big.NewInt(1)
	}
	notBefore := opts.NotBefore
	if notBefore.IsZero() {
		notBefore = opts.NotAfter.Add(-365 * 24 * time.Hour)
	}

	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: opts.CommonName},
		NotBefore:             notBefore,
		NotAfter:              opts.NotAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	parent := &template
	signer := priv
	if opts.IssuerCN != "" {
		caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			t.Fatalf("failed to generate CA key: %v", err)
		}
		parent = &x509.Certificate{
			SerialNumber:          big.NewInt(2),
			Subject:               pkix.Name{CommonName: opts.IssuerCN},
			NotBefore:             notBefore,
			NotAfter:              opts.NotAfter.Add(24 * time.Hour),
			KeyUsage:              x509.KeyUsageCertSign,
			BasicConstraintsValid: true,
			IsCA:                  true,
		}
		signer = caKey
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, parent, &priv.PublicKey, signer)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}
	return der
}

func PEM(der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ExpiringIn returns a NotAfter that lands daysLeft calendar days after now's UTC date, at noon.
func ExpiringIn(now time.Time, daysLeft int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+daysLeft, 12, 0, 0, 0, time.UTC)
}
