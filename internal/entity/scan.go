package entity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	MinThreshold = 1
	MaxThreshold = 365
)

// Extensions is the fixed allow-list of certificate file suffixes, compared case-insensitively.
var Extensions = []string{".cer", ".pem", ".crt"}

// HasCertExtension reports whether name ends in one of Extensions.
func HasCertExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Policy decides which parsed certificates make it into a ScanResult.
type Policy string

const (
	// PolicyUpcoming keeps 0 <= daysLeft <= threshold; already expired certificates are skipped.
	PolicyUpcoming Policy = "upcoming"
	// PolicyIncludeExpired keeps daysLeft <= threshold, negative values included.
	PolicyIncludeExpired Policy = "include-expired"
)

func PolicyFor(includeExpired bool) Policy {
	if includeExpired {
		return PolicyIncludeExpired
	}
	return PolicyUpcoming
}

func (p Policy) Includes(daysLeft, threshold int) bool {
	if daysLeft > threshold {
		return false
	}
	if p == PolicyIncludeExpired {
		return true
	}
	return daysLeft >= 0
}

type ScanConfig struct {
	FolderPath   string
	DayThreshold int
	Policy       Policy
}

// Validate checks the request without touching any certificate file.
func (c ScanConfig) Validate() error {
	if strings.TrimSpace(c.FolderPath) == "" {
		return ConfigError("certificate folder is not set")
	}
	info, err := os.Stat(c.FolderPath)
	if err != nil {
		return ConfigError(fmt.Sprintf("certificate folder %s: %v", c.FolderPath, err))
	}
	if !info.IsDir() {
		return ConfigError(fmt.Sprintf("certificate folder %s is not a directory", c.FolderPath))
	}
	if c.DayThreshold < MinThreshold || c.DayThreshold > MaxThreshold {
		return ConfigError(fmt.Sprintf("day threshold %d is outside [%d, %d]", c.DayThreshold, MinThreshold, MaxThreshold))
	}
	switch c.Policy {
	case "", PolicyUpcoming, PolicyIncludeExpired:
	default:
		return ConfigError(fmt.Sprintf("unknown inclusion policy %q", c.Policy))
	}
	return nil
}

// ScanEntry is one row of a scan: either an ExpiringCertificate or an ErrorEntry.
type ScanEntry interface {
	Source() string
	scanEntry()
}

type ExpiringCertificate struct {
	CertificateRecord
	DaysLeft int
}

func (e ExpiringCertificate) Source() string { return e.FileName }
func (ExpiringCertificate) scanEntry()       {}

type ErrorEntry struct {
	FileName string
	Message  string
	Type     CertErrorType
}

// NewErrorEntry keeps the cause's text as the message; the file path is already in FileName.
func NewErrorEntry(fileName string, err error) ErrorEntry {
	entry := ErrorEntry{FileName: fileName, Type: ErrTypeUnknown}
	var ce *CertError
	if errors.As(err, &ce) {
		entry.Type = ce.Type
		entry.Message = ce.Message()
		return entry
	}
	if err != nil {
		entry.Message = err.Error()
	}
	return entry
}

func (e ErrorEntry) Source() string { return e.FileName }
func (ErrorEntry) scanEntry()       {}

type ScanResult struct {
	Folder    string
	Threshold int
	Policy    Policy
	Today     Date
	// Entries are in directory-listing order.
	Entries []ScanEntry
	// Skipped holds certificates that parsed but fell outside the policy.
	Skipped []ExpiringCertificate
}

func (r *ScanResult) Certificates() []ExpiringCertificate {
	var out []ExpiringCertificate
	for _, e := range r.Entries {
		if c, ok := e.(ExpiringCertificate); ok {
			out = append(out, c)
		}
	}
	return out
}

func (r *ScanResult) Errors() []ErrorEntry {
	var out []ErrorEntry
	for _, e := range r.Entries {
		if ee, ok := e.(ErrorEntry); ok {
			out = append(out, ee)
		}
	}
	return out
}

// Evaluated returns every certificate that parsed, whether or not it was kept.
func (r *ScanResult) Evaluated() []ExpiringCertificate {
	return append(r.Certificates(), r.Skipped...)
}
