package entity

import (
	"errors"
	"fmt"
)

// ConfigError rejects a scan request before any certificate is read.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

type CertErrorType string

const (
	ErrTypeRead    CertErrorType = "read_error"
	ErrTypeParse   CertErrorType = "parse_error"
	ErrTypePEM     CertErrorType = "pem_error"
	ErrTypeUnknown CertErrorType = "unknown_error"
)

// CertError is a per-file failure. It never aborts a scan; the scan turns it
// into an ErrorEntry.
type CertError struct {
	Path string
	Type CertErrorType
	Err  error
}

func (e *CertError) Error() string {
	return fmt.Sprintf("cert error [%s] on %s: %v", e.Type, e.Path, e.Err)
}

func (e *CertError) Unwrap() error {
	return e.Err
}

// Message is the text shown in a report row, without the path and type prefix.
func (e *CertError) Message() string {
	return e.Err.Error()
}

func NewCertError(path string, t CertErrorType, err error) *CertError {
	if err == nil {
		err = errors.New(string(t))
	}
	return &CertError{
		Path: path,
		Type: t,
		Err:  err,
	}
}
