package entity

import (
	"strings"
	"time"
)

// Unknown is what an absent issuer or subject renders as.
const Unknown = "N/A"

// OptionalName holds a distinguished-name attribute that may be missing from a certificate.
type OptionalName struct {
	value string
	set   bool
}

// NameOf returns an unset OptionalName for a blank string.
func NameOf(s string) OptionalName {
	if strings.TrimSpace(s) == "" {
		return OptionalName{}
	}
	return OptionalName{value: s, set: true}
}

func (n OptionalName) Get() (string, bool) {
	return n.value, n.set
}

func (n OptionalName) String() string {
	if !n.set {
		return Unknown
	}
	return n.value
}

// Date is a timezone-naive calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf drops the time of day after normalizing t to UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole days from d to other (negative if other is earlier).
// Computed on unix days so that far-future dates like 9999-12-31 do not overflow time.Duration.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Unix()/86400 - d.Time().Unix()/86400)
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

// CertificateRecord is what the scanner keeps of a parsed certificate file.
// Records are passed by value and never mutated after parsing.
type CertificateRecord struct {
	FileName     string
	Expiry       Date
	NotBefore    time.Time
	NotAfter     time.Time
	Issuer       OptionalName
	Subject      OptionalName
	SerialNumber string
}

// DaysFrom returns the whole calendar days between today and the expiry date.
func (c CertificateRecord) DaysFrom(today Date) int {
	return today.DaysUntil(c.Expiry)
}

// Return time expiration (negative if already expired)
func (c CertificateRecord) ExpiresInSeconds(now time.Time) float64 {
	return c.NotAfter.Sub(now).Seconds()
}

// Indicate if certificate expire now
func (c CertificateRecord) IsExpired(now time.Time) bool {
	return now.After(c.NotAfter)
}
