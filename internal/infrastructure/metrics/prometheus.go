package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cert-checker/internal/entity"
)

var certLabels = []string{"file", "subject", "issuer", "serial"}

var (
	certDaysLeft = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_days_left",
			Help: "Whole calendar days until certificate expiry (negative if expired)",
		},
		certLabels,
	)

	certNotAfter = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_not_after",
			Help: "Certificate expiry time (unix seconds)",
		},
		certLabels,
	)

	certNotBefore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_not_before",
			Help: "Certificate start of validity (unix seconds)",
		},
		certLabels,
	)

	certExpiresIn = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_expires_in_seconds",
			Help: "Seconds until certificate expiry at scan time (negative if expired)",
		},
		certLabels,
	)

	certWithinThreshold = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_within_threshold",
			Help: "1 if the certificate is reported by the last scan, 0 if it was skipped",
		},
		certLabels,
	)

	expiringCerts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "certcheck_expiring_certs",
			Help: "Number of certificates reported by the last scan",
		},
	)

	expiredCerts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "certcheck_expired_certs",
			Help: "Number of parsed certificates already past their expiry date",
		},
	)

	certErrorsByType = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_cert_errors",
			Help: "Number of certificate files that failed to load in the last scan, by error type",
		},
		[]string{"error_type"}, // read, parse, pem, unknown
	)

	thresholdDays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "certcheck_threshold_days",
			Help: "Day threshold used by the last scan",
		},
	)

	lastScan = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "certcheck_last_scan_timestamp_seconds",
			Help: "Time the last scan was published (unix seconds)",
		},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certcheck_build_info",
			Help: "Build info for the certificate checker",
		},
		[]string{"version", "revision", "goversion"},
	)
)

func init() {
	prometheus.MustRegister(
		certDaysLeft,
		certNotAfter,
		certNotBefore,
		certExpiresIn,
		certWithinThreshold,
		expiringCerts,
		expiredCerts,
		certErrorsByType,
		thresholdDays,
		lastScan,
		buildInfo,
	)
}

// PromPublisher publishes scan results to Prometheus.
type PromPublisher struct {
	Clock func() time.Time
}

func NewPromPublisher(clock func() time.Time) *PromPublisher {
	if clock == nil {
		clock = time.Now
	}
	return &PromPublisher{Clock: clock}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// PublishScan replaces the previous scan's series.
func (p *PromPublisher) PublishScan(result *entity.ScanResult) {
	certDaysLeft.Reset()
	certNotAfter.Reset()
	certNotBefore.Reset()
	certExpiresIn.Reset()
	certWithinThreshold.Reset()
	certErrorsByType.Reset()

	now := p.Clock()
	lastScan.Set(float64(now.Unix()))

	if result == nil {
		expiringCerts.Set(0)
		expiredCerts.Set(0)
		return
	}

	thresholdDays.Set(float64(result.Threshold))

	reported := result.Certificates()
	expired := 0

	publish := func(c entity.ExpiringCertificate, within bool) {
		labels := prometheus.Labels{
			"file":    c.FileName,
			"subject": c.Subject.String(),
			"issuer":  c.Issuer.String(),
			"serial":  c.SerialNumber,
		}
		certDaysLeft.With(labels).Set(float64(c.DaysLeft))
		certNotAfter.With(labels).Set(float64(c.NotAfter.Unix()))
		certNotBefore.With(labels).Set(float64(c.NotBefore.Unix()))
		certExpiresIn.With(labels).Set(c.ExpiresInSeconds(now))
		certWithinThreshold.With(labels).Set(boolToFloat(within))
		if c.IsExpired(now) {
			expired++
		}
	}

	for _, c := range reported {
		publish(c, true)
	}
	for _, c := range result.Skipped {
		publish(c, false)
	}

	expiringCerts.Set(float64(len(reported)))
	expiredCerts.Set(float64(expired))

	errorsByType := make(map[entity.CertErrorType]int)
	for _, e := range result.Errors() {
		errorsByType[e.Type]++
	}

	for errType, count := range errorsByType {
		certErrorsByType.WithLabelValues(string(errType)).Set(float64(count))
	}
}

func SetBuildInfo(version, revision string) {
	buildInfo.With(prometheus.Labels{
		"version":   version,
		"revision":  revision,
		"goversion": runtime.Version(),
	}).Set(1.0)
}
