package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cert-checker/internal/usecase"
)

// ReportSource provides the tab-separated report of the latest scan.
type ReportSource interface {
	ReportTSV() (string, bool)
}

type Server struct {
	Address string
	Reports ReportSource
	Logger  usecase.Logger
}

func NewServer(addr string, reports ReportSource, logger usecase.Logger) *Server {
	return &Server{
		Address: addr,
		Reports: reports,
		Logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/report", s.handleReport)
	return mux
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Reports == nil {
		http.Error(w, "no scan yet", http.StatusServiceUnavailable)
		return
	}

	tsv, ok := s.Reports.ReportTSV()
	if !ok {
		http.Error(w, "no scan yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tsv + "\n"))
}

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.Logger.Infof("HTTP server listening on %s", s.Address)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		s.Logger.Infof("HTTP server shut down")
		return nil
	}
	return err
}
