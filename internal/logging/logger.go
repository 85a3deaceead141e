// Package logging builds the logrus logger shared by the widget server.
//
// Usage:
//
//	log := logging.NewLogger("league-widgets", "info", "json", os.Stdout)
//	log.WithField("league", name).Info("results rendered")
package logging

import (
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logger for a named service. format is "json" or
// "text"; unknown levels fall back to info. The service field is embedded in
// every log line.
func NewLogger(service, level, format string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	if format == "text" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log.WithField("service", service)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Middleware logs one line per request.
func Middleware(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"bytes":       rec.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Debug("request served")
		})
	}
}
