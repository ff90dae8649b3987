// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/adinterest/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	notFound := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/users/{userID}", "404")
	ok := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/ok", "200")
	beforeNotFound := testutil.ToFloat64(notFound)
	beforeOK := testutil.ToFloat64(ok)

	for _, path := range []string{"/api/users/a", "/api/users/b", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(notFound) - beforeNotFound; got != 2 {
		t.Errorf("404 counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ok) - beforeOK; got != 1 {
		t.Errorf("200 counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v after completion, want 0", got)
	}
}

func TestMetricsResponseWriter(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		want  int
	}{
		{"default", func(w http.ResponseWriter) {}, http.StatusOK},
		{"explicit", func(w http.ResponseWriter) { w.WriteHeader(http.StatusCreated) }, http.StatusCreated},
		{"body first", func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("x"))
			w.WriteHeader(http.StatusTeapot)
		}, http.StatusOK},
		{"first header wins", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusAccepted)
			w.WriteHeader(http.StatusBadRequest)
		}, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := &metricsResponseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
			tt.write(rw)
			if rw.statusCode != tt.want {
				t.Errorf("statusCode = %d, want %d", rw.statusCode, tt.want)
			}
		})
	}
}

func TestRoutePattern_Unmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	if got := routePattern(req); got != "unmatched" {
		t.Errorf("routePattern() = %q, want unmatched", got)
	}
}
