// Package server exposes the register as a small read-only HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/register"
	"fjacquet/sheet-ledger/internal/sheets"
	"fjacquet/sheet-ledger/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Ledger is the part of the register the API needs.
type Ledger interface {
	Load(ctx context.Context) (models.View, error)
	All() models.View
	IncomeOnly() models.View
	ExpensesOnly() models.View
	FilterByMonth(m int) (models.View, error)
}

// ConnectionTester probes the primary data source.
type ConnectionTester interface {
	TestConnection(ctx context.Context) (sheets.ConnectionReport, error)
}

// NewRouter builds the API routes:
//
//	GET  /health
//	GET  /api/ledger?view=all|income|expense&month=1..12
//	POST /api/refresh
//	GET  /api/connection
//
// Browser presenters served from allowedOrigins get CORS headers; "*"
// allows any origin.
func NewRouter(ledger Ledger, tester ConnectionTester, logger logging.Logger, allowedOrigins ...string) *chi.Mux {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(corsMiddleware(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ledger", GetLedger(ledger, logger))
		r.Post("/refresh", Refresh(ledger, logger))
		r.Get("/connection", GetConnection(tester, logger))
	})

	return r
}

// GetLedger returns the requested view. A month parameter selects the month
// view and takes precedence over view.
func GetLedger(ledger Ledger, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := validation.ParseMonth(r.URL.Query().Get("month"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode, err := validation.ParseView(r.URL.Query().Get("view"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var view models.View
		switch {
		case month != 0:
			view, err = ledger.FilterByMonth(month)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		case mode == models.ViewIncome:
			view = ledger.IncomeOnly()
		case mode == models.ViewExpenses:
			view = ledger.ExpensesOnly()
		default:
			view = ledger.All()
		}

		logger.Debug("Serving ledger view",
			logging.F(logging.FieldView, view.Mode),
			logging.F(logging.FieldMonth, month),
			logging.F(logging.FieldCount, len(view.Transactions)))
		writeJSON(w, http.StatusOK, view)
	}
}

// Refresh reloads the register from the sheet.
func Refresh(ledger Ledger, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ledger.Load(r.Context())
		if errors.Is(err, register.ErrLoadInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			logger.WithError(err).Error("Refresh failed")
			writeError(w, http.StatusInternalServerError, "refresh failed")
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// GetConnection probes the CSV export. An unreachable export answers
// 502 with the report as body.
func GetConnection(tester ConnectionTester, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := tester.TestConnection(r.Context())
		if err != nil {
			logger.WithError(err).Warn("Connection test failed")
			writeJSON(w, http.StatusBadGateway, report)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("Handled request",
				logging.F("method", r.Method),
				logging.F("path", r.URL.Path),
				logging.F(logging.FieldStatus, ww.Status()),
				logging.F("request_id", middleware.GetReqID(r.Context())),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		})
	}
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowed["*"]:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
