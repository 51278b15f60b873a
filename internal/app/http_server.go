package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"worklog/internal/domain"
	"worklog/internal/stats"
)

// maxBodyBytes bounds request bodies; stats requests carry whole collections.
const maxBodyBytes = 8 << 20

// HTTPServer returns a configured http.Server exposing the relay and stats endpoints.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// Handler returns the full middleware-wrapped route table.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	for _, p := range []string{"/health", "/api/health"} {
		mux.HandleFunc("GET "+p, a.handleHealth)
	}
	for _, p := range []string{"/connection/validate", "/api/notion/test"} {
		mux.HandleFunc("POST "+p, a.handleValidate)
	}
	for _, p := range []string{"/entries", "/api/notion/entries"} {
		mux.HandleFunc("POST "+p, a.handlePush)
	}
	for _, p := range []string{"/entries/pull", "/api/notion/entries/sync"} {
		mux.HandleFunc("POST "+p, a.handlePull)
	}
	mux.HandleFunc("POST /stats", a.handleStats)
	mux.HandleFunc("POST /stats/week", a.handleWeek)
	mux.HandleFunc("POST /stats/day", a.handleDay)

	c := cors.New(cors.Options{
		AllowedOrigins: a.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return loggingMiddleware(a.log, c.Handler(mux))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": a.now().UTC().Format(time.RFC3339Nano),
	})
}

func (a *App) handleValidate(w http.ResponseWriter, r *http.Request) {
	var cfg domain.SyncConfig
	if !decodeBody(w, r, &cfg) {
		return
	}
	conn, err := a.relay.ValidateConnection(r.Context(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Connection successful",
		"title":   conn.Title,
		"fields":  conn.Fields,
	})
}

type pushRequest struct {
	Entry  *domain.TimeEntry  `json:"entry"`
	Config *domain.SyncConfig `json:"config"`
}

func (a *App) handlePush(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Config.Complete() {
		writeError(w, domain.ErrMissingConfig)
		return
	}
	if req.Entry == nil {
		writeError(w, fmt.Errorf("%w: entry is required", domain.ErrInvalidEntry))
		return
	}
	entry := *req.Entry
	entry.EnsureIdentity(a.now().UTC())

	recordID, err := a.relay.PushEntry(r.Context(), entry, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Time entry added",
		"recordId": recordID,
		"pageId":   recordID,
		"entryId":  entry.ID,
	})
}

type pullRequest struct {
	Config *domain.SyncConfig `json:"config"`
}

func (a *App) handlePull(w http.ResponseWriter, r *http.Request) {
	var req pullRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entries, err := a.relay.PullEntries(r.Context(), req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"entries": entries,
	})
}

type statsRequest struct {
	Entries []domain.TimeEntry `json:"entries"`
	Now     string             `json:"now"`
	Date    string             `json:"date"`
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	now, err := a.referenceTime(req.Now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(req.Entries, now))
}

func (a *App) handleWeek(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ref, err := a.referenceTime(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Week(req.Entries, ref))
}

func (a *App) handleDay(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	day, err := a.referenceTime(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Day(req.Entries, day))
}

// errBadRequest marks malformed request input.
var errBadRequest = errors.New("bad request")

// referenceTime parses an optional RFC3339 or YYYY-MM-DD value. Date-only
// values are read in the statistics time zone; empty means now.
func (a *App) referenceTime(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return a.Now(), nil
	}
	if d, err := time.ParseInLocation(time.DateOnly, val, a.loc); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q, expected RFC3339 or YYYY-MM-DD", errBadRequest, val)
	}
	return t, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err))
		return false
	}
	return true
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrMissingConfig),
		errors.Is(err, domain.ErrSchemaMismatch),
		errors.Is(err, domain.ErrInvalidEntry),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
