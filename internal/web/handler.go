// Package web serves the lookup form over HTTP: an HTML page that mirrors the
// terminal form and a JSON endpoint for the same evaluation.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"fundlookup/internal/config"
	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"
	"fundlookup/internal/lookup"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options holds the text and projection the HTTP form displays.
type Options struct {
	Title            string
	InputPlaceholder string
	TriggerLabel     string
	Placeholder      string
	NotFoundMessage  string
	Projection       lookup.Projection
}

// OptionsFromConfig builds handler options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:            cfg.UI.Title,
		InputPlaceholder: cfg.UI.InputPlaceholder,
		TriggerLabel:     cfg.UI.TriggerLabel,
		Placeholder:      cfg.Lookup.Placeholder,
		NotFoundMessage:  cfg.Lookup.NotFoundMessage,
		Projection: lookup.Projection{
			KeyColumn: cfg.Lookup.KeyColumn,
			Columns:   cfg.Lookup.Projection,
		},
	}
}

// Handler answers lookups against the loader's dataset. Until the loader
// resolves every lookup runs against an empty dataset.
type Handler struct {
	loader *dataset.Loader
	opts   Options
	page   *template.Template
}

func NewHandler(loader *dataset.Loader, opts Options) *Handler {
	return &Handler{
		loader: loader,
		opts:   opts,
		page:   template.Must(template.New("form").Parse(formTemplate)),
	}
}

// Router returns a chi router with the middleware stack and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Form)
	r.Get("/api/lookup", h.Lookup)
	r.Get("/healthz", h.Health)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// evaluate runs one evaluate action for query on a fresh model.
func (h *Handler) evaluate(query string) lookup.Model {
	m := lookup.NewModel(h.opts.Projection)
	if res, ok := h.loader.Result(); ok {
		m = m.Loaded(res)
	}
	return m.WithQuery(query).Evaluate()
}

type resultView struct {
	Class string
	Lines []string
}

type pageView struct {
	Title            string
	KeyColumn        string
	InputPlaceholder string
	TriggerLabel     string
	Query            string
	Result           resultView
}

// Form renders the HTML form. Submitting it (button or Enter in the field)
// issues GET /?q=..., which evaluates the query.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	state := lookup.EmptyState()
	query := ""
	if r.URL.Query().Has("q") {
		query = r.URL.Query().Get("q")
		state = h.evaluate(query).State()
	}

	view := pageView{
		Title:            h.opts.Title,
		KeyColumn:        h.opts.Projection.KeyColumn,
		InputPlaceholder: h.opts.InputPlaceholder,
		TriggerLabel:     h.opts.TriggerLabel,
		Query:            query,
		Result:           h.resultView(state),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, view); err != nil {
		logging.Get(logging.CategoryHTTP).Error("render form: %v", err)
	}
}

func (h *Handler) resultView(state lookup.State) resultView {
	v := resultView{
		Class: "empty",
		Lines: state.Lines(h.opts.Projection.Columns, h.opts.Placeholder, h.opts.NotFoundMessage),
	}
	switch state.Kind() {
	case lookup.KindFound:
		v.Class = "found"
	case lookup.KindNotFound:
		v.Class = "not-found"
	}
	return v
}

// Lookup answers GET /api/lookup?q=... with a lookup.Response.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("q") {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing query parameter q"})
		return
	}
	query := r.URL.Query().Get("q")
	state := h.evaluate(query).State()
	writeJSON(w, http.StatusOK, lookup.NewResponse(query, state, h.opts.Placeholder, h.opts.NotFoundMessage))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Get(logging.CategoryHTTP).Error("encode response: %v", err)
	}
}

// requestLogger writes one structured line per request to the http category.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logging.Get(logging.CategoryHTTP).StructuredLog("info", "request", map[string]interface{}{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}()
		next.ServeHTTP(ww, r)
	})
}
