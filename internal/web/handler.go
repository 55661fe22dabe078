// Package web serves the stock insight page and the JSON routes around it.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"stockinsight/internal/analysis"
	"stockinsight/internal/catalog"
	"stockinsight/internal/glossary"
	"stockinsight/internal/quote"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Handler is built once at startup and never mutated; it is safe to share
// across requests.
type Handler struct {
	symbols []string
	def     string
	fetcher *quote.Fetcher
	log     zerolog.Logger
}

// NewHandler returns a Handler serving the catalog through fetcher.
func NewHandler(fetcher *quote.Fetcher, log zerolog.Logger) *Handler {
	return &Handler{
		symbols: catalog.Symbols(),
		def:     catalog.Default(),
		fetcher: fetcher,
		log:     log.With().Str("component", "web").Logger(),
	}
}

// Routes returns the router for every endpoint the service exposes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/", h.index)
	r.Get("/healthz", healthz)

	r.Route("/explain", func(r chi.Router) {
		r.Use(jsonCORS())
		r.Get("/{metric}", h.explain)
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(jsonCORS())
		r.Get("/quote/{symbol}", h.quote)
	})
	return r
}

func jsonCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	selected := h.def
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		if s := strings.TrimSpace(r.PostForm.Get("stock")); s != "" {
			selected = s
		}
	}

	if !catalog.Contains(selected) {
		h.log.Debug().Str("symbol", selected).Msg("symbol outside catalog")
	}
	q := h.fetcher.Fetch(r.Context(), selected)
	view := newPageView(h.symbols, selected, q, analysis.Analyze(q))

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, view); err != nil {
		h.log.Error().Err(err).Str("symbol", selected).Msg("render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type explanationResponse struct {
	Explanation string `json:"explanation"`
}

func (h *Handler) explain(w http.ResponseWriter, r *http.Request) {
	metric := pathParam(r, "metric")
	writeJSON(w, explanationResponse{Explanation: glossary.Explain(metric)})
}

type quoteResponse struct {
	Symbol   string              `json:"symbol"`
	Data     *quote.Fundamentals `json:"data,omitempty"`
	Error    string              `json:"error,omitempty"`
	Analysis []string            `json:"analysis"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(pathParam(r, "symbol"))
	q := h.fetcher.Fetch(r.Context(), symbol)
	writeJSON(w, quoteResponse{
		Symbol:   q.Symbol,
		Data:     q.Data,
		Error:    q.Error,
		Analysis: analysis.Analyze(q),
	})
}

// pathParam returns the decoded URL parameter. chi matches against
// r.URL.RawPath when it is set and against the already decoded r.URL.Path
// otherwise, so only the former needs unescaping.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
