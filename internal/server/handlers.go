package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/coder/websocket"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/importer"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/version"
)

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)

		return
	}
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	st := s.snapshot()
	page := PreviewPage(PageData{
		Brand:     st.brand,
		CSS:       st.previewCSS,
		Errors:    st.result.Blocking(s.config.Validation.Strict),
		Warnings:  st.result.Warnings(),
		Prefix:    s.config.CSS.Prefix,
		DarkClass: s.config.CSS.DarkClass,
	})
	templ.Handler(page).ServeHTTP(w, r)
}

// handleCSS serves the configured stylesheet with an ETag so editors can
// poll cheaply.
func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	st := s.snapshot()
	etag := `"` + artifacts.Hash([]byte(st.css))[:16] + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)

		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, st.css)
}

// handleBrand serves the brand as canonical JSON, or in the export
// format named by the format query parameter.
func (s *Server) handleBrand(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	st := s.snapshot()
	name := r.URL.Query().Get("format")
	if name == "" {
		name = serializer.FormatJSON
	}

	registry := serializer.DefaultRegistry(s.config.CSSOptions())
	format, err := registry.Get(name)
	if err != nil {
		_ = writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   err.Error(),
			"formats": registry.Names(),
		})

		return
	}

	var data []byte
	if name == serializer.FormatJSON {
		data, err = serializer.ToJSONAt(st.brand, true, s.now())
	} else {
		data, err = format.Render(st.brand)
	}
	if err != nil {
		s.logger.Error(r.Context(), err, "Render failed", "format", name)
		http.Error(w, "render failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", format.MediaType)
	_, _ = w.Write(data)
}

// handleValidate runs an import preview over the request body without
// changing the previewed brand.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	limit := s.config.Import.MaxBytes
	if limit <= 0 {
		limit = importer.DefaultMaxBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)

			return
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)

		return
	}

	preview := s.importer.Preview(string(body))
	status := http.StatusOK
	if !preview.Valid {
		status = http.StatusUnprocessableEntity
	}
	if err := writeJSON(w, status, preview); err != nil {
		s.logger.Error(r.Context(), err, "Failed to encode validation response")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		s.rejectOrigin(w, r)

		return
	}

	// The origin was checked above against the configured list.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn(r.Context(), err, "WebSocket upgrade failed")

		return
	}

	s.hub.serve(r.Context(), conn)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	st := s.snapshot()
	now := s.now()
	health := map[string]interface{}{
		"status":     "healthy",
		"timestamp":  now.UTC(),
		"version":    version.GetShortVersion(),
		"build_info": version.GetBuildInfo(),
		"uptime":     now.Sub(s.startedAt).Round(time.Second).String(),
		"checks": map[string]interface{}{
			"brand": map[string]interface{}{
				"name":       st.brand.Metadata.Name,
				"valid":      st.result.Passes(s.config.Validation.Strict),
				"updated_at": st.updatedAt.UTC(),
			},
			"websocket": map[string]interface{}{"clients": s.hub.ClientCount()},
		},
	}

	if err := writeJSON(w, http.StatusOK, health); err != nil {
		s.logger.Error(r.Context(), err, "Failed to encode health response")
	}
}
