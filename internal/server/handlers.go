package server

import (
	"encoding/json"
	"net/http"
	"os"
	"sort"

	"go.uber.org/zap"
)

type ingestRequest struct {
	Path   string `json:"path"`
	Layout string `json:"layout,omitempty"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	s.logger.Debug("ingest request", zap.String("path", req.Path), zap.String("layout", req.Layout))

	if _, err := os.Stat(req.Path); os.IsNotExist(err) {
		s.respondError(w, http.StatusNotFound, "file not found")
		return
	}
	result, err := s.ingestor.IngestFile(r.Context(), req.Path, req.Layout)
	if err != nil {
		s.logger.Error("ingest failed", zap.String("path", req.Path), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type layoutInfo struct {
	Name    string   `json:"name"`
	Default bool     `json:"default"`
	Columns []string `json:"columns"`
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.cfg.Layouts))
	for name := range s.cfg.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	layouts := make([]layoutInfo, 0, len(names))
	for _, name := range names {
		layouts = append(layouts, layoutInfo{
			Name:    name,
			Default: name == s.cfg.DefaultLayout,
			Columns: s.cfg.Layouts[name].OutputSchema().Names(),
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"layouts": layouts})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.warehouse.Count(r.Context())
	if err != nil {
		s.logger.Error("status: count rows failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"table":          s.warehouse.Table(),
		"rows":           count,
		"default_layout": s.cfg.DefaultLayout,
	}
	if s.watch != nil {
		resp["watch_directories"] = s.watch.Directories()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
