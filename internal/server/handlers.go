package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docgraph/docgraph/pkg/diagram"
	"github.com/docgraph/docgraph/pkg/errors"
	"github.com/docgraph/docgraph/pkg/pipeline"
	"github.com/docgraph/docgraph/pkg/store"
)

// buildRequest is the POST /v1/graphs payload.
type buildRequest struct {
	Kind      string `json:"kind"`
	Input     string `json:"input"`
	RootLabel string `json:"root_label,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`
}

// buildResponse is the POST /v1/graphs result.
type buildResponse struct {
	ID             string               `json:"id"`
	Kind           string               `json:"kind"`
	GraphHash      string               `json:"graph_hash"`
	NodeCount      int                  `json:"node_count"`
	ConnectorCount int                  `json:"connector_count"`
	CacheHit       bool                 `json:"cache_hit"`
	Graph          *diagram.DiagramData `json:"graph"`
}

// listedGraph is one entry in the GET /v1/graphs result.
type listedGraph struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	GraphHash string `json:"graph_hash"`
	NodeCount int    `json:"node_count"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := errors.ValidateDocumentSize(len(req.Input)); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Kind:      req.Kind,
		Input:     req.Input,
		RootLabel: req.RootLabel,
		MaxDepth:  req.MaxDepth,
		Refresh:   req.Refresh,
		Formats:   []string{pipeline.FormatJSON},
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(req.Kind, result.GraphHash, result.Graph)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, buildResponse{
		ID:             rec.ID,
		Kind:           rec.Kind,
		GraphHash:      rec.GraphHash,
		NodeCount:      result.Stats.NodeCount,
		ConnectorCount: result.Stats.ConnectorCount,
		CacheHit:       result.CacheInfo.BuildHit,
		Graph:          result.Graph,
	})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// ?format=dot|svg|... renders the stored graph instead of returning it
	if format := r.URL.Query().Get("format"); format != "" {
		s.renderGraph(w, r, rec, format)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// renderGraph renders a stored graph into the requested artifact format.
func (s *Server) renderGraph(w http.ResponseWriter, r *http.Request, rec *store.Record, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported format %q", format))
		return
	}

	artifacts, err := s.runner.Render(r.Context(), rec.Graph, pipeline.Options{
		Formats: []string{format},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]listedGraph, 0, len(recs))
	for _, rec := range recs {
		entry := listedGraph{
			ID:        rec.ID,
			Kind:      rec.Kind,
			GraphHash: rec.GraphHash,
			CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if rec.Graph != nil {
			entry.NodeCount = len(rec.Graph.Nodes)
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": out})
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
