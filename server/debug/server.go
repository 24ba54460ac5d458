//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package debug provides an HTTP server exposing the assist engine for
// debugging and integration testing.
package debug

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/manualqa/manualqa-go/assist"
	"github.com/manualqa/manualqa-go/log"
	"github.com/manualqa/manualqa-go/prompt"
	"github.com/manualqa/manualqa-go/retrieval"
)

// Server exposes the retrieval engine and assist engine over HTTP.
type Server struct {
	engine *assist.Engine
	router *mux.Router
}

// Option configures the Server instance.
type Option func(*Server)

// WithCORS wraps the router with a permissive CORS policy so that browser
// tooling can call the debug endpoints directly.
func WithCORS() Option {
	return func(s *Server) {
		c := cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		})
		s.router.Use(c.Handler)
	}
}

// New creates a debug server around the given assist engine.
func New(engine *assist.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		router: mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe starts serving on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	log.Infof("debug server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	s.router.HandleFunc("/strategy/{name}", s.handleSetStrategy).Methods(http.MethodPut)
	s.router.HandleFunc("/prompt-style/{style}", s.handleSetPromptStyle).Methods(http.MethodPut)
	s.router.HandleFunc("/enhance", s.handleEnhance).Methods(http.MethodPost)
	s.router.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	s.router.HandleFunc("/compare", s.handleCompare).Methods(http.MethodPost)
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{"strategies": s.engine.Enhancer().Strategies()})
}

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.engine.SetStrategy(name); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, map[string]string{"strategy": name})
}

func (s *Server) handleSetPromptStyle(w http.ResponseWriter, r *http.Request) {
	style := mux.Vars(r)["style"]
	if err := s.engine.SetPromptStyle(prompt.Style(style)); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, map[string]string{"prompt_style": style})
}

// enhanceRequest carries a raw query plus candidate passages, letting callers
// exercise the enhancement strategies without a retriever.
type enhanceRequest struct {
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
	Strategy string   `json:"strategy,omitempty"`
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("query is required"))
		return
	}
	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = retrieval.DefaultStrategy
	}
	result, err := s.engine.Enhancer().GetEnhancedContext(r.Context(), req.Query, req.Passages, strategyName)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, result)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Question == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("question is required"))
		return
	}
	answer, err := s.engine.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, answer)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Question == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("question is required"))
		return
	}
	reports, err := s.engine.CompareStrategies(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, map[string]any{"question": req.Question, "reports": reports})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.engine.Metrics())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	log.Debugf("debug server request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
