package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smart-home-mock/internal/domain"
)

const (
	maxRequestBodySize = 64 << 10

	defaultInvocationLimit = 50
	maxInvocationLimit     = 500
)

func (s *Server) handleSmartHome(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		s.logger.Warn("decoding smart home request", "error", err, "request_id", RequestID(r.Context()))
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	resp, err := s.dispatcher.Handle(r.Context(), &req)
	if err != nil {
		e := dispatchError(err)
		writeError(w, e.Status, e.Code, e.Message)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAppliances(w http.ResponseWriter, _ *http.Request) {
	appliances := s.appliances.Discover()
	writeJSON(w, http.StatusOK, map[string]any{
		"appliances": appliances,
		"count":      len(appliances),
	})
}

func (s *Server) handleGetAppliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	appliance, ok := s.appliances.Find(id)
	if !ok {
		writeNotFound(w, "appliance not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, appliance)
}

func (s *Server) handleListInvocations(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "invocation audit log is disabled")
		return
	}

	limit := defaultInvocationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxInvocationLimit)
	}

	invocations, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing invocations", "error", err)
		writeInternalError(w, "failed to list invocations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"invocations": invocations,
		"count":       len(invocations),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	running := s.isRunning()

	status := "ok"
	statusCode := http.StatusOK
	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status":     status,
		"running":    running,
		"appliances": len(s.appliances.Discover()),
	})
}
