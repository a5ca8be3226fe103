// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/agentarium/agentarium/internal/adapters"
	"github.com/agentarium/agentarium/internal/agents"
	"github.com/agentarium/agentarium/internal/consumers"
	"github.com/agentarium/agentarium/internal/ingest"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	ingest *ingest.Service
	agents *agents.Registry
	frame  *consumers.Frame
}

// NewHandlers creates the handler set. frame is the long-lived dispatch
// context handed to the bus on every emit.
func NewHandlers(ingestSvc *ingest.Service, agentReg *agents.Registry, frame *consumers.Frame) *Handlers {
	return &Handlers{ingest: ingestSvc, agents: agentReg, frame: frame}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to read request body", "context": err.Error()})
		return nil, false
	}
	return body, true
}

// registerRequest is the body of POST /v2/agents/register.
type registerRequest struct {
	Name      string         `json:"name"`
	Framework string         `json:"framework"`
	CWD       string         `json:"cwd,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// registerResponse is the response of POST /v2/agents/register.
type registerResponse struct {
	OK    bool              `json:"ok"`
	Agent agents.Registered `json:"agent"`
}

// RegisterAgent handles POST /v2/agents/register
func (h *Handlers) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body", "context": err.Error()})
		return
	}

	agent, err := h.agents.Register(req.Name, req.Framework, req.CWD, req.Metadata)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Registration failed", "context": err.Error()})
		return
	}

	getLog().Info().
		Str("agentId", agent.AgentID).
		Str("name", agent.Name).
		Str("framework", agent.Framework).
		Msg("Agent registered")
	writeJSON(w, http.StatusOK, registerResponse{OK: true, Agent: agent})
}

// ListAgents handles GET /v2/agents
func (h *Handlers) ListAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "agents": h.agents.List()})
}

// PostEvent handles POST /v2/event: the body is a canonical AgentEvent,
// possibly missing id/timestamp, which are auto-filled.
func (h *Handlers) PostEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	_, err := h.ingest.Process(body, h.frame)
	if err != nil {
		if errors.Is(err, adapters.ErrUnrecognizedFormat) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Body is not a canonical event"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to process event", "context": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PostLegacyEvent handles POST /event: the body is any raw shape, run
// through the adapter registry. Unrecognized formats are rejected with a
// client error.
func (h *Handlers) PostLegacyEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	evs, err := h.ingest.Process(body, h.frame)
	if err != nil {
		if errors.Is(err, adapters.ErrUnrecognizedFormat) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unrecognized event format"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to process event", "context": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "emitted": len(evs)})
}

// Healthz handles GET /healthz
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
