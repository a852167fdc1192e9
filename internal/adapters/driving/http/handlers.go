package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// RootText is the plain-text liveness banner served at /
const RootText = "GHTBot running!"

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// ComponentHealth is the state of one dependency
// @Description Dependency health
type ComponentHealth struct {
	Status string `json:"status" example:"healthy"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status     string                     `json:"status" example:"healthy"`
	Components map[string]ComponentHealth `json:"components"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// LookupRequest asks for a reference on a track
// @Description Verse lookup request
type LookupRequest struct {
	Track     string `json:"track" example:"ght"`
	Reference string `json:"reference" example:"Matt 1:1-3"`
}

// CommandRequest carries the reference option of a slash command
// @Description Slash command invocation
type CommandRequest struct {
	Reference string `json:"reference" example:"Matt 1:1-3"`
}

// MessageRequest carries a raw chat message
// @Description Chat message
type MessageRequest struct {
	Content string `json:"content" example:"!ght Matt 1:1"`
}

// Health endpoints

// handleRoot godoc
// @Summary      Liveness banner
// @Description  Plain-text banner for uptime checks
// @Tags         Health
// @Produce      plain
// @Success      200  {string}  string  "GHTBot running!"
// @Router       / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RootText))
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API and its dependencies. Always 200 while the process serves requests.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "healthy",
		Components: map[string]ComponentHealth{
			"server": {Status: "healthy"},
		},
	}

	check := func(name string, p func(context.Context) error) {
		if err := p(r.Context()); err != nil {
			resp.Components[name] = ComponentHealth{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			return
		}
		resp.Components[name] = ComponentHealth{Status: "healthy"}
	}

	if s.lookupService != nil {
		check("store", s.lookupService.Ready)
	}
	if s.cache != nil {
		check("cache", s.cache.Ping)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns 200 when the concordance store answers, 503 otherwise
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Store unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.lookupService != nil {
		if err := s.lookupService.Ready(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleIssueToken godoc
// @Summary      Issue API token
// @Description  Exchange client credentials for a bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TokenRequest  true  "Client credentials"
// @Success      200      {object}  domain.TokenResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/token [post]
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.IssueToken(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "client_id and client_secret are required")
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			s.logger.Error("token issue failed", "error", err, "request_id", GetRequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "failed to issue token")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Catalog endpoints

// handleListTracks godoc
// @Summary      List tracks
// @Description  Lists the configured word tracks
// @Tags         Catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Track
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /tracks [get]
func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lookupService.Tracks())
}

// handleListBooks godoc
// @Summary      List books
// @Description  Lists the book catalog with accepted aliases
// @Tags         Catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.BookInfo
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /books [get]
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Books())
}

// handleListCommands godoc
// @Summary      List slash commands
// @Description  Slash command definitions for registration with a chat platform
// @Tags         Catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CommandDefinition
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /commands [get]
func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lookupService.Commands())
}

// Lookup endpoints

// handleLookup godoc
// @Summary      Look up verses
// @Description  Parses a reference and renders the verses of a track. Invalid or missing references, empty ranges and store failures are reported in the result status.
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      LookupRequest  true  "Lookup request"
// @Success      200      {object}  domain.LookupResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Unknown track"
// @Router       /lookup [post]
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	track := req.Track
	if track == "" {
		track = s.defaultTrack()
	}

	s.lookup(w, r, track, req.Reference)
}

// handleCommand godoc
// @Summary      Run a slash command
// @Description  Runs /<name> with its reference option, e.g. /ght or /ghtg
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name     path      string          true  "Command (track) name"
// @Param        request  body      CommandRequest  true  "Command options"
// @Success      200      {object}  domain.LookupResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Unknown command"
// @Router       /commands/{name} [post]
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.lookup(w, r, name, req.Reference)
}

// handleMessage godoc
// @Summary      Handle a chat message
// @Description  Runs "!<track> <reference>" text commands. Returns 204 when the message is not a command.
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      MessageRequest  true  "Chat message"
// @Success      200      {object}  domain.LookupResult
// @Success      204      "Not a command"
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /messages [post]
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.lookupTimeout)
	defer cancel()

	result, handled, err := s.lookupService.HandleMessage(ctx, req.Content)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	if !handled {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, track, reference string) {
	ctx, cancel := context.WithTimeout(r.Context(), s.lookupTimeout)
	defer cancel()

	result, err := s.lookupService.Lookup(ctx, track, reference)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownTrack):
		writeError(w, http.StatusNotFound, "unknown track")
	default:
		s.logger.Error("lookup failed", "error", err, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "lookup failed")
	}
}

func (s *Server) defaultTrack() string {
	tracks := s.lookupService.Tracks()
	if len(tracks) == 0 {
		return ""
	}
	return tracks[0].Name
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
