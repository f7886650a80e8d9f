package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/internal/sources"
	"github.com/megaphone-app/megaphone/pkg/handlers"
	"github.com/megaphone-app/megaphone/pkg/middleware"
	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/routes"
)

// Handler provides HTTP endpoints for content operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ToneInfo describes one tone for the catalog endpoint.
type ToneInfo struct {
	Tone        generation.Tone `json:"tone"`
	Instruction string          `json:"instruction"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "content"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for content endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/content",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/tones", Handler: h.Tones},
			{Method: "GET", Pattern: "/generators", Handler: h.Generators},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
			{Method: "POST", Pattern: "/{id}/publish", Handler: h.Publish},
			{Method: "POST", Pattern: "/{id}/retry", Handler: h.Retry},
			{Method: "POST", Pattern: "/{id}/unpublish", Handler: h.Unpublish},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of content units with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single content unit by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	u, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching units.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Generate runs the generation fan-out for the requesting user by decoding
// a GenerateCommand JSON body. Returns 201 with one result per produced unit.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoUser)
		return
	}

	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results, err := h.sys.Generate(r.Context(), userID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, mapGenerateStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, results)
}

// Publish posts a unit to its account's platform.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sys.Publish)
}

// Retry republishes a previously failed unit.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sys.Retry)
}

// Unpublish removes the platform post and returns the unit to draft.
func (h *Handler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sys.Unpublish)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*ContentUnit, error),
) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	u, err := op(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Delete removes a content unit by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Tones returns the tone catalog with each tone's instruction block.
func (h *Handler) Tones(w http.ResponseWriter, r *http.Request) {
	catalog := make([]ToneInfo, 0, len(generation.Tones()))
	for _, tone := range generation.Tones() {
		catalog = append(catalog, ToneInfo{Tone: tone, Instruction: tone.Instruction()})
	}

	handlers.RespondJSON(w, http.StatusOK, catalog)
}

// Generators returns the enabled AI generators and their normalized weights.
func (h *Handler) Generators(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Generators())
}

// mapGenerateStatus extends the domain mapping with source lookup errors
// surfaced by the fan-out.
func mapGenerateStatus(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return sources.MapHTTPStatus(err)
}
