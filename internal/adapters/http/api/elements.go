package api

import (
	"context"
	"net/http"

	"github.com/okian/tariff/internal/domain/catalog"
)

// ElementDependencies defines catalog reads.
type ElementDependencies interface {
	Elements(ctx context.Context) ([]catalog.Element, error)
	Element(ctx context.Context, id string) (catalog.Element, error)
}

// ElementsHandler handles catalog requests.
type ElementsHandler struct {
	deps ElementDependencies
}

// NewElementsHandler creates a new elements handler.
func NewElementsHandler(deps ElementDependencies) *ElementsHandler {
	return &ElementsHandler{deps: deps}
}

type elementsResponse struct {
	Elements []catalog.Element `json:"elements"`
}

// HandleList handles GET /elements requests.
func (h *ElementsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	elements, err := h.deps.Elements(r.Context())
	if err != nil {
		writeServiceError(w, "api.list_elements", err)
		return
	}
	writeJSON(w, http.StatusOK, elementsResponse{Elements: elements})
}

// HandleGet handles GET /elements/{id} requests.
func (h *ElementsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.Element(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.get_element", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
