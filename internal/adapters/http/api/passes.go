package api

import (
	"context"
	"net/http"

	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/legality"
)

// PassDependencies defines the rule checks exposed over HTTP.
type PassDependencies interface {
	ValidatePasses(ctx context.Context, pass1, pass2 legality.Pass, lang string) (legality.Result, error)
	ComputeBonuses(ctx context.Context, values [bonus.PassLength]float64, actx bonus.AthleteContext) (bonus.Result, error)
}

// PassesHandler handles legality and bonus requests.
type PassesHandler struct {
	deps         PassDependencies
	maxBodyBytes int64
}

// NewPassesHandler creates a new passes handler.
func NewPassesHandler(deps PassDependencies, maxBodyBytes int64) *PassesHandler {
	return &PassesHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleValidate handles POST /passes/validate requests.
func (h *PassesHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_passes"
	var req validateRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}

	lang := req.Lang
	if lang == "" {
		lang = r.Header.Get("Accept-Language")
	}
	res, err := h.deps.ValidatePasses(r.Context(), toPass(req.Pass1), toPass(req.Pass2), lang)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleBonus handles POST /passes/bonus requests.
func (h *PassesHandler) HandleBonus(w http.ResponseWriter, r *http.Request) {
	const op = "api.pass_bonus"
	var req bonusRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}

	res, err := h.deps.ComputeBonuses(r.Context(), toValues(req.Values), req.Context)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
