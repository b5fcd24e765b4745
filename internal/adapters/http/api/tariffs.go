package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/tariff/internal/adapters/repository"
	"github.com/okian/tariff/internal/domain/tariff"
)

// TariffDependencies defines sheet evaluation and storage operations.
type TariffDependencies interface {
	Evaluate(ctx context.Context, sheet tariff.Sheet) (tariff.Evaluation, error)
	EvaluateBatch(ctx context.Context, sheets []tariff.Sheet) ([]tariff.Evaluation, error)
	SaveTariff(ctx context.Context, id string, sheet tariff.Sheet) (repository.Record, error)
	GetTariff(ctx context.Context, id string) (repository.Record, error)
	ListTariffs(ctx context.Context, athlete string) ([]repository.Record, error)
	DeleteTariff(ctx context.Context, id string) error
}

// TariffsHandler handles tariff sheet requests.
type TariffsHandler struct {
	deps           TariffDependencies
	maxBodyBytes   int64
	maxBatchSheets int
}

// NewTariffsHandler creates a new tariffs handler.
func NewTariffsHandler(deps TariffDependencies, maxBodyBytes int64, maxBatchSheets int) *TariffsHandler {
	return &TariffsHandler{deps: deps, maxBodyBytes: maxBodyBytes, maxBatchSheets: maxBatchSheets}
}

type listResponse struct {
	Tariffs []repository.Record `json:"tariffs"`
}

type batchResponse struct {
	Evaluations []tariff.Evaluation `json:"evaluations"`
}

func (h *TariffsHandler) readSheet(w http.ResponseWriter, r *http.Request) (tariff.Sheet, error) {
	var req sheetRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return tariff.Sheet{}, err
	}
	sheet := req.sheet()
	if sheet.Lang == "" {
		sheet.Lang = r.Header.Get("Accept-Language")
	}
	return sheet, nil
}

// HandleEvaluate handles POST /tariffs/evaluate requests.
func (h *TariffsHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_tariff"
	sheet, err := h.readSheet(w, r)
	if err != nil {
		writeDecodeError(w, op, err)
		return
	}
	ev, err := h.deps.Evaluate(r.Context(), sheet)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleEvaluateBatch handles POST /tariffs/evaluate/batch requests.
func (h *TariffsHandler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_batch"
	var req batchRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	if len(req.Sheets) > h.maxBatchSheets {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, fmt.Errorf("batch holds %d sheets, max is %d", len(req.Sheets), h.maxBatchSheets)))
		return
	}

	lang := r.Header.Get("Accept-Language")
	sheets := make([]tariff.Sheet, len(req.Sheets))
	for i, sr := range req.Sheets {
		sheets[i] = sr.sheet()
		if sheets[i].Lang == "" {
			sheets[i].Lang = lang
		}
	}

	evs, err := h.deps.EvaluateBatch(r.Context(), sheets)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Evaluations: evs})
}

// HandleCreate handles POST /tariffs requests.
func (h *TariffsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_tariff"
	sheet, err := h.readSheet(w, r)
	if err != nil {
		writeDecodeError(w, op, err)
		return
	}
	rec, err := h.deps.SaveTariff(r.Context(), "", sheet)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/tariffs/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// HandleUpdate handles PUT /tariffs/{id} requests.
func (h *TariffsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_tariff"
	sheet, err := h.readSheet(w, r)
	if err != nil {
		writeDecodeError(w, op, err)
		return
	}
	rec, err := h.deps.SaveTariff(r.Context(), r.PathValue("id"), sheet)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleList handles GET /tariffs?athlete= requests.
func (h *TariffsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_tariffs"
	recs, err := h.deps.ListTariffs(r.Context(), r.URL.Query().Get("athlete"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if recs == nil {
		recs = []repository.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Tariffs: recs})
}

// HandleGet handles GET /tariffs/{id} requests.
func (h *TariffsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tariff"
	rec, err := h.deps.GetTariff(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleDelete handles DELETE /tariffs/{id} requests.
func (h *TariffsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_tariff"
	if err := h.deps.DeleteTariff(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
