// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/tariff/internal/adapters/repository"
	"github.com/okian/tariff/internal/domain/quiz"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PassDependencies
	TariffDependencies
	ElementDependencies
	QuizDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	passesHandler  *PassesHandler
	tariffsHandler *TariffsHandler
	elementHandler *ElementsHandler
	quizHandler    *QuizHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := config{
		maxBodyBytes:     defaultMaxBodyBytes,
		maxQuizQuestions: defaultMaxQuizQuestions,
		maxBatchSheets:   defaultMaxBatchSheets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		passesHandler:  NewPassesHandler(deps, cfg.maxBodyBytes),
		tariffsHandler: NewTariffsHandler(deps, cfg.maxBodyBytes, cfg.maxBatchSheets),
		elementHandler: NewElementsHandler(deps),
		quizHandler:    NewQuizHandler(deps, cfg.maxQuizQuestions),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /passes/validate", MetricsMiddleware(s.passesHandler.HandleValidate, "passes_validate"))
	mux.HandleFunc("POST /passes/bonus", MetricsMiddleware(s.passesHandler.HandleBonus, "passes_bonus"))

	mux.HandleFunc("POST /tariffs/evaluate", MetricsMiddleware(s.tariffsHandler.HandleEvaluate, "tariffs_evaluate"))
	mux.HandleFunc("POST /tariffs/evaluate/batch", MetricsMiddleware(s.tariffsHandler.HandleEvaluateBatch, "tariffs_evaluate_batch"))
	mux.HandleFunc("POST /tariffs", MetricsMiddleware(s.tariffsHandler.HandleCreate, "tariffs"))
	mux.HandleFunc("GET /tariffs", MetricsMiddleware(s.tariffsHandler.HandleList, "tariffs"))
	mux.HandleFunc("GET /tariffs/{id}", MetricsMiddleware(s.tariffsHandler.HandleGet, "tariff"))
	mux.HandleFunc("PUT /tariffs/{id}", MetricsMiddleware(s.tariffsHandler.HandleUpdate, "tariff"))
	mux.HandleFunc("DELETE /tariffs/{id}", MetricsMiddleware(s.tariffsHandler.HandleDelete, "tariff"))

	mux.HandleFunc("GET /elements", MetricsMiddleware(s.elementHandler.HandleList, "elements"))
	mux.HandleFunc("GET /elements/{id}", MetricsMiddleware(s.elementHandler.HandleGet, "element"))

	mux.HandleFunc("GET /quiz", MetricsMiddleware(s.quizHandler.HandleGetQuiz, "quiz"))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads a size-capped JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDecodeError reports a body that could not be read or validated.
func writeDecodeError(w http.ResponseWriter, op string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
}

// writeServiceError translates upstream errors to a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, quiz.ErrInvalidCount),
		errors.Is(err, quiz.ErrNotEnoughElements):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// It stays generic so the service layer keeps its own sentinels.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
