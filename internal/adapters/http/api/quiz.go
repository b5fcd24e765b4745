package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/tariff/internal/domain/quiz"
)

// QuizDependencies defines quiz generation.
type QuizDependencies interface {
	Quiz(ctx context.Context, count int, seed int64) ([]quiz.Question, error)
}

// QuizHandler handles quiz requests.
type QuizHandler struct {
	deps         QuizDependencies
	maxQuestions int
	now          func() time.Time
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(deps QuizDependencies, maxQuestions int) *QuizHandler {
	return &QuizHandler{deps: deps, maxQuestions: maxQuestions, now: time.Now}
}

type quizResponse struct {
	Seed      int64           `json:"seed"`
	Questions []quiz.Question `json:"questions"`
}

// HandleGetQuiz handles GET /quiz?count=N&seed=S requests.
// A missing seed draws one from the clock; the response echoes it so the
// same quiz can be replayed.
func (h *QuizHandler) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quiz"
	q := r.URL.Query()

	count := min(defaultQuizQuestions, h.maxQuestions)
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		count = n
	}
	if count > h.maxQuestions {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("count exceeds limit "+strconv.Itoa(h.maxQuestions))))
		return
	}

	seed := h.now().UnixNano()
	if raw := q.Get("seed"); raw != "" {
		s, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		seed = s
	}

	qs, err := h.deps.Quiz(r.Context(), count, seed)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Seed: seed, Questions: qs})
}
