package quiz

// State is the lifecycle stage of a Run.
type State string

// Run states.
const (
	StateReady      State = "ready"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Run walks through a question set one answer at a time.
// A Run is not safe for concurrent use.
type Run struct {
	questions []Question
	answers   []int
	correct   int
	state     State
}

// NewRun starts a run over questions.
func NewRun(questions []Question) (*Run, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Run{
		questions: questions,
		answers:   make([]int, 0, len(questions)),
		state:     StateReady,
	}, nil
}

// State returns the current stage.
func (r *Run) State() State { return r.state }

// Current returns the question awaiting an answer.
func (r *Run) Current() (Question, bool) {
	if r.state == StateFinished {
		return Question{}, false
	}
	return r.questions[len(r.answers)], true
}

// Answer records choice for the current question and reports whether it was correct.
func (r *Run) Answer(choice int) (bool, error) {
	q, ok := r.Current()
	if !ok {
		return false, ErrRunFinished
	}
	if choice < 0 || choice >= len(q.Choices) {
		return false, ErrInvalidChoice
	}

	r.answers = append(r.answers, choice)
	correct := choice == q.Answer
	if correct {
		r.correct++
	}

	if len(r.answers) == len(r.questions) {
		r.state = StateFinished
	} else {
		r.state = StateInProgress
	}
	return correct, nil
}

// Score returns the number of correct answers and the number of questions.
func (r *Run) Score() (correct, total int) {
	return r.correct, len(r.questions)
}

// Answers returns the choices recorded so far.
func (r *Run) Answers() []int {
	out := make([]int, len(r.answers))
	copy(out, r.answers)
	return out
}
