// Package quiz drives multiple-choice questions on element values.
package quiz

import (
	"math/rand"
	"slices"

	"github.com/okian/tariff/internal/domain/catalog"
)

// ChoicesPerQuestion is the number of options offered per question.
const ChoicesPerQuestion = 4

// Question asks for the value of one element.
type Question struct {
	ElementID string    `json:"element_id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Choices   []float64 `json:"choices"`
	Answer    int       `json:"answer"`
}

// Generate draws count distinct elements from c and builds one question per
// element. The same seed always yields the same questions for a given catalog.
// count is capped at the catalog size.
func Generate(c catalog.Catalog, count int, seed int64) ([]Question, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	elements := c.All()
	values := distinctValues(elements)
	if len(values) < ChoicesPerQuestion {
		return nil, ErrNotEnoughElements
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic quizzes per seed
	rng.Shuffle(len(elements), func(i, j int) { elements[i], elements[j] = elements[j], elements[i] })
	if count > len(elements) {
		count = len(elements)
	}

	questions := make([]Question, 0, count)
	for _, e := range elements[:count] {
		questions = append(questions, newQuestion(rng, e, values))
	}
	return questions, nil
}

func newQuestion(rng *rand.Rand, e catalog.Element, values []float64) Question {
	distractors := make([]float64, 0, len(values)-1)
	for _, v := range values {
		if v != e.Value {
			distractors = append(distractors, v)
		}
	}
	rng.Shuffle(len(distractors), func(i, j int) { distractors[i], distractors[j] = distractors[j], distractors[i] })

	choices := append([]float64{e.Value}, distractors[:ChoicesPerQuestion-1]...)
	slices.Sort(choices)

	return Question{
		ElementID: e.ID,
		Symbol:    e.Symbol,
		Name:      e.Name,
		Choices:   choices,
		Answer:    slices.Index(choices, e.Value),
	}
}

func distinctValues(elements []catalog.Element) []float64 {
	values := make([]float64, 0, len(elements))
	for _, e := range elements {
		values = append(values, e.Value)
	}
	slices.Sort(values)
	return slices.Compact(values)
}
