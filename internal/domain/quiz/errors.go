package quiz

import "errors"

// Sentinel kinds for quiz errors.
var (
	ErrInvalidCount      = errors.New("question count must be positive")
	ErrNotEnoughElements = errors.New("catalog has too few distinct values")
	ErrNoQuestions       = errors.New("run has no questions")
	ErrRunFinished       = errors.New("run is finished")
	ErrInvalidChoice     = errors.New("choice out of range")
)
