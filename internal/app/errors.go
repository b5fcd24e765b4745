package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrElementNotFound = errors.New("element not found")
	ErrLoadCatalog     = errors.New("load catalog failed")
	ErrLoadRuleset     = errors.New("load ruleset failed")
	ErrBatch           = errors.New("batch evaluation failed")
)
