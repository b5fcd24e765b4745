package rules

import "errors"

// Sentinel kinds for ruleset errors.
var (
	ErrLoadRuleset    = errors.New("load ruleset failed")
	ErrInvalidRuleset = errors.New("invalid ruleset")
)
