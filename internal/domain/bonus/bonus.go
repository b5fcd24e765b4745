// Package bonus computes difficulty bonuses for the elements of a pass.
package bonus

import (
	"github.com/okian/tariff/internal/domain/rules"
)

// PassLength is the number of slots in a pass.
const PassLength = 8

// Track is the competition track of the athlete.
type Track string

// Level is the competition level of the athlete.
type Level string

// AthleteContext carries the athlete metadata the calculator reads.
//
// Track and Level are accepted but do not select a profile in the current
// ruleset; only Gender does.
type AthleteContext struct {
	Track            Track        `json:"track,omitempty" yaml:"track"`
	Level            Level        `json:"level,omitempty" yaml:"level"`
	Gender           rules.Gender `json:"gender,omitempty" yaml:"gender" validate:"omitempty,oneof=male female"`
	AutoBonusEnabled bool         `json:"auto_bonus_enabled" yaml:"auto_bonus_enabled"`
}

// Result holds one entry per slot; nil means no bonus.
type Result struct {
	PerElement [PassLength]*float64 `json:"per_element"`
}

// Count returns the number of slots that earned a bonus.
func (r Result) Count() int {
	n := 0
	for _, b := range r.PerElement {
		if b != nil {
			n++
		}
	}
	return n
}

// Total returns the sum of awarded bonuses.
func (r Result) Total() float64 {
	var sum float64
	for _, b := range r.PerElement {
		if b != nil {
			sum += *b
		}
	}
	return sum
}

// At returns the bonus for slot i and whether one was awarded.
func (r Result) At(i int) (float64, bool) {
	if i < 0 || i >= PassLength || r.PerElement[i] == nil {
		return 0, false
	}
	return *r.PerElement[i], true
}

// Calculator awards bonuses from a ruleset.
type Calculator struct {
	rules rules.Ruleset
}

// NewCalculator returns a Calculator bound to rs.
func NewCalculator(rs rules.Ruleset) *Calculator {
	return &Calculator{rules: rs}
}

// ComputePassBonuses walks the slots in order. Every element whose value
// exceeds the gender threshold earns the bonus, except the first one found.
// Empty slots carry value 0 and never qualify.
func (c *Calculator) ComputePassBonuses(values [PassLength]float64, ctx AthleteContext) Result {
	var res Result
	if !ctx.AutoBonusEnabled {
		return res
	}

	profile, ok := c.rules.Profile(ctx.Gender)
	if !ok {
		return res
	}

	consumed := false
	for i, v := range values {
		if v <= profile.Threshold {
			continue
		}
		if !consumed {
			consumed = true
			continue
		}
		b := profile.Bonus
		res.PerElement[i] = &b
	}
	return res
}
