// Package tariff evaluates a complete tariff sheet: element values from the
// catalog, repetition legality and difficulty bonuses for both passes.
package tariff

import (
	"math"
	"strconv"

	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/rules"
)

// Sheet is the input of an evaluation.
type Sheet struct {
	Athlete string               `json:"athlete" validate:"max=128"`
	Context bonus.AthleteContext `json:"context"`
	Pass1   legality.Pass        `json:"pass1"`
	Pass2   legality.Pass        `json:"pass2"`
	Lang    string               `json:"lang,omitempty" validate:"max=64"`
}

// Key returns the parts that identify the evaluation of s. The athlete name
// is excluded since it does not affect the result.
func (s Sheet) Key() []string {
	parts := make([]string, 0, 2*legality.PassLength+5)
	parts = append(parts, s.Pass1[:]...)
	parts = append(parts, s.Pass2[:]...)
	parts = append(parts,
		string(s.Context.Track),
		string(s.Context.Level),
		string(s.Context.Gender),
		strconv.FormatBool(s.Context.AutoBonusEnabled),
		legality.ParseLanguage(s.Lang).String(),
	)
	return parts
}

// SlotEvaluation is one rendered slot of a pass.
type SlotEvaluation struct {
	ElementID string   `json:"element_id,omitempty"`
	Symbol    string   `json:"symbol,omitempty"`
	Value     float64  `json:"value"`
	Bonus     *float64 `json:"bonus"`
	Illegal   bool     `json:"illegal"`
}

// PassEvaluation sums up one pass.
type PassEvaluation struct {
	Slots      [legality.PassLength]SlotEvaluation `json:"slots"`
	Difficulty float64                             `json:"difficulty"`
	Bonus      float64                             `json:"bonus"`
	Total      float64                             `json:"total"`
}

// Evaluation is the outcome of a sheet evaluation.
type Evaluation struct {
	RulesetVersion string            `json:"ruleset_version"`
	Legality       legality.Result   `json:"legality"`
	Passes         [2]PassEvaluation `json:"passes"`
	Total          float64           `json:"total"`
}

// Evaluator combines the catalog, the legality checker and the bonus calculator.
type Evaluator struct {
	catalog    catalog.Catalog
	checker    *legality.Checker
	calculator *bonus.Calculator
	version    string
}

// NewEvaluator returns an Evaluator over c and rs.
func NewEvaluator(c catalog.Catalog, rs rules.Ruleset) *Evaluator {
	return &Evaluator{
		catalog:    c,
		checker:    legality.NewChecker(c, rs),
		calculator: bonus.NewCalculator(rs),
		version:    rs.Version,
	}
}

// Checker exposes the legality checker.
func (e *Evaluator) Checker() *legality.Checker { return e.checker }

// Calculator exposes the bonus calculator.
func (e *Evaluator) Calculator() *bonus.Calculator { return e.calculator }

// Values resolves the catalog value of every slot. Empty and unknown slots are 0.
func (e *Evaluator) Values(p legality.Pass) [legality.PassLength]float64 {
	var out [legality.PassLength]float64
	for i, id := range p {
		if id == "" {
			continue
		}
		if el, ok := e.catalog.Lookup(id); ok {
			out[i] = el.Value
		}
	}
	return out
}

// Evaluate renders the sheet. Illegal slots contribute neither value nor bonus.
func (e *Evaluator) Evaluate(s Sheet) Evaluation {
	ev := Evaluation{
		RulesetVersion: e.version,
		Legality:       e.checker.ValidatePasses(s.Pass1, s.Pass2, legality.ParseLanguage(s.Lang)),
	}

	for pi, pass := range [2]legality.Pass{s.Pass1, s.Pass2} {
		values := e.Values(pass)
		bonuses := e.calculator.ComputePassBonuses(values, s.Context)

		pe := &ev.Passes[pi]
		for i, id := range pass {
			slot := SlotEvaluation{
				ElementID: id,
				Value:     values[i],
				Bonus:     bonuses.PerElement[i],
				Illegal:   ev.Legality.IsBad(pi, i),
			}
			if id != "" {
				slot.Symbol = id
				if el, ok := e.catalog.Lookup(id); ok {
					slot.Symbol = el.Symbol
				}
			}
			pe.Slots[i] = slot

			if slot.Illegal {
				continue
			}
			pe.Difficulty += slot.Value
			if slot.Bonus != nil {
				pe.Bonus += *slot.Bonus
			}
		}
		pe.Difficulty = round(pe.Difficulty)
		pe.Bonus = round(pe.Bonus)
		pe.Total = round(pe.Difficulty + pe.Bonus)
	}
	ev.Total = round(ev.Passes[0].Total + ev.Passes[1].Total)
	return ev
}

// round trims float noise to the catalog's precision.
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
