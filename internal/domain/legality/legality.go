// Package legality flags illegal element repetitions across the two passes
// of a tariff sheet.
//
// Occurrences are visited in slot order of pass 1 then pass 2. The first
// occurrence of an id is never flagged. Later occurrences are flagged unless
// the element's category is exempt, or it is twist capped and still within
// the cap. A capped element may sit in the last slot of a pass only on its
// final allowed occurrence across both passes, which is the last one or the
// one reaching the cap, whichever comes first. Unknown ids have no category and fall
// under the strict no-repeat rule.
package legality

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/rules"
)

// PassLength is the number of slots in a pass.
const PassLength = 8

const lastSlot = PassLength - 1

// Pass holds the element id of each slot. An empty string is an empty slot.
type Pass [PassLength]string

// PassLegality lists the flagged slots of one pass and their messages.
type PassLegality struct {
	BadIndices []int    `json:"bad_indices"`
	Messages   []string `json:"messages"`
}

// Result is the outcome of ValidatePasses.
type Result struct {
	IsLegal           bool            `json:"is_legal"`
	PerPass           [2]PassLegality `json:"per_pass"`
	CrossPassMessages []string        `json:"cross_pass_messages"`
}

// IsBad reports whether slot of pass (0 or 1) was flagged.
func (r Result) IsBad(pass, slot int) bool {
	if pass < 0 || pass > 1 {
		return false
	}
	for _, i := range r.PerPass[pass].BadIndices {
		if i == slot {
			return true
		}
	}
	return false
}

// Checker validates passes against a catalog and ruleset.
type Checker struct {
	catalog catalog.Catalog
	rules   rules.Ruleset
}

// NewChecker returns a Checker. The catalog must be fully loaded.
func NewChecker(c catalog.Catalog, rs rules.Ruleset) *Checker {
	return &Checker{catalog: c, rules: rs}
}

type violation int

const (
	violationNone violation = iota
	violationRepeat
	violationTwistCap
	violationLastSlot
)

type occurrence struct {
	pass int
	slot int
	id   string
}

// messageSet appends messages once, in first-seen order.
type messageSet struct {
	seen map[string]struct{}
	list []string
}

func (m *messageSet) add(msg string) {
	if m.seen == nil {
		m.seen = make(map[string]struct{})
	}
	if _, ok := m.seen[msg]; ok {
		return
	}
	m.seen[msg] = struct{}{}
	m.list = append(m.list, msg)
}

func (m *messageSet) items() []string {
	if m.list == nil {
		return []string{}
	}
	return m.list
}

// ValidatePasses checks both passes and renders messages in lang.
func (c *Checker) ValidatePasses(pass1, pass2 Pass, lang language.Tag) Result {
	p := newPrinter(lang)

	var occurrences []occurrence
	total := make(map[string]int)
	for pi, pass := range [2]Pass{pass1, pass2} {
		for slot, id := range pass {
			if id == "" {
				continue
			}
			occurrences = append(occurrences, occurrence{pass: pi, slot: slot, id: id})
			total[id]++
		}
	}

	var (
		counts    = make(map[string]int, len(total))
		seenIn    = make(map[string][2]bool, len(total))
		bad       [2][]int
		passMsgs  [2]messageSet
		crossMsgs messageSet
	)

	for _, occ := range occurrences {
		counts[occ.id]++
		n := counts[occ.id]
		earlier := seenIn[occ.id]

		v := c.classify(occ, n, total[occ.id])
		if v != violationNone {
			bad[occ.pass] = append(bad[occ.pass], occ.slot)

			name := c.displayName(occ.id)
			if earlier[occ.pass] {
				passMsgs[occ.pass].add(c.render(p, v, name, 0))
			} else {
				crossMsgs.add(c.render(p, v, name, 2-occ.pass))
			}
		}

		earlier[occ.pass] = true
		seenIn[occ.id] = earlier
	}

	var res Result
	for i := range res.PerPass {
		idx := bad[i]
		if idx == nil {
			idx = []int{}
		}
		res.PerPass[i] = PassLegality{BadIndices: idx, Messages: passMsgs[i].items()}
	}
	res.CrossPassMessages = crossMsgs.items()
	res.IsLegal = len(bad[0]) == 0 && len(bad[1]) == 0 && len(res.CrossPassMessages) == 0
	return res
}

// classify decides whether the nth occurrence (1-based) of an id breaks a rule.
func (c *Checker) classify(occ occurrence, n, total int) violation {
	var category catalog.Category
	if e, ok := c.catalog.Lookup(occ.id); ok {
		category = e.Category
	}

	switch {
	case c.rules.IsExempt(category):
		return violationNone
	case c.rules.IsTwistCapped(category):
		if n > c.rules.TwistCap {
			return violationTwistCap
		}
		if occ.slot == lastSlot && n > 1 && n < min(total, c.rules.TwistCap) {
			return violationLastSlot
		}
		return violationNone
	case n > 1:
		return violationRepeat
	default:
		return violationNone
	}
}

func (c *Checker) displayName(id string) string {
	if e, ok := c.catalog.Lookup(id); ok && e.Symbol != "" {
		return e.Symbol
	}
	return id
}

// render formats a violation. otherPass is the 1-based pass holding the
// earlier occurrence, or 0 when it is the same pass.
func (c *Checker) render(p *message.Printer, v violation, name string, otherPass int) string {
	switch v {
	case violationTwistCap:
		return p.Sprintf(msgTwistCap, name, c.rules.TwistCap)
	case violationLastSlot:
		return p.Sprintf(msgLastSlot, name)
	default:
		if otherPass > 0 {
			return p.Sprintf(msgCrossRepeat, name, otherPass)
		}
		return p.Sprintf(msgRepeat, name)
	}
}
