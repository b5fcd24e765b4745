package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/tariff"
)

func printEvaluation(w io.Writer, sheet tariff.Sheet, ev tariff.Evaluation) error {
	if sheet.Athlete != "" {
		fmt.Fprintf(w, "athlete: %s\n", sheet.Athlete)
	}
	fmt.Fprintf(w, "ruleset: %s\n", ev.RulesetVersion)

	for pi, pass := range [2]legality.Pass{sheet.Pass1, sheet.Pass2} {
		fmt.Fprintf(w, "\npass %d\n", pi+1)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SLOT\tELEMENT\tSYMBOL\tVALUE\tBONUS\t")
		pe := ev.Passes[pi]
		for i := range passIDs(pass) {
			slot := pe.Slots[i]
			if slot.ElementID == "" {
				fmt.Fprintf(tw, "%d\t-\t\t\t\t\n", i+1)
				continue
			}
			bonus := ""
			if slot.Bonus != nil {
				bonus = "+" + formatValue(*slot.Bonus)
			}
			mark := ""
			if slot.Illegal {
				mark = "illegal"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1, slot.ElementID, slot.Symbol, formatValue(slot.Value), bonus, mark)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "difficulty %s  bonus %s  total %s\n",
			formatValue(pe.Difficulty), formatValue(pe.Bonus), formatValue(pe.Total))
	}

	fmt.Fprintf(w, "\ntotal: %s\n", formatValue(ev.Total))
	printLegality(w, ev.Legality)
	return nil
}

func printLegality(w io.Writer, res legality.Result) {
	if res.IsLegal {
		fmt.Fprintln(w, "legal: yes")
		return
	}
	fmt.Fprintln(w, "legal: no")
	for pi, pl := range res.PerPass {
		for _, msg := range pl.Messages {
			fmt.Fprintf(w, "  pass %d: %s\n", pi+1, msg)
		}
	}
	for _, msg := range res.CrossPassMessages {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}

func printElements(w io.Writer, c catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSYMBOL\tCATEGORY\tVALUE\tNAME")
	for _, e := range c.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Symbol, e.Category, formatValue(e.Value), e.Name)
	}
	return tw.Flush()
}

// formatValue prints at least one decimal: 1 -> "1.0", 13.35 -> "13.35".
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
