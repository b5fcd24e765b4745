package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/rules"
	"github.com/okian/tariff/internal/domain/tariff"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	catalogPath string
	rulesetPath string
	lang        string
	asJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tariffctl",
		Short:         "Evaluate tumbling tariff sheets offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.catalogPath, "catalog", "", "element catalog YAML (default: embedded)")
	flags.StringVar(&opts.rulesetPath, "ruleset", "", "ruleset YAML (default: embedded)")
	flags.StringVar(&opts.lang, "lang", "", "message language, overrides the sheet (en, fr, nl)")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(
		newEvaluateCmd(opts),
		newValidateCmd(opts),
		newElementsCmd(opts),
		newQuizCmd(opts),
	)
	return root
}

func (o *rootOptions) loadCatalog() (*catalog.InMemoryCatalog, error) {
	if o.catalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(o.catalogPath)
}

func (o *rootOptions) loadRuleset() (rules.Ruleset, error) {
	if o.rulesetPath == "" {
		return rules.Default(), nil
	}
	return rules.LoadFile(o.rulesetPath)
}

func (o *rootOptions) evaluator() (*tariff.Evaluator, error) {
	c, err := o.loadCatalog()
	if err != nil {
		return nil, err
	}
	rs, err := o.loadRuleset()
	if err != nil {
		return nil, err
	}
	return tariff.NewEvaluator(c, rs), nil
}

func (o *rootOptions) readSheet(path string) (tariff.Sheet, error) {
	sheet, err := readSheetFile(path)
	if err != nil {
		return tariff.Sheet{}, err
	}
	if o.lang != "" {
		sheet.Lang = o.lang
	}
	return sheet, nil
}

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [sheet.yaml]",
		Short: "Print values, bonuses, legality and totals of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := opts.evaluator()
			if err != nil {
				return err
			}
			sheet, err := opts.readSheet(args[0])
			if err != nil {
				return err
			}
			res := ev.Evaluate(sheet)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printEvaluation(cmd.OutOrStdout(), sheet, res)
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [sheet.yaml]",
		Short: "Check repetition legality of a sheet; exits non-zero when illegal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := opts.evaluator()
			if err != nil {
				return err
			}
			sheet, err := opts.readSheet(args[0])
			if err != nil {
				return err
			}
			res := ev.Evaluate(sheet).Legality
			if opts.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				printLegality(cmd.OutOrStdout(), res)
			}
			if !res.IsLegal {
				return errIllegalSheet
			}
			return nil
		},
	}
}

func newElementsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List catalog elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), c.All())
			}
			return printElements(cmd.OutOrStdout(), c)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
