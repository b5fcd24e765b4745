package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/tariff/internal/domain/quiz"
)

func newQuizCmd(opts *rootOptions) *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Answer multiple-choice questions on element values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			qs, err := quiz.Generate(c, count, seed)
			if err != nil {
				return err
			}
			run, err := quiz.NewRun(qs)
			if err != nil {
				return err
			}
			return playQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), run)
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "number of questions")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for a repeatable quiz")
	return cmd
}

// playQuiz reads one 1-based choice per line until the run finishes or in is exhausted.
func playQuiz(in io.Reader, out io.Writer, run *quiz.Run) error {
	scanner := bufio.NewScanner(in)
	for run.State() != quiz.StateFinished {
		q, _ := run.Current()
		fmt.Fprintf(out, "\nWhat is the value of %s (%s)?\n", displayName(q), q.Symbol)
		for i, v := range q.Choices {
			fmt.Fprintf(out, "  %d) %.1f\n", i+1, v)
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "please type the number of a choice")
			continue
		}
		correct, err := run.Answer(choice - 1)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if correct {
			fmt.Fprintln(out, "correct")
		} else {
			fmt.Fprintf(out, "wrong, it is %.1f\n", q.Choices[q.Answer])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	got, total := run.Score()
	fmt.Fprintf(out, "\nscore: %d/%d\n", got, total)
	return nil
}

func displayName(q quiz.Question) string {
	if q.Name != "" {
		return q.Name
	}
	return q.ElementID
}
