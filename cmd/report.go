package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/util"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var exportMidi bool

func init() {
	reportCmd.Flags().BoolVar(&exportMidi, "export", false, "also write every round as a MIDI file to RHYTHM_EXPORT_PATH")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports on stored rounds",
	Long:  `Reports on stored rounds: how many succeeded, why the others failed, and how far off the presses were.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		rounds, err := app.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing rounds: %w", err)
		}
		printReport(cmd.OutOrStdout(), summarize(rounds))
		if exportMidi {
			return exportRounds(constants.GetExportDir(), rounds)
		}
		return nil
	},
}

func exportRounds(dir string, rounds []model.RoundResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, r := range rounds {
		path := filepath.Join(dir, r.ID+".mid")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = midi.WritePerformance(f, r)
		f.Close()
		if err != nil {
			return fmt.Errorf("exporting %s: %w", r.ID, err)
		}
	}
	return nil
}

type roundsReport struct {
	numRounds    int
	numSuccesses int
	reasons      map[model.Reason]int
	meanOnsetErr time.Duration
	maxOnsetErr  time.Duration
}

func summarize(rounds []model.RoundResult) roundsReport {
	report := roundsReport{numRounds: len(rounds), reasons: map[model.Reason]int{}}
	var errs []float64
	for _, r := range rounds {
		if r.Verdict.Success {
			report.numSuccesses += 1
		} else {
			report.reasons[r.Verdict.Reason] += 1
		}
		for _, d := range checker.OnsetErrors(r.Expected, r.Recorded) {
			errs = append(errs, model.Millis(d))
			report.maxOnsetErr = util.Max(report.maxOnsetErr, d)
		}
	}
	report.meanOnsetErr = model.FromMillis(util.Mean(errs))
	return report
}

func printReport(out io.Writer, report roundsReport) {
	fmt.Fprintf(out, "rounds: %v\n", report.numRounds)
	if report.numRounds == 0 {
		return
	}
	rate := float64(report.numSuccesses) / float64(report.numRounds)
	fmt.Fprintf(out, "successes: %v (%.0f%%)\n", report.numSuccesses, rate*100)
	reasons := maps.Keys(report.reasons)
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(out, "failed %s: %v\n", reason, report.reasons[reason])
	}
	fmt.Fprintf(out, "mean onset error: %v\n", report.meanOnsetErr)
	fmt.Fprintf(out, "max onset error: %v\n", report.maxOnsetErr)
}
