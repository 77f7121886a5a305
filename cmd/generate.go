package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/rhythmdex/bar"
	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/config"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [n]",
	Short: "Generates bars",
	Long:  `Generates n random bars (default 1) and prints their expected times.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil || arg1 < 1 {
				return fmt.Errorf("n must be a positive number, got %q", args[0])
			}
			n = arg1
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		generate(cmd.OutOrStdout(), cfg, n)
		return nil
	},
}

func formatIntervals(ivs []model.Interval) string {
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = fmt.Sprintf("[%g %g]", model.Millis(iv.Start), model.Millis(iv.End))
	}
	return strings.Join(parts, " ")
}

func printBar(out io.Writer, b *model.RhythmBar) {
	fmt.Fprintf(out, "keys: %s\n", strings.Join(b.Keys, " "))
	fmt.Fprintf(out, "durations: %v\n", b.Durations)
}

func generate(out io.Writer, cfg config.Config, n int) {
	g := bar.NewGenerator(cfg.Seed)
	settings := cfg.TrainerOptions().Settings
	for i := 0; i < n; i++ {
		b := g.Generate(settings)
		printBar(out, b)
		fmt.Fprintf(out, "expected ms: %s\n\n", formatIntervals(checker.ExpectedTimes(b.Durations, cfg.BarDuration())))
	}
}
