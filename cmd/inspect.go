package cmd

import (
	"fmt"

	"github.com/jsphweid/rhythmdex/bar"
	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/config"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects the first bar of a MIDI file",
	Long:  `Inspects the first bar of a MIDI file and prints it the way the trainer would play it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		b, err := bar.FromSMF(s)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		printBar(out, b)
		fmt.Fprintf(out, "expected ms: %s\n", formatIntervals(checker.ExpectedTimes(b.Durations, cfg.BarDuration())))
		return nil
	},
}
