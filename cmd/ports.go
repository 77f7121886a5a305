package cmd

import (
	"fmt"

	"github.com/jsphweid/rhythmdex/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists MIDI ports",
	Long:  `Lists MIDI ports. Either the number or a part of the name goes into midi.in and midi.out.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer midi.Close()
		ins, outs := midi.Ports()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "in:")
		for i, p := range ins {
			fmt.Fprintf(out, "  %d: %s\n", i, p)
		}
		fmt.Fprintln(out, "out:")
		for i, p := range outs {
			fmt.Fprintf(out, "  %d: %s\n", i, p)
		}
	},
}
