package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/cue"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/render"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

const textColumns = 64

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plays with a MIDI controller",
	Long: `Plays with a MIDI controller. The trigger note on midi.in presses the
key, the metronome clicks on midi.out or, without one, rings the terminal bell.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		defer midi.Close()
		return play(cmd, app)
	},
}

func metronome(app *App, c clock.Clock, out io.Writer) cue.Player {
	log := logger.Component(app.Log, "play")
	port, err := midi.OpenOut(app.Config.MIDI.Out)
	if err != nil {
		log.WithError(err).Warn("no midi out, using the terminal bell")
		return cue.NewBell(c, out)
	}
	click, err := midi.NewCue(port, c, app.Config.CueOptions(), log)
	if err != nil {
		log.WithError(err).Warn("midi out unusable, using the terminal bell")
		return cue.NewBell(c, out)
	}
	return click
}

// drawEvent prints the headline and, once there is something to show, both
// tracks.
func drawEvent(out io.Writer, ev render.Event) {
	fmt.Fprintln(out, ev.Snapshot.Message)
	if ev.Frame != nil && !ev.Frame.Empty() {
		fmt.Fprint(out, render.Text(*ev.Frame, textColumns))
	}
	if ev.Snapshot.Hint != "" {
		fmt.Fprintln(out, ev.Snapshot.Hint)
	}
}

func play(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	in, err := midi.OpenIn(app.Config.MIDI.In)
	if err != nil {
		return err
	}

	c := clock.Real{}
	e := app.Session(c, metronome(app, c, out), func(ev render.Event) { drawEvent(out, ev) })
	defer e.Close()

	stop, err := midi.Listen(in, app.Config.MIDI.TriggerNote, func(s model.Signal) {
		e.Submit(model.KeyEvent{Key: app.Config.TriggerKey, Type: s})
	})
	if err != nil {
		return err
	}
	defer stop()

	fmt.Fprintf(out, "Listening on %s, trigger note %d.\n", in, app.Config.MIDI.TriggerNote)
	drawEvent(out, render.Event{Snapshot: e.Snapshot()})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	<-ctx.Done()
	return nil
}
