package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/cue"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/jsphweid/rhythmdex/render"
	"github.com/jsphweid/rhythmdex/server"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var showQR bool

func init() {
	serveCmd.Flags().BoolVar(&showQR, "qr", false, "print a QR code of the input page")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the trainer over HTTP",
	Long:  `Serves the trainer over HTTP. Input arrives on /input, frames leave on /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		return serve(cmd, app)
	},
}

// NewServer wires a session to the HTTP API. Call the returned func to stop
// the engine.
func (a *App) NewServer() (*server.Server, func()) {
	hub := render.NewHub()
	e := a.Session(clock.Real{}, cue.Silent{}, func(ev render.Event) { hub.Publish(ev) })
	return server.New(a.Config.TriggerKey, e, hub, a.Store, logger.Component(a.Log, "server")), e.Close
}

// inputURL guesses the address a phone on the same network can reach.
func inputURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen
	}
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
		if addrs, err := net.InterfaceAddrs(); err == nil {
			for _, a := range addrs {
				if ip, ok := a.(*net.IPNet); ok && !ip.IP.IsLoopback() && ip.IP.To4() != nil {
					host = ip.IP.String()
					break
				}
			}
		}
	}
	return "http://" + net.JoinHostPort(host, port)
}

func printQR(cmd *cobra.Command, url string) error {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("building qr code: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), q.ToSmallString(false))
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func serve(cmd *cobra.Command, app *App) error {
	srv, stop := app.NewServer()
	defer stop()

	if showQR {
		if err := printQR(cmd, inputURL(app.Config.Listen)); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	return srv.ListenAndServe(ctx, app.Config.Listen)
}
