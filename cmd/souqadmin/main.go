package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wajeeh/souqadmin/internal/core/app"
	"github.com/wajeeh/souqadmin/internal/core/event"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "souqadmin",
		Short: "souqadmin is the admin dashboard for the marketplace",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./souqadmin.yaml)")

	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runWithApp boots the core, attaches the notification printer and runs
// fn, closing everything afterwards.
func runWithApp(fn func(a *app.App, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cfgFile)
		if err != nil {
			return err
		}
		defer a.Close()

		attachPrinter(a.Bus())
		return fn(a, cmd, args)
	}
}

// attachPrinter renders core notifications on the terminal, standing in
// for the dashboard's toast layer.
func attachPrinter(bus event.Bus) {
	bus.Subscribe(event.TopicNotify, func(e event.Event) {
		n, ok := e.Payload.(event.Notification)
		if !ok {
			return
		}
		if n.Level == event.LevelError {
			fmt.Fprintf(os.Stderr, "error: %s\n", n.Message)
			return
		}
		fmt.Println(n.Message)
	})
	bus.Subscribe(event.TopicSessionExpired, func(e event.Event) {
		login, _ := e.Payload.(string)
		fmt.Fprintf(os.Stderr, "Session expired; credential cleared. Log in again at %s\n", login)
	})
}
