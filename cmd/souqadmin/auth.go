package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wajeeh/souqadmin/internal/core/app"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store the bearer token used by the live transport",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			if err := a.Tokens().Save(args[0]); err != nil {
				return err
			}
			fmt.Println("token stored")
			return nil
		}),
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored bearer token",
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			if err := a.Tokens().Clear(); err != nil {
				return err
			}
			fmt.Println("token cleared")
			return nil
		}),
	}
}
