package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start tachi in interactive mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildAgent(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return NewREPL(a).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
