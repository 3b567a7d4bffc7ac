package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Run one prompt through the decision loop and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildAgent(cfg)
		if err != nil {
			return err
		}

		maxSteps, err := cmd.Flags().GetInt("max-steps")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Println(a.RunSteps(ctx, args[0], maxSteps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Int("max-steps", 0, "override the step budget for this run")
}
