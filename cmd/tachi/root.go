package main

import (
	"fmt"
	"os"

	"github.com/harunnryd/tachi/internal/config"
	"github.com/harunnryd/tachi/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tachi",
	Short: "Tachi MCP agent",
	Long:  `Tachi is a single-agent decision loop that drives MCP tools with a locally-hosted model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd)
		if err != nil {
			return err
		}

		logger.Setup(cfg.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tachi/config.yaml)")
	rootCmd.PersistentFlags().String("log_level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("model.name", config.DefaultModelName, "model name")
	rootCmd.PersistentFlags().String("model.provider", config.DefaultModelProvider, "model provider (ollama, openai)")
	rootCmd.PersistentFlags().String("tools.command", config.DefaultToolsCommand, "tool server command (stdio MCP)")
}
