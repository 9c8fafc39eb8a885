package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ai_content_studio/config"
	"ai_content_studio/generator"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "content-studio",
	Short: "AI content creation studio",
	Long: `content-studio builds prompts from a niche, content type, topic,
description and tone, sends them to a chat-completion model and returns the
generated text. The 30-day calendar type is also split into table rows.

Run "content-studio serve" for the web form.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")

	rootCmd.AddCommand(serveCmd, generateCmd, calendarCmd, typesCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads config, validates it and sets up the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err = cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildAgent(ctx context.Context, cfg *config.Config) (*generator.Agent, error) {
	settings := cfg.LLM.Settings()
	llm, err := generator.NewLLM(ctx, settings)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm, settings, logger)
}
