package main

import (
	"fmt"

	"stealth-shooter/internal/game"
	"stealth-shooter/internal/logger"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long:  `Start an interactive game. Logs go to the configured log file because the game owns the terminal.`,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Logging = cfg.Logging.Interactive()

	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	g, err := game.New(cfg, log)
	if err != nil {
		return err
	}
	g.Run()
	return nil
}
