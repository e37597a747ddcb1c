package main

import (
	"fmt"
	"os"

	"stealth-shooter/internal/config"
	"stealth-shooter/internal/game"
	"stealth-shooter/internal/logger"
)

func main() {
	cfg, err := config.Load("stealth.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging = cfg.Logging.Interactive()

	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	g, err := game.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
