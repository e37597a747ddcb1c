// stealth is the command-line front end for the stealth shooter. Build:
//
//	go build -o stealth ./cmd/stealth
//
// Usage:
//
//	./stealth play [--config stealth.yaml] [--seed 42]
//	./stealth gen --width 60 --height 30
//	./stealth sim --ticks 600
package main

import (
	"fmt"
	"os"

	"stealth-shooter/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	seed       int64
	width      int
	height     int
	depth      int
)

var rootCmd = &cobra.Command{
	Use:   "stealth",
	Short: "Top-down stealth shooter in the terminal",
	Long: `Sneak through procedurally generated levels with a flashlight while guards
patrol, grow suspicious and hunt you down.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "stealth.yaml", "Path to the YAML config file (defaults apply when missing)")
	pf.Int64Var(&seed, "seed", 0, "Random seed; 0 uses the config value or the clock")
	pf.IntVar(&width, "width", 0, "Level width in cells")
	pf.IntVar(&height, "height", 0, "Level height in cells")
	pf.IntVar(&depth, "depth", 0, "Maximum BSP depth")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Level.Width = width
	}
	if flags.Changed("height") {
		cfg.Level.Height = height
	}
	if flags.Changed("depth") {
		cfg.Level.MaxDepth = depth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
