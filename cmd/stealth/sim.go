package main

import (
	"fmt"
	"io"

	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/logger"
	"stealth-shooter/internal/sim"

	"github.com/spf13/cobra"
)

var ticks int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a level headless with an idle player",
	Long: `Generate a level and tick it without a terminal UI. The player stands still
at the spawn point with the flashlight on; every guard state change is printed,
followed by the final state of each guard.`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&ticks, "ticks", 600, "Number of ticks to run")
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	s, err := sim.New(cfg, nil, log)
	if err != nil {
		return err
	}
	runHeadless(cmd.OutOrStdout(), s, ticks)
	return nil
}

// runHeadless ticks s up to n times with no input, stopping early if the
// player dies, and reports what the guards did.
func runHeadless(w io.Writer, s *sim.Sim, n int) {
	fmt.Fprintf(w, "level %s  %d rooms  %d guards\n", s.Level.ID, len(s.Level.Rooms), len(s.Agents))

	ran := 0
	for ran < n && !s.Over() {
		tick := s.Ticks
		ev := s.Tick(sim.Input{})
		ran++
		for _, t := range ev.Transitions {
			fmt.Fprintf(w, "tick %5d  guard #%-3d %s -> %s\n", tick, t.AgentID, t.From, t.To)
		}
		if ev.DamageTaken > 0 && s.Over() {
			fmt.Fprintf(w, "tick %5d  player died\n", tick)
		}
	}

	fmt.Fprintf(w, "\nafter %d ticks: health %.1f\n", ran, s.Player.Health)
	for _, a := range s.Agents {
		fmt.Fprintf(w, "guard #%-3d %-7s alert %5.1f  at (%.0f, %.0f)\n", a.ID, a.State, a.AlertLevel, a.Pos.X, a.Pos.Y)
	}
	counts := s.StateCounts()
	states := []agent.State{agent.Patrol, agent.Alert, agent.Chase, agent.Search}
	fmt.Fprint(w, "totals:")
	for _, st := range states {
		fmt.Fprintf(w, " %s=%d", st, counts[st])
	}
	fmt.Fprintln(w)
}
