package main

import (
	"fmt"
	"io"

	"stealth-shooter/internal/config"
	"stealth-shooter/internal/gamemap"
	"stealth-shooter/internal/generate"

	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Print a generated level",
	Long: `Generate one level and print it as ASCII, followed by its rooms.

  #  wall     .  floor    +  cover
  @  spawn    G  guard    a  ammo    h  health`,
	RunE: runGen,
}

func runGen(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, pop, err := generateLevel(cfg)
	if err != nil {
		return err
	}
	printLevel(cmd.OutOrStdout(), level, pop)
	return nil
}

func generateLevel(cfg *config.Config) (*gamemap.Level, generate.PopulateResult, error) {
	gen := cfg.Generator(cfg.NewRand())
	level, err := generate.Generate(gen)
	if err != nil {
		return nil, generate.PopulateResult{}, err
	}
	return level, generate.Populate(level, gen), nil
}

// levelRows draws the grid one string per row, with spawns marked on top.
func levelRows(level *gamemap.Level, pop generate.PopulateResult) []string {
	grid := level.Grid
	rows := make([][]byte, grid.Height)
	for y := range rows {
		rows[y] = make([]byte, grid.Width)
		for x := range rows[y] {
			switch grid.At(x, y) {
			case gamemap.TileFloor:
				rows[y][x] = '.'
			case gamemap.TileCover:
				rows[y][x] = '+'
			default:
				rows[y][x] = '#'
			}
		}
	}

	mark := func(wx, wy float64, ch byte) {
		if x, y, ok := grid.CellAt(wx, wy); ok {
			rows[y][x] = ch
		}
	}
	for _, p := range pop.Pickups {
		ch := byte('a')
		if p.Kind == generate.PickupHealth {
			ch = 'h'
		}
		mark(p.Pos.X, p.Pos.Y, ch)
	}
	for _, a := range pop.Agents {
		mark(a.X, a.Y, 'G')
	}
	sp := level.SpawnPoint()
	mark(sp.X, sp.Y, '@')

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

func printLevel(w io.Writer, level *gamemap.Level, pop generate.PopulateResult) {
	for _, row := range levelRows(level, pop) {
		fmt.Fprintln(w, row)
	}
	grid := level.Grid
	fmt.Fprintf(w, "\nlevel %s  %dx%d cells  %d rooms  %d guards  %d pickups\n",
		level.ID, grid.Width, grid.Height, len(level.Rooms), len(pop.Agents), len(pop.Pickups))
	for i, r := range level.Rooms {
		fmt.Fprintf(w, "room %2d  x=%-3d y=%-3d %dx%d\n", i, r.X, r.Y, r.W, r.H)
	}
}
