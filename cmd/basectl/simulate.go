package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/coclike/pkg/simulation"
	"github.com/decker502/coclike/pkg/systems"
	"github.com/decker502/coclike/pkg/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// placement 命令行指定的放置：kind@x,y 或 kind:level@x,y
type placement struct {
	Kind  types.BuildingKind
	Level int
	X, Y  int
}

// parsePlacement 解析 kind[:level]@x,y
func parsePlacement(s string) (placement, error) {
	head, pos, ok := strings.Cut(s, "@")
	if !ok {
		return placement{}, fmt.Errorf("placement %q: expected kind[:level]@x,y", s)
	}

	p := placement{Level: systems.StartingLevel}
	name, levelStr, hasLevel := strings.Cut(head, ":")
	kind, err := types.ParseBuildingKind(name)
	if err != nil {
		return placement{}, fmt.Errorf("placement %q: %w", s, err)
	}
	p.Kind = kind
	if hasLevel {
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			return placement{}, fmt.Errorf("placement %q: invalid level: %w", s, err)
		}
		p.Level = level
	}

	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return placement{}, fmt.Errorf("placement %q: expected x,y", s)
	}
	if p.X, err = strconv.Atoi(strings.TrimSpace(xs)); err != nil {
		return placement{}, fmt.Errorf("placement %q: invalid x: %w", s, err)
	}
	if p.Y, err = strconv.Atoi(strings.TrimSpace(ys)); err != nil {
		return placement{}, fmt.Errorf("placement %q: invalid y: %w", s, err)
	}
	return p, nil
}

func newSimulateCmd(c *cli) *cobra.Command {
	var (
		seconds    float64
		step       float64
		placements []string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the base simulation headlessly and print resource totals",
		Example: `  basectl simulate --seconds 60 --step 0.5
  basectl simulate --place gold_collector@10,10 --place elixir_collector:3@20,10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(step > 0) || math.IsInf(step, 0) {
				return fmt.Errorf("--step must be a positive number, got %v", step)
			}
			if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
				return fmt.Errorf("--seconds must be a finite non-negative number, got %v", seconds)
			}

			parsed := make([]placement, 0, len(placements))
			for _, s := range placements {
				p, err := parsePlacement(s)
				if err != nil {
					return err
				}
				parsed = append(parsed, p)
			}

			stats, err := c.stats()
			if err != nil {
				return err
			}
			base, err := c.base()
			if err != nil {
				return err
			}
			sim, err := simulation.New(simulation.Options{
				Stats:    stats,
				Base:     base,
				Viewport: systems.IdentityViewport{},
				Logger:   c.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range parsed {
				if _, ok := sim.Placement().PlaceBuilding(p.Kind, p.Level, p.X, p.Y); ok {
					color.New(color.FgGreen).Fprintf(out, "placed %s L%d at (%d,%d)\n", p.Kind, p.Level, p.X, p.Y)
				} else {
					color.New(color.FgRed).Fprintf(out, "rejected %s at (%d,%d)\n", p.Kind, p.X, p.Y)
				}
			}

			runFor(sim, seconds, step)
			return renderResources(out, sim.Snapshot())
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 60, "Simulated seconds to run")
	cmd.Flags().Float64Var(&step, "step", 1.0/60.0, "Seconds per simulation step")
	cmd.Flags().StringArrayVar(&placements, "place", nil, "Place a building before running: kind[:level]@x,y (repeatable)")
	return cmd
}

// runFor 以固定步长运行 seconds 秒，最后一步补齐余数
func runFor(sim *simulation.Simulation, seconds, step float64) {
	remaining := seconds
	for remaining > 0 {
		dt := math.Min(step, remaining)
		sim.Step(simulation.FrameInput{Elapsed: dt})
		remaining -= dt
	}
}

func renderResources(out io.Writer, snap simulation.Snapshot) error {
	color.New(color.FgCyan, color.Bold).Fprintf(out, "after %.2fs, %d buildings\n", snap.Elapsed, len(snap.Buildings))

	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Resource", "Total", "Rate/s", "Capacity"}),
	)
	for _, kind := range types.AllResourceKinds() {
		row := []string{
			kind.String(),
			strconv.FormatFloat(snap.Resources[kind], 'f', 2, 64),
			strconv.FormatFloat(snap.Rates[kind], 'f', -1, 64),
			strconv.Itoa(snap.Capacity[kind]),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
