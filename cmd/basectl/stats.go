package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [kind]",
		Short: "Print the per-level stat progression table",
		Long: `Print the stat progression table for one building kind, or for every
buildable kind when no kind is given. Kinds: townhall, gold_collector,
elixir_collector, gold_storage, elixir_storage, defense, wall.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := c.stats()
			if err != nil {
				return err
			}

			kinds := types.BuildableKinds()
			if len(args) == 1 {
				kind, err := types.ParseBuildingKind(args[0])
				if err != nil {
					return err
				}
				kinds = []types.BuildingKind{kind}
			}

			out := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)
			for _, kind := range kinds {
				title.Fprintf(out, "%s (%s, footprint %dx%d)\n",
					kind.DisplayName(), kind, types.FootprintFor(kind).Width, types.FootprintFor(kind).Height)
				if err := renderStatsTable(out, stats, kind); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// statColumns 返回种类相关的列名
func statColumns(kind types.BuildingKind) []string {
	switch kind.Tag {
	case types.KindCollector:
		return []string{"Level", "Health", "Production/s"}
	case types.KindStorage:
		return []string{"Level", "Health", "Capacity"}
	case types.KindDefense:
		return []string{"Level", "Health", "Damage", "Range", "Attack/s"}
	case types.KindWall:
		return []string{"Level", "Health", "Durability"}
	default:
		return []string{"Level", "Health"}
	}
}

// statRow 格式化一行属性
func statRow(kind types.BuildingKind, level int, s config.StatSet) []string {
	row := []string{strconv.Itoa(level), formatFloat(s.Health)}
	switch kind.Tag {
	case types.KindCollector:
		row = append(row, formatFloat(s.ProductionRate))
	case types.KindStorage:
		row = append(row, strconv.Itoa(s.Capacity))
	case types.KindDefense:
		row = append(row, formatFloat(s.Damage), formatFloat(s.Range), formatFloat(s.AttackSpeed))
	case types.KindWall:
		row = append(row, formatFloat(s.Durability))
	}
	return row
}

func renderStatsTable(out io.Writer, stats *config.BuildingStatsConfig, kind types.BuildingKind) error {
	table := tablewriter.NewTable(out, tablewriter.WithHeader(statColumns(kind)))
	for level := config.MinLevel; level <= config.MaxLevel; level++ {
		if err := table.Append(statRow(kind, level, stats.StatsFor(kind, level))); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
