package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/simulation"
	"github.com/decker502/coclike/pkg/systems"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// errLayoutRejected 布局中至少一个建筑被拒绝
var errLayoutRejected = errors.New("layout has rejected buildings")

func newLayoutCmd(c *cli) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Check a scripted base layout for overlaps and out-of-bounds buildings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			err := checkLayout(c, out, path)
			if !watch {
				return err
			}
			if err != nil && !errors.Is(err, errLayoutRejected) {
				return err
			}
			return watchLayout(c, out, path)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check the layout whenever the file changes")
	return cmd
}

// checkLayout 加载布局文件并逐条报告生成结果
func checkLayout(c *cli, out io.Writer, path string) error {
	base, err := config.LoadBaseConfig(path)
	if err != nil {
		return err
	}
	stats, err := c.stats()
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

	results := sim.InitialLayout()
	if err := renderLayout(out, results); err != nil {
		return err
	}

	accepted := simulation.CountAccepted(results)
	if accepted < len(results) {
		color.New(color.FgRed, color.Bold).Fprintf(out, "%d of %d buildings rejected\n", len(results)-accepted, len(results))
		return errLayoutRejected
	}
	color.New(color.FgGreen, color.Bold).Fprintf(out, "all %d buildings placed\n", len(results))
	return nil
}

func renderLayout(out io.Writer, results []simulation.LayoutResult) error {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"#", "Kind", "Level", "Position", "Result"}),
	)
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	for i, r := range results {
		status := bad("rejected")
		if r.Accepted {
			status = ok("placed #" + strconv.FormatUint(uint64(r.ID), 10))
		}
		row := []string{
			strconv.Itoa(i + 1),
			r.Entry.Kind.String(),
			strconv.Itoa(config.ClampLevel(r.Entry.Level)),
			fmt.Sprintf("(%d,%d)", r.Entry.X, r.Entry.Y),
			status,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// watchLayout 文件变化时重新检查，直到收到中断信号
func watchLayout(c *cli, out io.Writer, path string) error {
	var mu sync.Mutex

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		c.logger.Debug("layout file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		fmt.Fprintln(out)
		color.New(color.FgCyan).Fprintf(out, "%s changed, re-checking\n", e.Name)
		if err := checkLayout(c, out, path); err != nil && !errors.Is(err, errLayoutRejected) {
			color.New(color.FgRed).Fprintf(out, "error: %v\n", err)
		}
	})
	v.WatchConfig()

	color.New(color.FgCyan).Fprintf(out, "watching %s, press Ctrl+C to stop\n", path)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	<-sig
	return nil
}
