package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"starmap/internal/shared/config"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path> <index>",
	Short: "Print the summary of one star system from a saved galaxy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid system index %q: %w", args[1], err)
		}

		a, err := newApp(cmd.Context(), config.GlobalConfig, slog.Default())
		if err != nil {
			return err
		}
		defer a.close()

		return runInspect(cmd, a, args[0], index)
	},
}

func runInspect(cmd *cobra.Command, a *app, key string, index int) error {
	g, err := a.repo.LoadGalaxy(cmd.Context(), key)
	if err != nil {
		return err
	}
	if !g.InRange(index) {
		return fmt.Errorf("system %d out of range, %s has %d systems", index, key, g.Len())
	}

	s := g.Systems[index]
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.Describe())
	fmt.Fprintf(out, "Explored: %t\nConnections: %v\n", s.Explored, s.Connections)
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
