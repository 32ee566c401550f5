package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"starmap/internal/shared/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate a galaxy and save it without serving",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GlobalConfig
		key := keyFromArgs(cfg, args)
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp(cmd.Context(), cfg, slog.Default())
		if err != nil {
			return err
		}
		defer a.close()

		return runGenerate(cmd, a, key, force)
	},
}

func runGenerate(cmd *cobra.Command, a *app, key string, force bool) error {
	ctx := cmd.Context()

	exists, err := a.repo.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (pass --force to overwrite)", key)
	}

	g, err := a.service.CreateGalaxy(ctx, a.params())
	if err != nil {
		return err
	}
	if err := a.repo.SaveGalaxy(ctx, key, g); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d systems (%d scanned) into %s\n", g.Len(), g.ScannedCount(), key)
	return nil
}

func init() {
	generateCmd.Flags().Bool("force", false, "overwrite an existing galaxy")
	rootCmd.AddCommand(generateCmd)
}
