package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"starmap/internal/auth"
	"starmap/internal/shared/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for the save endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GlobalConfig
		operator, _ := cmd.Flags().GetString("operator")

		token, err := auth.GenerateToken(cfg.Auth.JWTSecret, operator, cfg.Auth.TokenExpiration)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("operator", "operator", "name recorded in the token")
	rootCmd.AddCommand(tokenCmd)
}
