package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/vippsas/fulltextindex/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the loaded index configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Println(repr.String(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
