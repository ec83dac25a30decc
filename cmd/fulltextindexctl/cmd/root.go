// Package cmd implements the fulltextindexctl command line tool: build an
// index from a directory of JSON record files, query it, and inspect its
// configuration.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "fulltextindexctl",
		Short:        "fulltextindexctl",
		SilenceUsage: true,
		Long:         `CLI for building and querying a full-text secondary index standalone, outside of its host database.`,
	}

	configPath string
	log        = logrus.StandardLogger()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "fulltextindex.yaml", "path to index configuration YAML")
	return rootCmd.Execute()
}
