package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsDirectory string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the index from --dir and print its word/record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDirectory == "" {
			_ = cmd.Help()
			return errors.New("need to specify --dir")
		}

		idx, cfg, err := openIndex()
		if err != nil {
			return err
		}

		records, err := scanRecords(statsDirectory, cfg.Key)
		if err != nil {
			return err
		}

		words, err := idx.Build(context.Background(), records, nil)
		if err != nil {
			return err
		}

		fmt.Printf("records: %d\n", len(records))
		fmt.Printf("distinct words: %d\n", len(words))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsDirectory, "dir", "", "directory of *.json record files")
	rootCmd.AddCommand(statsCmd)
}
