package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/vippsas/fulltextindex"
)

var queryDirectory string

var queryCmd = &cobra.Command{
	Use:   "query <contains|!contains> <query-string>",
	Short: "Build the index from --dir and run one query against it, printing matches and hints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			_ = cmd.Help()
			return errors.New("need to specify arguments <contains|!contains> <query-string>")
		}

		var op fulltextindex.Operator
		switch args[0] {
		case "contains":
			op = fulltextindex.OpContains
		case "!contains":
			op = fulltextindex.OpNotContains
		default:
			return fmt.Errorf("fulltextindexctl: unknown operator %q, want contains or !contains", args[0])
		}

		idx, cfg, err := openIndex()
		if err != nil {
			return err
		}

		if queryDirectory != "" {
			records, err := scanRecords(queryDirectory, cfg.Key)
			if err != nil {
				return err
			}
			if _, err := idx.Build(context.Background(), records, nil); err != nil {
				return err
			}
		}

		result, err := idx.Query(context.Background(), op, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("%d matches:\n", len(result.Entries))
		for _, e := range result.Entries {
			fmt.Println(" ", e.Path)
		}
		if len(result.Hints) > 0 {
			fmt.Println("hints:")
			fmt.Println(repr.String(result.Hints))
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryDirectory, "dir", "", "directory of *.json record files to build the index from before querying")
	rootCmd.AddCommand(queryCmd)
}
