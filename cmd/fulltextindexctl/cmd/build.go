package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"

	"github.com/vippsas/fulltextindex"
)

var buildCmd = &cobra.Command{
	Use:   "build <directory>",
	Short: "Index every *.json record file under directory and print the resulting word count",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <directory>")
		}
		directory := args[0]

		idx, cfg, err := openIndex()
		if err != nil {
			return err
		}

		records, err := scanRecords(directory, cfg.Key)
		if err != nil {
			return err
		}

		words, err := idx.Build(context.Background(), records, nil)
		if err != nil {
			return err
		}

		fmt.Printf("indexed %d records, %d distinct words\n", len(records), len(words))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// scanRecords walks directory for *.json files, each holding one record
// object, and assigns each a fresh pointer keyed by its relative path --
// mirroring the teacher's filepath.Walk-based directory scan idiom
// (cli/cmd/dep.go, cli/cmd/find.go).
func scanRecords(directory, key string) ([]fulltextindex.RawRecord, error) {
	var records []fulltextindex.RawRecord

	err := filepath.Walk(directory, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		var record map[string]any
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("fulltextindexctl: parsing %s: %w", p, err)
		}

		rel, err := filepath.Rel(directory, p)
		if err != nil {
			rel = p
		}

		pointer, err := uuid.NewV4()
		if err != nil {
			return err
		}

		text, _ := record[key].(string)
		records = append(records, fulltextindex.RawRecord{
			Pointer: pointer,
			Path:    rel,
			Value:   text,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
