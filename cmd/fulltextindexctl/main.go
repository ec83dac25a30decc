package main

import (
	"os"

	"github.com/vippsas/fulltextindex/cmd/fulltextindexctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
