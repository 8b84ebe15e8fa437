package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blfkit/titles/registry"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "titles",
		Short: "List supported titles and builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTitles()
		},
	})
}

func runTitles() error {
	keys := registry.All()
	if jsonOut {
		return printJSON(keys)
	}
	for _, k := range keys {
		printInfo("%-12s %s\n", k.Title, k.Build)
	}
	return nil
}
