package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blfkit/pkg/blf"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "List the chunks of a BLF file",
		Long: `The info command walks a BLF file's chunk headers and reports each
chunk's signature, version, size and offset, plus the trailer kind.

Example:
  blfctl info guardian.bin
  blfctl info guardian.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Inspecting: %s\n", path)

	info, err := blf.Inspect(path)
	if err != nil && info == nil {
		return fmt.Errorf("failed to inspect file: %w", err)
	}

	if jsonOut {
		if jerr := printJSON(info); jerr != nil {
			return jerr
		}
		return err
	}

	printInfo("\nFile Information:\n")
	printInfo("  File: %s\n", info.Path)
	printInfo("  Size: %d bytes\n", info.Size)
	if info.Name != "" {
		printInfo("  Name: %s\n", info.Name)
	}
	if info.Trailer != "" {
		printInfo("  Trailer: %s\n", info.Trailer)
	}
	printInfo("\nChunks:\n")
	for _, c := range info.Chunks {
		printInfo("  0x%06X  %s  %-5s  %d bytes\n", c.Offset, c.Signature, c.Version, c.Size)
	}
	return err
}
