package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blfkit/pkg/blf"
)

var validateStructureOnly bool

func init() {
	cmd := newValidateCmd()
	cmd.Flags().BoolVar(&validateStructureOnly, "structure-only", false, "Skip checksum and hash verification")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate BLF structure and trailer integrity",
		Long: `The validate command checks that a BLF file starts with a valid _blf
chunk, that its chunk chain ends exactly on an _eof trailer recording the
right file size, and that the trailer's CRC-32 or SHA-1 matches.

Example:
  blfctl validate slayer.bin
  blfctl validate slayer.bin --structure-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	path := args[0]
	printVerbose("Validating: %s\n", path)

	err := blf.Validate(path, &blf.ValidateOptions{SkipAuthentication: validateStructureOnly})
	if jsonOut {
		result := map[string]any{"file": path, "valid": err == nil}
		if err != nil {
			result["error"] = err.Error()
		}
		if jerr := printJSON(result); jerr != nil {
			return jerr
		}
		return err
	}
	if err != nil {
		return err
	}
	printInfo("✓ %s is valid\n", path)
	return nil
}
