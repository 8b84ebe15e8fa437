package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blfkit/titles"
)

func init() {
	rootCmd.AddCommand(
		newConvertCmd("build-blfs <config-dir> <output-dir>",
			"Encode every variant in a config directory",
			`The build-blfs command encodes each JSON variant under the config
directory into the BLF files the selected build loads. Halo 3 release builds
also get an RSA map manifest from rsa_signatures/.

Example:
  blfctl build-blfs config/ out/ --title "Halo 3" --build 12070.08.09.05.2031.halo3_ship`,
			titles.Converter.BuildBLFs),
		newConvertCmd("build-config <blf-dir> <config-dir>",
			"Decode a directory of BLF files into a config directory",
			`The build-config command is the inverse of build-blfs.

Example:
  blfctl build-config out/ config/ --title "Halo: Reach" --build 11860.10.07.24.0147.omaha_relea`,
			titles.Converter.BuildConfig),
		newConvertCmd("import-rsa-signatures <config-dir> <signatures-dir>",
			"Copy 256-byte RSA map signatures into a config directory",
			`The import-rsa-signatures command copies every .bin signature into
config/rsa_signatures/. Builds without a map manifest reject it.

Example:
  blfctl import-rsa-signatures config/ dumps/signatures/`,
			titles.Converter.ImportRSASignatures),
		newConvertCmd("import-variant <json> <blf>",
			"Encode one JSON variant into a BLF file",
			`Example:
  blfctl import-variant config/map_variants/guardian.json guardian.bin`,
			titles.Converter.ImportVariant),
		newConvertCmd("export-variant <blf> <json>",
			"Decode one BLF variant into JSON",
			`Example:
  blfctl export-variant guardian.bin guardian.json`,
			titles.Converter.ExportVariant),
	)
}

func newConvertCmd(use, short, long string, op func(titles.Converter, string, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Name(), args, op)
		},
	}
}

func runConvert(name string, args []string, op func(titles.Converter, string, string) error) error {
	c, err := converter()
	if err != nil {
		return err
	}
	printVerbose("%s: %s -> %s (%s)\n", name, args[0], args[1], c.Key())
	if err := op(c, args[0], args[1]); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]any{"command": name, "source": args[0], "destination": args[1], "key": c.Key()})
	}
	printInfo("%s: wrote %s\n", name, args[1])
	return nil
}
