// Package titles defines the per-build conversion surface shared by every
// supported title.
//
// A Converter knows the chunk layout, bit order, reference layout and trailer
// kind of one (title, build) pair. It moves variants between a human-editable
// config directory and the binary files the game loads:
//
//	<config>/map_variants/<name>.json
//	<config>/game_variants/<name>.json
//	<config>/rsa_signatures/<name>.bin
//	<config>/manifest.jsonc
//
//	<output>/map_variants/<name>.bin
//	<output>/game_variants/<name>.bin
//	<output>/rsa_manifest.bin
//
// Config files are read as JSON with comments and trailing commas. The
// optional manifest lists variant names in build order; variants it does not
// name follow in lexical order.
package titles
