package titles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/joshuapare/blfkit/internal/writer"
	"github.com/joshuapare/blfkit/pkg/types"
)

// Directory and file names inside config and output trees.
const (
	MapVariantsDir   = "map_variants"
	GameVariantsDir  = "game_variants"
	RSASignaturesDir = "rsa_signatures"
	ManifestFile     = "manifest.jsonc"
	RSAManifestFile  = "rsa_manifest.bin"

	JSONExt = ".json"
	BLFExt  = ".bin"
)

// ErrConfig indicates a config document that could not be parsed.
var ErrConfig = &types.Error{Kind: types.ErrKindDomain, Msg: "titles: invalid config"}

// Manifest is the optional manifest.jsonc of a config directory.
type Manifest struct {
	// Variants lists variant names in build order.
	Variants []string `json:"variants"`
}

// LoadManifest reads configPath/manifest.jsonc. A missing manifest yields the
// zero Manifest.
func LoadManifest(configPath string) (Manifest, error) {
	var m Manifest
	err := ReadJSON(filepath.Join(configPath, ManifestFile), &m)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	return m, err
}

// ReadJSON decodes the JSON-with-comments document at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrConfig, err)
	}
	return nil
}

// EncodeJSON commits v to sink as indented JSON with a trailing newline.
func EncodeJSON(sink writer.Sink, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return sink.Commit(append(data, '\n'))
}

// WriteJSON writes v as indented JSON to path atomically.
func WriteJSON(path string, v any) error {
	if err := EncodeJSON(&writer.FileWriter{Path: path}, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte) error {
	return (&writer.FileWriter{Path: path}).Commit(data)
}

// List returns the base names of the files in dir ending in ext. Names in
// order come first, in that order; the rest follow sorted. A missing
// directory yields no names. A name in order without a file is an error.
func List(dir, ext string, order []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)

	out := make([]string, 0, len(names))
	for _, name := range order {
		if _, ok := slices.BinarySearch(names, name); !ok {
			return nil, fmt.Errorf("manifest names %q but %s has no %s%s: %w", name, dir, name, ext, ErrConfig)
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out, nil
}
