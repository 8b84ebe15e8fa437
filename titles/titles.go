package titles

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/blfkit/pkg/types"
)

// Key identifies one build of one title.
type Key struct {
	Title string `json:"title"`
	Build string `json:"build"`
}

func (k Key) String() string { return fmt.Sprintf("%s (%s)", k.Title, k.Build) }

// Converter moves variants between a config directory and the files a build
// loads.
type Converter interface {
	Key() Key
	// BuildBLFs encodes every config document under configPath into
	// outputPath.
	BuildBLFs(configPath, outputPath string) error
	// BuildConfig decodes every file under blfPath into config documents
	// under configPath.
	BuildConfig(blfPath, configPath string) error
	// ImportRSASignatures copies map signatures from signaturesPath into the
	// config directory.
	ImportRSASignatures(configPath, signaturesPath string) error
	// ImportVariant encodes the single JSON document at jsonPath to blfPath.
	ImportVariant(jsonPath, blfPath string) error
	// ExportVariant decodes the single file at blfPath to jsonPath.
	ExportVariant(blfPath, jsonPath string) error
}

// Options configures a Converter.
type Options struct {
	// Logger receives a Debug record for every file read or written.
	// Nil discards.
	Logger *slog.Logger

	// CompressStrings deflates game variant string tables on write.
	CompressStrings bool
}

// Log returns the configured logger or one that discards.
func (o Options) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// ErrNotSupported is returned by converter operations a build has no use
// for, such as RSA signatures on builds without a map manifest.
var ErrNotSupported = &types.Error{Kind: types.ErrKindUnsupported, Msg: "titles: operation not supported by this build", Err: types.ErrUnsupported}

// Unsupported returns ErrNotSupported annotated with the operation and key.
func Unsupported(k Key, op string) error {
	return fmt.Errorf("%s: %s: %w", k, op, ErrNotSupported)
}
