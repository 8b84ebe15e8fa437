package blf

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/verify"
	"github.com/joshuapare/blfkit/internal/mmfile"
)

// ValidateOptions controls Validate.
type ValidateOptions struct {
	// SkipAuthentication checks structure only and leaves the trailer's
	// checksum or hash unverified.
	SkipAuthentication bool
}

// Validate checks the structural invariants of the file at path and, unless
// disabled, recomputes its trailer. A nil opts uses the defaults.
func Validate(path string, opts *ValidateOptions) error {
	if opts == nil {
		opts = &ValidateOptions{}
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	if err := verify.AllInvariants(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if opts.SkipAuthentication {
		return nil
	}
	if err := verify.Authentication(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
