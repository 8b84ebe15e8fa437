package reference

import (
	"fmt"
	"slices"
)

type slot struct {
	name    string
	present bool
	wanted  bool
}

func checkPayload(kind fmt.Stringer, slots ...slot) error {
	for _, s := range slots {
		switch {
		case s.wanted && !s.present:
			return fmt.Errorf("%s: %s: %w", kind, s.name, ErrMissingPayload)
		case !s.wanted && s.present:
			return fmt.Errorf("%s: %s: %w", kind, s.name, ErrUnexpectedPayload)
		}
	}
	return nil
}

func checkTarget(kind fmt.Stringer, t *Target, allowed ...TargetKind) error {
	if t == nil {
		return nil
	}
	if !slices.Contains(allowed, t.Kind) {
		return fmt.Errorf("%s on a %s target: %w", kind, t.Kind, ErrTargetKind)
	}
	return t.check()
}

func intPtr(v int) *int { return &v }
