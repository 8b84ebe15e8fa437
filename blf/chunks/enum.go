package chunks

import (
	"fmt"
	"strings"
)

// enum backs the small named constants that appear in variant JSON.
type enum []string

func (e enum) name(v uint8) string {
	if int(v) < len(e) {
		return e[v]
	}
	return fmt.Sprintf("%d", v)
}

func (e enum) parse(what string, b []byte) (uint8, error) {
	s := string(b)
	for i, n := range e {
		if strings.EqualFold(n, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", what, s, ErrUnknownName)
}

func (e enum) valid(v uint8) bool { return int(v) < len(e) }
