package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKindAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("mvar: %w", &Error{Kind: ErrKindStructural, Msg: "truncated data", Err: errors.New("eof")})
	require.ErrorIs(t, wrapped, ErrTruncated)
	assert.NotErrorIs(t, wrapped, ErrChunkNotFound)

	// same message, different kind
	other := &Error{Kind: ErrKindEncoding, Msg: "truncated data"}
	assert.NotErrorIs(t, other, ErrTruncated)
}

func TestErrorString(t *testing.T) {
	e := Errorf(ErrKindIntegrity, "crc32 mismatch", errors.New("got 0x1"))
	assert.Equal(t, "crc32 mismatch: got 0x1", e.Error())
	assert.Equal(t, "truncated data", ErrTruncated.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("eof: %w", &Error{Kind: ErrKindIntegrity, Msg: "bad", Err: ErrTruncated})
	k, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindIntegrity, k)
	assert.True(t, IsKind(err, ErrKindIntegrity))
	assert.False(t, IsKind(err, ErrKindStructural))

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrKindString(t *testing.T) {
	tests := map[ErrKind]string{
		ErrKindStructural:  "structural",
		ErrKindIntegrity:   "integrity",
		ErrKindEncoding:    "encoding",
		ErrKindDomain:      "domain",
		ErrKindUnsupported: "unsupported",
		ErrKindState:       "state",
		ErrKind(99):        "unknown",
	}
	for k, want := range tests {
		assert.Equal(t, want, k.String())
	}
}
