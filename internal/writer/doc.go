// Package writer exposes sinks for encoded BLF files and their JSON
// companions.
package writer

// Sink receives a complete encoded file.
type Sink interface {
	Commit(buf []byte) error
}

var (
	_ Sink = (*FileWriter)(nil)
	_ Sink = (*MemWriter)(nil)
)
