package writer

// MemWriter captures bytes in memory. Each write replaces the previous
// buffer.
type MemWriter struct {
	Buf    []byte
	Writes int
}

// Commit stores a copy of buf.
func (w *MemWriter) Commit(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	w.Writes++
	return nil
}
