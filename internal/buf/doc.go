// Package buf contains bounds-checked byte cursors used by the byte-aligned
// chunk bodies (start-of-file, content header, trailers). Every read is checked
// against the remaining length and reports types.ErrTruncated instead of
// panicking, so hostile input can only ever produce an error.
package buf
