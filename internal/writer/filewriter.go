package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode given to files and created parent directories when
// FileWriter.Perm is zero.
const DefaultPerm os.FileMode = 0o644

// FileWriter writes bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
	Perm os.FileMode
}

// Commit writes buf to the configured path via temp file + rename. Missing
// parent directories are created.
func (w *FileWriter) Commit(buf []byte) error {
	perm := w.Perm
	if perm == 0 {
		perm = DefaultPerm
	}
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, perm|0o111); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".blfkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
