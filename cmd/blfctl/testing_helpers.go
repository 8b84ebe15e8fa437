package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/joshuapare/blfkit/internal/config"
)

// resetFlags restores global flag state between tests
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	titleFlag, buildFlag, configPath = "", "", ""
	validateStructureOnly = false
	settings = config.Default()
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}
