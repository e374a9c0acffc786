package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// inTempDir runs the test from an empty directory so logs/ never leaks into the tree
func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
}

func TestLoggingDiscardedWithoutDebug(t *testing.T) {
	inTempDir(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("No log file should be opened without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected discarded output, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Log directory must not be created without debug")
	}
}

func TestLoggingWritesSessionPrefixedLines(t *testing.T) {
	inTempDir(t)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected a log file with debug")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("Logs must stay off the terminal")
	}

	log.Printf("pinball: bumper %d scored", 2)
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "pinball: bumper 2 scored") {
		t.Errorf("Message missing from %q", line)
	}
	if !strings.HasPrefix(line, "[") || strings.Index(line, "] ") != 9 {
		t.Errorf("Expected an 8 character session prefix, got %q", line)
	}
}

func TestLoggingRotatesOversizedFile(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	current := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(current, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected a log file")
	}
	defer f.Close()

	rotated, err := filepath.Glob(filepath.Join(logDir, "pincraft-*.log"))
	if err != nil || len(rotated) != 1 {
		t.Fatalf("Expected one rotated file, got %v (%v)", rotated, err)
	}
	if info, err := os.Stat(current); err != nil || info.Size() > maxLogSize {
		t.Errorf("Fresh log should replace the oversized one: %v %v", info, err)
	}
}
