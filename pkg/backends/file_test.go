package backends_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/pkg/backends"
	"github.com/wayneeseguin/debugkit/pkg/debugkit"
	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// TestFileSink_New tests file sink creation
func TestFileSink_New(t *testing.T) {
	tests := []struct {
		name     string
		pathFunc func(t *testing.T, tempDir string) string
	}{
		{
			name: "successful creation",
			pathFunc: func(t *testing.T, tempDir string) string {
				return filepath.Join(tempDir, "debug.log")
			},
		},
		{
			name: "create nested directory",
			pathFunc: func(t *testing.T, tempDir string) string {
				return filepath.Join(tempDir, "subdir", "nested", "debug.log")
			},
		},
		{
			name: "existing file",
			pathFunc: func(t *testing.T, tempDir string) string {
				path := filepath.Join(tempDir, "existing.log")
				if err := os.WriteFile(path, []byte("existing content\n"), 0644); err != nil {
					t.Fatalf("Failed to seed file: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.pathFunc(t, t.TempDir())

			sink, err := backends.NewFileSink(path)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer sink.Close()

			if sink.Path() != filepath.Clean(path) {
				t.Errorf("Expected path %q, got %q", filepath.Clean(path), sink.Path())
			}
			if _, err := os.Stat(sink.Path()); os.IsNotExist(err) {
				t.Error("File should have been created")
			}
		})
	}
}

// TestFileSink_DirectoryAsFile tests that a directory path is rejected
func TestFileSink_DirectoryAsFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := backends.NewFileSink(dir); err == nil {
		t.Error("Expected error when using directory as file path")
	}
}

// TestFileSink_Write tests that writes are appended unbuffered
func TestFileSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "write.log")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	sink, err := backends.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to create file sink: %v", err)
	}
	defer sink.Close()

	n, err := sink.Write([]byte("second\n"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 7 {
		t.Errorf("Expected 7 bytes written, got %d", n)
	}

	// Visible without a flush
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "first\nsecond\n" {
		t.Errorf("Unexpected content %q", content)
	}

	stats := sink.Stats()
	if stats.WriteCount != 1 || stats.BytesWritten != 7 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.LastWrite.IsZero() {
		t.Error("LastWrite should be set")
	}
}

// TestFileSink_FlushAndSync tests flush and sync
func TestFileSink_FlushAndSync(t *testing.T) {
	sink, err := backends.NewFileSink(filepath.Join(t.TempDir(), "sync.log"))
	if err != nil {
		t.Fatalf("Failed to create file sink: %v", err)
	}
	defer sink.Close()

	if _, err := sink.Write([]byte("data\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
	if err := sink.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}
}

// TestFileSink_Close tests close behavior
func TestFileSink_Close(t *testing.T) {
	sink, err := backends.NewFileSink(filepath.Join(t.TempDir(), "close.log"))
	if err != nil {
		t.Fatalf("Failed to create file sink: %v", err)
	}

	if err := sink.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got: %v", err)
	}

	if _, err := sink.Write([]byte("late\n")); !errors.Is(err, backends.ErrSinkClosed) {
		t.Errorf("Expected ErrSinkClosed, got %v", err)
	}
	if err := sink.Sync(); !errors.Is(err, backends.ErrSinkClosed) {
		t.Errorf("Expected ErrSinkClosed from Sync, got %v", err)
	}
}

// TestFileSink_SharedFile tests two sinks appending to the same file
func TestFileSink_SharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.log")

	sink1, err := backends.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to create first file sink: %v", err)
	}
	defer sink1.Close()

	sink2, err := backends.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to create second file sink: %v", err)
	}
	defer sink2.Close()

	if _, err := sink1.Write([]byte("one\n")); err != nil {
		t.Errorf("Sink 1 write failed: %v", err)
	}
	if _, err := sink2.Write([]byte("two\n")); err != nil {
		t.Errorf("Sink 2 write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "one\ntwo\n" {
		t.Errorf("Unexpected content %q", content)
	}
}

// TestFileSink_ConcurrentWrites tests concurrent writing to a file sink
func TestFileSink_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.log")

	sink, err := backends.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to create file sink: %v", err)
	}
	defer sink.Close()

	const numGoroutines = 10
	const messagesPerGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				msg := fmt.Sprintf("Message from goroutine %d, iteration %d\n", id, j)
				if _, err := sink.Write([]byte(msg)); err != nil {
					t.Errorf("Write error in goroutine %d: %v", id, err)
				}
			}
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file after concurrent writes: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	expectedLines := numGoroutines * messagesPerGoroutine
	if len(lines) != expectedLines {
		t.Errorf("Expected %d lines, got %d", expectedLines, len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "Message from goroutine ") {
			t.Fatalf("Interleaved line %q", line)
		}
	}
}

// TestFileSink_WithEmitter tests a file sink behind an emitter
func TestFileSink_WithEmitter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emitter.log")

	sink, err := backends.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to create file sink: %v", err)
	}
	defer sink.Close()

	errTopic := topics.MustLabeled(2, "error")
	info := topics.MustLabeled(0, "info")
	e := debugkit.New(sink)

	e.Dbg(info, topics.SetOf(errTopic), "Hello World!")
	e.Dbg(errTopic, topics.SetOf(errTopic), "Bang!")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "debug-error: Bang!\n" {
		t.Errorf("Unexpected content %q", content)
	}
	if got := e.Metrics().FlushErrors; got != 0 {
		t.Errorf("Expected no flush errors, got %d", got)
	}
}
