package backends

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrSinkClosed is returned when writing to a closed sink
var ErrSinkClosed = errors.New("sink is closed")

// FileSink appends messages to a file. Writes are unbuffered and each one
// holds an exclusive flock so several processes can share the file.
type FileSink struct {
	mu    sync.Mutex
	file  *os.File
	lock  *flock.Flock
	path  string
	stats SinkStats
}

// NewFileSink opens path for appending, creating it and its directory if needed.
//
// Parameters:
//   - path: The file to append to
//
// Returns:
//   - *FileSink: The opened sink
//   - error: If the directory or file cannot be created
func NewFileSink(path string) (*FileSink, error) {
	cleanPath := filepath.Clean(path)

	// #nosec G301 - debug output directories are shared with other processes
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, errors.Wrap(err, "create directory")
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // #nosec G302
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}

	return &FileSink{
		file:  file,
		lock:  flock.New(cleanPath),
		path:  cleanPath,
		stats: SinkStats{Destination: cleanPath},
	}, nil
}

// Write appends one message to the file while holding the file lock
func (fs *FileSink) Write(p []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.file == nil {
		return 0, ErrSinkClosed
	}

	if err := fs.lock.Lock(); err != nil {
		fs.stats.ErrorCount++
		return 0, errors.Wrap(err, "acquire lock")
	}
	defer func() {
		_ = fs.lock.Unlock() // Best effort unlock
	}()

	n, err := fs.file.Write(p)
	if err != nil {
		fs.stats.ErrorCount++
		return n, errors.Wrap(err, "write file")
	}

	fs.stats.WriteCount++
	fs.stats.BytesWritten += uint64(n)
	fs.stats.LastWrite = time.Now()
	return n, nil
}

// Flush is a no-op: writes go straight to the file
func (fs *FileSink) Flush() error {
	return nil
}

// Sync commits the file contents to stable storage
func (fs *FileSink) Sync() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.file == nil {
		return ErrSinkClosed
	}
	return fs.file.Sync()
}

// Close closes the file. Closing twice is a no-op.
func (fs *FileSink) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.file == nil {
		return nil
	}

	err := fs.file.Close()
	fs.file = nil
	if err != nil {
		return errors.Wrap(err, "close file")
	}
	return nil
}

// Path returns the file path
func (fs *FileSink) Path() string {
	return fs.path
}

// Stats returns sink statistics
func (fs *FileSink) Stats() SinkStats {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.stats
}
