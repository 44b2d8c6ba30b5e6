package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector handles metrics collection for a debug emitter.
type Collector struct {
	// Message counts by topic level
	messagesByLevel sync.Map // map[int]*atomic.Uint64
	suppressed      uint64

	bytesWritten uint64

	// Error metrics
	writeErrors uint64
	flushErrors uint64

	// Performance metrics
	writeCount     uint64
	totalWriteTime int64 // nanoseconds
	maxWriteTime   int64 // nanoseconds
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Metrics contains runtime metrics for an emitter.
type Metrics struct {
	MessagesWritten map[int]uint64 `json:"messages_written"`
	Suppressed      uint64         `json:"suppressed"`
	BytesWritten    uint64         `json:"bytes_written"`

	WriteErrors uint64 `json:"write_errors"`
	FlushErrors uint64 `json:"flush_errors"`

	AverageWriteTime time.Duration `json:"average_write_time"`
	MaxWriteTime     time.Duration `json:"max_write_time"`
}

// Total returns the number of messages written across all levels.
func (m Metrics) Total() uint64 {
	var total uint64
	for _, n := range m.MessagesWritten {
		total += n
	}
	return total
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Metrics {
	metrics := Metrics{
		MessagesWritten: make(map[int]uint64),
		Suppressed:      atomic.LoadUint64(&c.suppressed),
		BytesWritten:    atomic.LoadUint64(&c.bytesWritten),
		WriteErrors:     atomic.LoadUint64(&c.writeErrors),
		FlushErrors:     atomic.LoadUint64(&c.flushErrors),
	}

	c.messagesByLevel.Range(func(key, value interface{}) bool {
		level := key.(int)
		count := value.(*atomic.Uint64).Load()
		if count > 0 {
			metrics.MessagesWritten[level] = count
		}
		return true
	})

	writeCount := atomic.LoadUint64(&c.writeCount)
	if writeCount > 0 {
		metrics.AverageWriteTime = time.Duration(atomic.LoadInt64(&c.totalWriteTime)) / time.Duration(writeCount)
	}
	metrics.MaxWriteTime = time.Duration(atomic.LoadInt64(&c.maxWriteTime))

	return metrics
}

// Reset resets all counters.
func (c *Collector) Reset() {
	c.messagesByLevel.Range(func(key, value interface{}) bool {
		value.(*atomic.Uint64).Store(0)
		return true
	})

	atomic.StoreUint64(&c.suppressed, 0)
	atomic.StoreUint64(&c.bytesWritten, 0)
	atomic.StoreUint64(&c.writeErrors, 0)
	atomic.StoreUint64(&c.flushErrors, 0)
	atomic.StoreUint64(&c.writeCount, 0)
	atomic.StoreInt64(&c.totalWriteTime, 0)
	atomic.StoreInt64(&c.maxWriteTime, 0)
}

// TrackWritten increments the message counter for a topic level.
func (c *Collector) TrackWritten(level int) {
	val, _ := c.messagesByLevel.LoadOrStore(level, &atomic.Uint64{})
	val.(*atomic.Uint64).Add(1)
}

// TrackSuppressed counts a message filtered out by the topic mask.
func (c *Collector) TrackSuppressed() {
	atomic.AddUint64(&c.suppressed, 1)
}

// TrackWrite records write metrics.
func (c *Collector) TrackWrite(bytes int, duration time.Duration) {
	atomic.AddUint64(&c.bytesWritten, uint64(bytes))
	atomic.AddUint64(&c.writeCount, 1)
	atomic.AddInt64(&c.totalWriteTime, int64(duration))

	for {
		oldMax := atomic.LoadInt64(&c.maxWriteTime)
		if int64(duration) <= oldMax {
			break
		}
		if atomic.CompareAndSwapInt64(&c.maxWriteTime, oldMax, int64(duration)) {
			break
		}
	}
}

// TrackWriteError counts a failed sink write.
func (c *Collector) TrackWriteError() {
	atomic.AddUint64(&c.writeErrors, 1)
}

// TrackFlushError counts a failed sink flush.
func (c *Collector) TrackFlushError() {
	atomic.AddUint64(&c.flushErrors, 1)
}

// Written returns the number of messages written for a topic level.
func (c *Collector) Written(level int) uint64 {
	if val, ok := c.messagesByLevel.Load(level); ok {
		return val.(*atomic.Uint64).Load()
	}
	return 0
}
