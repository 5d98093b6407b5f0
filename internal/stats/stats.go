// Package stats tracks timing and throughput for build runs.
// It captures per-phase durations, input/output volume and memory usage so
// slow builds can be diagnosed with --stats.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Stats holds performance metrics for one build.
type Stats struct {
	// Timing for each phase
	ScanStart   time.Time
	ScanEnd     time.Time
	RenderStart time.Time
	RenderEnd   time.Time

	// Counts
	FilesFound    int
	FilesRendered int
	BytesIn       int64
	BytesOut      int64

	// Memory stats (captured at end)
	HeapAlloc  uint64
	TotalAlloc uint64
	NumGC      uint32
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartScan marks the beginning of the file discovery phase.
func (s *Stats) StartScan() {
	s.ScanStart = time.Now()
}

// EndScan marks the end of the file discovery phase.
func (s *Stats) EndScan(filesFound int) {
	s.ScanEnd = time.Now()
	s.FilesFound = filesFound
}

// StartRender marks the beginning of the render phase.
func (s *Stats) StartRender() {
	s.RenderStart = time.Now()
}

// AddFile records one rendered file.
func (s *Stats) AddFile(bytesIn, bytesOut int) {
	s.FilesRendered++
	s.BytesIn += int64(bytesIn)
	s.BytesOut += int64(bytesOut)
}

// EndRender marks the end of the render phase and captures memory stats.
func (s *Stats) EndRender() {
	s.RenderEnd = time.Now()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
}

// ScanDuration returns the time spent discovering files.
func (s *Stats) ScanDuration() time.Duration {
	if s.ScanEnd.IsZero() {
		return 0
	}
	return s.ScanEnd.Sub(s.ScanStart)
}

// RenderDuration returns the time spent rendering.
func (s *Stats) RenderDuration() time.Duration {
	if s.RenderEnd.IsZero() {
		return 0
	}
	return s.RenderEnd.Sub(s.RenderStart)
}

// TotalDuration returns the time from scan start to render end.
func (s *Stats) TotalDuration() time.Duration {
	if s.RenderEnd.IsZero() {
		return 0
	}
	return s.RenderEnd.Sub(s.ScanStart)
}

// Throughput returns rendered input bytes per second.
func (s *Stats) Throughput() float64 {
	d := s.RenderDuration()
	if d == 0 || s.BytesIn == 0 {
		return 0
	}
	return float64(s.BytesIn) / d.Seconds()
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats byte counts for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()

	b.WriteString("\n=== Build Statistics ===\n\n")

	b.WriteString("Timing:\n")
	b.WriteString(fmt.Sprintf("  Scan files:  %8s", FormatDuration(s.ScanDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.ScanDuration())/float64(total)*100))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Render:      %8s", FormatDuration(s.RenderDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.RenderDuration())/float64(total)*100))
	}
	b.WriteString("\n")
	b.WriteString("  ─────────────────────\n")
	b.WriteString(fmt.Sprintf("  Total:       %8s\n", FormatDuration(total)))

	b.WriteString("\nThroughput:\n")
	b.WriteString(fmt.Sprintf("  Files found:     %5d\n", s.FilesFound))
	b.WriteString(fmt.Sprintf("  Files rendered:  %5d\n", s.FilesRendered))
	b.WriteString(fmt.Sprintf("  Markdown in:   %7s\n", FormatBytes(uint64(s.BytesIn))))
	b.WriteString(fmt.Sprintf("  HTML out:      %7s\n", FormatBytes(uint64(s.BytesOut))))
	b.WriteString(fmt.Sprintf("  Bytes/second:  %7s\n", FormatBytes(uint64(s.Throughput()))))

	b.WriteString("\nMemory:\n")
	b.WriteString(fmt.Sprintf("  Heap in use:   %7s\n", FormatBytes(s.HeapAlloc)))
	b.WriteString(fmt.Sprintf("  Total alloc:   %7s\n", FormatBytes(s.TotalAlloc)))
	b.WriteString(fmt.Sprintf("  GC cycles:     %7d\n", s.NumGC))

	return b.String()
}
