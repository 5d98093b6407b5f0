package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurations(t *testing.T) {
	t.Parallel()

	s := New()
	base := time.Now()
	s.ScanStart = base
	s.ScanEnd = base.Add(10 * time.Millisecond)
	s.RenderStart = s.ScanEnd
	s.RenderEnd = base.Add(110 * time.Millisecond)

	assert.Equal(t, 10*time.Millisecond, s.ScanDuration())
	assert.Equal(t, 100*time.Millisecond, s.RenderDuration())
	assert.Equal(t, 110*time.Millisecond, s.TotalDuration())
}

func TestZeroBeforeCompletion(t *testing.T) {
	t.Parallel()

	s := New()
	s.StartScan()
	assert.Zero(t, s.ScanDuration())
	assert.Zero(t, s.TotalDuration())
	assert.Zero(t, s.Throughput())
}

func TestAddFile(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddFile(100, 250)
	s.AddFile(50, 80)

	assert.Equal(t, 2, s.FilesRendered)
	assert.Equal(t, int64(150), s.BytesIn)
	assert.Equal(t, int64(330), s.BytesOut)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "500µs", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "1m30.0s", FormatDuration(90*time.Second))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "2.5 MB", FormatBytes(2621440))
	assert.Equal(t, "1.0 GB", FormatBytes(1073741824))
}

func TestString(t *testing.T) {
	t.Parallel()

	s := New()
	s.StartScan()
	s.EndScan(3)
	s.StartRender()
	s.AddFile(10, 20)
	s.EndRender()

	out := s.String()
	assert.Contains(t, out, "Build Statistics")
	assert.Contains(t, out, "Files found:")
	assert.Contains(t, out, "Files rendered:")
	assert.Contains(t, out, "    3\n")
	assert.Contains(t, out, "    1\n")
}
