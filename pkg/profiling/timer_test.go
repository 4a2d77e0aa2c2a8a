package profiling

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every read.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRecorderAggregatesByName(t *testing.T) {
	r := NewRecorder(true)
	r.now = fakeClock(time.Millisecond)

	r.Start("resolve refs")()
	for i := 0; i < 3; i++ {
		r.Start("changed files")()
	}

	phases := r.Phases()
	require.Len(t, phases, 2)
	assert.Equal(t, Phase{Name: "resolve refs", Count: 1, Total: time.Millisecond}, phases[0])
	assert.Equal(t, Phase{Name: "changed files", Count: 3, Total: 3 * time.Millisecond}, phases[1])
}

func TestDisabledRecorder(t *testing.T) {
	var nilRecorder *Recorder
	nilRecorder.Start("x")()
	assert.False(t, nilRecorder.Enabled())
	assert.Nil(t, nilRecorder.Phases())

	r := NewRecorder(false)
	r.Start("x")()
	assert.Nil(t, r.Phases())

	var buf bytes.Buffer
	r.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestSummarize(t *testing.T) {
	r := NewRecorder(true)
	r.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = fakeClock(time.Millisecond)
	r.Start("walk commits")()

	var buf bytes.Buffer
	r.Summarize(&buf)

	out := buf.String()
	assert.Contains(t, out, "--- Timing Profile ---")
	assert.Contains(t, out, "- walk commits (1x, 1ms, ")
	assert.Contains(t, out, "total ")
}

func TestCobraProfilerTiming(t *testing.T) {
	p := NewCobraProfiler()
	cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
	p.AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--timing"}))

	require.NoError(t, p.PreRun(cmd, nil))
	assert.True(t, p.Recorder().Enabled())
	p.Recorder().Start("diff trees")()

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	p.PostRun(cmd, nil)
	assert.Contains(t, stderr.String(), "- diff trees (1x, ")
}

func TestCobraProfilerDisabledByDefault(t *testing.T) {
	p := NewCobraProfiler()
	cmd := &cobra.Command{Use: "x"}
	p.AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	require.NoError(t, p.PreRun(cmd, nil))
	assert.False(t, p.Recorder().Enabled())

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	p.PostRun(cmd, nil)
	assert.Empty(t, stderr.String())
}
