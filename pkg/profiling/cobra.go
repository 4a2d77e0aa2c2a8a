package profiling

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/grovetools/git-log-pretty/logging"
	"github.com/spf13/cobra"
)

// CobraProfiler wires --timing and --cpu-profile into a command tree.
type CobraProfiler struct {
	cpuProfileFile *os.File
	cpuProfilePath string
	timing         bool
	recorder       *Recorder
}

// NewCobraProfiler creates a profiler. Its Recorder is disabled until
// PreRun sees --timing.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{recorder: NewRecorder(false)}
}

// AddFlags adds the profiling flags to cmd and all its subcommands.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write a CPU profile to file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary of repository reads on exit")
}

// Recorder returns the span recorder commands time their phases with.
func (p *CobraProfiler) Recorder() *Recorder {
	return p.recorder
}

// PreRun is a PersistentPreRunE hook that starts profiling per the flags.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		p.recorder = NewRecorder(true)
	}

	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		p.cpuProfileFile = f
	}
	return nil
}

// PostRun is a PersistentPostRun hook that writes the profile and summary
// to stderr.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuProfileFile.Close(); err != nil {
			logging.NewLogger("profiling").WithError(err).Warn("Failed to close CPU profile")
		}
		p.cpuProfileFile = nil
		fmt.Fprintf(cmd.ErrOrStderr(), "CPU profile written to %s\n", p.cpuProfilePath)
	}

	p.recorder.Summarize(cmd.ErrOrStderr())
}
