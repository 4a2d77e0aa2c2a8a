// Package profiling times the phases of a command run and optionally
// records a CPU profile.
package profiling

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase aggregates every span recorded under one name.
type Phase struct {
	Name  string
	Count int
	Total time.Duration
}

// Recorder collects named spans. A nil or disabled Recorder records nothing,
// so callers can time unconditionally.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	start   time.Time
	order   []string
	phases  map[string]*Phase
	now     func() time.Time
}

// NewRecorder returns a recorder that only records when enabled.
func NewRecorder(enabled bool) *Recorder {
	return &Recorder{
		enabled: enabled,
		start:   time.Now(),
		phases:  make(map[string]*Phase),
		now:     time.Now,
	}
}

// Enabled reports whether spans are recorded.
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled
}

// Start opens a span and returns the function that closes it.
//
//	defer rec.Start("walk commits")()
func (r *Recorder) Start(name string) func() {
	if !r.Enabled() {
		return func() {}
	}
	begin := r.now()
	return func() {
		r.add(name, r.now().Sub(begin))
	}
}

func (r *Recorder) add(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.phases[name]
	if !ok {
		p = &Phase{Name: name}
		r.phases[name] = p
		r.order = append(r.order, name)
	}
	p.Count++
	p.Total += d
}

// Phases returns the recorded phases in first-seen order.
func (r *Recorder) Phases() []Phase {
	if !r.Enabled() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Phase, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.phases[name])
	}
	return out
}

// Summarize writes each phase with its call count and share of the
// wall time since the recorder was created.
func (r *Recorder) Summarize(w io.Writer) {
	if !r.Enabled() {
		return
	}
	wall := r.now().Sub(r.start)

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, p := range r.Phases() {
		pct := 0.0
		if wall > 0 {
			pct = float64(p.Total) / float64(wall) * 100
		}
		fmt.Fprintf(w, "- %s (%dx, %v, %.1f%%)\n", p.Name, p.Count, p.Total.Round(100*time.Microsecond), pct)
	}
	fmt.Fprintf(w, "total %v\n", wall.Round(100*time.Microsecond))
	fmt.Fprintln(w, "----------------------")
}
