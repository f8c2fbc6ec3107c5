// Package jobmgr runs named background jobs with cancellation, lifecycle
// callbacks, and a way to wait for all of them to return.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    log.Println("JOB:", msg)
//	})
//
//	_ = jm.StartAsync(ctx, "latency-sampler", func(ctx context.Context) error {
//	    // loop until ctx is cancelled
//	    return nil
//	})
//
//	// on shutdown
//	jm.Shutdown()
package jobmgr

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Job is a running unit of work.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// StatusReporter receives lifecycle messages such as
//
//	running:latency-sampler
//	error:status-server:listen tcp: address already in use
//	done:latency-sampler
type StatusReporter func(string)

// Manager tracks running jobs. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	wg       sync.WaitGroup
	Reporter StatusReporter
}

// NewManager creates a Manager; reporter may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		Reporter: reporter,
	}
}

// StartAsync runs runner in its own goroutine under a context derived from
// parent. A second job with the same name is refused while the first runs.
func (m *Manager) StartAsync(parent context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job '%s' is already running", name)
	}
	ctx, cancel := context.WithCancel(parent)
	job := &Job{Name: name, Cancel: cancel}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.report("running:" + name)
		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		if m.jobs[name] == job {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// Stop cancels a running job by name.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}
	job.Cancel()
	delete(m.jobs, name)
	return nil
}

// Shutdown cancels every job and waits for all of them to return.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for name, job := range m.jobs {
		job.Cancel()
		delete(m.jobs, name)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// List returns the active job names, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Status returns a one-line summary, e.g. "Running jobs: latency-sampler, status-server".
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
