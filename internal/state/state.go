// Package state holds the runtime state shared by cogs, background jobs and
// the status server.
package state

import (
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"
)

// SampleCapacity bounds the latency history.
const SampleCapacity = 60

// State is created once at startup and shared by reference. Everything except
// the sample buffer is immutable after New.
type State struct {
	http    *http.Client
	servers *sqlx.DB
	users   *sqlx.DB
	prefix  string

	mu      sync.Mutex
	samples []uint64
}

func New(httpClient *http.Client, servers, users *sqlx.DB, prefix string) *State {
	return &State{
		http:    httpClient,
		servers: servers,
		users:   users,
		prefix:  prefix,
		samples: make([]uint64, 0, SampleCapacity),
	}
}

func (s *State) HTTP() *http.Client { return s.http }
func (s *State) ServersDB() *sqlx.DB { return s.servers }
func (s *State) UsersDB() *sqlx.DB { return s.users }
func (s *State) Prefix() string { return s.prefix }

// AppendSample records v, dropping the oldest sample when the buffer is full.
func (s *State) AppendSample(v uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.samples) >= SampleCapacity {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:len(s.samples)-1]
	}
	s.samples = append(s.samples, v)
}

// Samples returns a copy of the buffer, oldest first.
func (s *State) Samples() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]uint64, len(s.samples))
	copy(out, s.samples)
	return out
}
