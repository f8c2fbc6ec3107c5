package state

import (
	"context"
	"math"
	"time"
)

// DefaultSampleInterval is the pause between two latency samples.
const DefaultSampleInterval = 30 * time.Second

// Source yields the next latency sample.
type Source interface {
	Next() uint64
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() uint64

func (f SourceFunc) Next() uint64 { return f() }

// Counter is a placeholder source: 0, 1, 2, ... saturating at MaxUint64.
// It is only ever read by the sampler goroutine.
type Counter struct {
	next uint64
}

func (c *Counter) Next() uint64 {
	v := c.next
	if c.next < math.MaxUint64 {
		c.next++
	}
	return v
}

// RunSampler appends one sample immediately and then one per interval until
// ctx is done. It has no failure modes and always returns nil.
func RunSampler(ctx context.Context, st *State, interval time.Duration, src Source) error {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	if src == nil {
		src = &Counter{}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		st.AppendSample(src.Next())

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
