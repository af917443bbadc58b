// Package generator fills the school schema with synthetic, internally
// consistent data: rosters, teacher-to-course allocation and grade ledgers.
//
// Every random draw goes through a Source, and all mutable run state lives in
// a RunContext, so a seeded run is fully reproducible.
package generator

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness the generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a seeded PCG source. The same seed yields the same dataset.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ClockSeed derives a seed from the wall clock for runs that were not given one
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

func pick(src Source, items []string) string {
	return items[src.IntN(len(items))]
}

type nameKey struct {
	first, last, class string
}

type loadKey struct {
	teacherID int64
	subject   string
}

// RunContext carries the randomness, the run's reference time and the
// run-scoped mutable state: names already handed out and per-teacher
// subject load.
type RunContext struct {
	rng   Source
	now   time.Time
	names NamePool

	usedNames   map[nameKey]struct{}
	subjectLoad map[loadKey]int
	fallbacks   int
}

// RunOption customizes a RunContext
type RunOption func(*RunContext)

// WithNamePool replaces the default name pools
func WithNamePool(pool NamePool) RunOption {
	return func(rc *RunContext) {
		rc.names = pool
	}
}

// NewRunContext creates the state for one generation run.
// now is fixed for the whole run; all dates are offsets from it.
func NewRunContext(rng Source, now time.Time, opts ...RunOption) *RunContext {
	rc := &RunContext{
		rng:         rng,
		now:         now,
		names:       DefaultNamePool,
		usedNames:   make(map[nameKey]struct{}),
		subjectLoad: make(map[loadKey]int),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Now returns the run's reference time
func (rc *RunContext) Now() time.Time {
	return rc.now
}

// SubjectLoad returns how many classes a teacher has been given for a subject
func (rc *RunContext) SubjectLoad(teacherID int64, subject string) int {
	return rc.subjectLoad[loadKey{teacherID, subject}]
}

// CapFallbacks returns how many courses were assigned past the cap
func (rc *RunContext) CapFallbacks() int {
	return rc.fallbacks
}
