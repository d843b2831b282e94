// Package ids issues timestamp-derived identifiers. Several records can be
// created within the same millisecond, so stamps are made strictly
// increasing rather than taken from the clock verbatim.
package ids

import (
	"strconv"
	"sync"
	"time"
)

// Sequence hands out strictly increasing millisecond stamps.
type Sequence struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewSequence returns a Sequence reading time from now. A nil now uses
// time.Now.
func NewSequence(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns the current time in Unix milliseconds, bumped past the
// previous stamp when the clock has not advanced.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().UnixMilli()
	if stamp <= s.last {
		stamp = s.last + 1
	}
	s.last = stamp
	return stamp
}

// NextString is Next formatted in base 10.
func (s *Sequence) NextString() string {
	return strconv.FormatInt(s.Next(), 10)
}

// Scoped joins an owner id, a kind and a fresh stamp:
// "<owner>-<kind>-<stamp>".
func (s *Sequence) Scoped(owner, kind string) string {
	return owner + "-" + kind + "-" + s.NextString()
}
