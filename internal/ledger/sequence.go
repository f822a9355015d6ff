package ledger

import (
	"sync"
	"time"
)

// Sequence hands out transaction ids. Ids look like millisecond timestamps,
// as the widget always stored them, but are strictly increasing: two
// transactions created within the same millisecond still get distinct ids.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequence returns a sequence whose next id is greater than last.
func NewSequence(last int64, now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{last: last, now: now}
}

// Next returns max(last+1, now in milliseconds).
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe makes sure future ids stay above id.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
