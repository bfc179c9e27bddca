// File: buffers/strategy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Soft/weak admission control against a fraction of machine memory.

package buffers

import (
	"math"
	"sync/atomic"

	"github.com/momentics/localbuf/api"
	"github.com/momentics/localbuf/internal/memstat"
)

// SoftBudgetFraction is the default share of total machine memory that
// live soft-class buffers may occupy before new buffers are demoted to
// the weak class.
const SoftBudgetFraction = 0.20

// ReclamationStrategy classifies new buffers at creation time. Soft
// while accountant total plus the new size fits inside the budget, Weak
// beyond it. The memory probe is queried fresh on every call; the
// snapshot is coarse and racy by design — concurrent classifications
// near the threshold may both admit Soft, which is accepted.
type ReclamationStrategy struct {
	accountant   api.Accountant
	probe        api.MemoryProbe
	fractionBits atomic.Uint64

	softCount atomic.Int64
	weakCount atomic.Int64
}

var _ api.Classifier = (*ReclamationStrategy)(nil)

// NewStrategy builds a strategy over the given accountant and memory
// probe. A nil probe defaults to the platform query.
func NewStrategy(accountant api.Accountant, probe api.MemoryProbe) *ReclamationStrategy {
	if probe == nil {
		probe = memstat.Total
	}
	s := &ReclamationStrategy{
		accountant: accountant,
		probe:      probe,
	}
	s.fractionBits.Store(math.Float64bits(SoftBudgetFraction))
	return s
}

// Fraction returns the current soft budget fraction.
func (s *ReclamationStrategy) Fraction() float64 {
	return math.Float64frombits(s.fractionBits.Load())
}

// SetFraction updates the soft budget fraction. Values outside (0, 1]
// are ignored.
func (s *ReclamationStrategy) SetFraction(f float64) {
	if f > 0 && f <= 1 {
		s.fractionBits.Store(math.Float64bits(f))
	}
}

// Budget returns the current soft byte budget, 0 when total memory is
// unknown.
func (s *ReclamationStrategy) Budget() int64 {
	total := s.probe()
	if total == 0 {
		return 0
	}
	return int64(s.Fraction() * float64(total))
}

// Classify returns Soft iff the accountant total plus size fits inside
// the budget. Unknown total memory yields Weak: without a budget there
// is no headroom to attribute soft bytes against.
func (s *ReclamationStrategy) Classify(size int64) api.Strength {
	budget := s.Budget()
	if budget > 0 && s.accountant.CurrentTotal()+size <= budget {
		s.softCount.Add(1)
		return api.Soft
	}
	s.weakCount.Add(1)
	return api.Weak
}

// Counts reports how many classifications chose each class.
func (s *ReclamationStrategy) Counts() (soft, weak int64) {
	return s.softCount.Load(), s.weakCount.Load()
}
