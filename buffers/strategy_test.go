package buffers_test

import (
	"testing"

	"github.com/momentics/localbuf/api"
	"github.com/momentics/localbuf/buffers"
	"github.com/momentics/localbuf/fake"
)

func TestClassifyWithinBudget(t *testing.T) {
	acct := &fake.CountingAccountant{}
	// Total 100000 bytes, default fraction 0.20: budget 20000.
	s := buffers.NewStrategy(acct, fake.FixedProbe(100000))

	if got := s.Classify(16384); got != api.Soft {
		t.Errorf("Classify(16384) on empty accountant = %v, want soft", got)
	}
	acct.Register(16384)
	if got := s.Classify(8192); got != api.Weak {
		t.Errorf("Classify(8192) past budget = %v, want weak", got)
	}
	// Stays weak until the accountant drops back under threshold.
	if got := s.Classify(8192); got != api.Weak {
		t.Errorf("repeat Classify(8192) past budget = %v, want weak", got)
	}
	acct.Release(16384)
	if got := s.Classify(8192); got != api.Soft {
		t.Errorf("Classify(8192) after release = %v, want soft", got)
	}
}

func TestClassifyExactThreshold(t *testing.T) {
	acct := &fake.CountingAccountant{}
	s := buffers.NewStrategy(acct, fake.FixedProbe(100000))
	// candidate == budget is still admitted.
	if got := s.Classify(20000); got != api.Soft {
		t.Errorf("Classify at exact budget = %v, want soft", got)
	}
}

func TestClassifyUnknownTotal(t *testing.T) {
	acct := &fake.CountingAccountant{}
	s := buffers.NewStrategy(acct, fake.FixedProbe(0))
	if got := s.Classify(1); got != api.Weak {
		t.Errorf("Classify with unknown machine memory = %v, want weak", got)
	}
}

func TestSetFraction(t *testing.T) {
	acct := &fake.CountingAccountant{}
	s := buffers.NewStrategy(acct, fake.FixedProbe(100000))

	s.SetFraction(0.05) // budget 5000
	if got := s.Classify(8192); got != api.Weak {
		t.Errorf("Classify(8192) under 5%% budget = %v, want weak", got)
	}
	s.SetFraction(0.5) // budget 50000
	if got := s.Classify(8192); got != api.Soft {
		t.Errorf("Classify(8192) under 50%% budget = %v, want soft", got)
	}

	// Out-of-range updates are ignored.
	s.SetFraction(0)
	s.SetFraction(1.5)
	if got := s.Fraction(); got != 0.5 {
		t.Errorf("Fraction after invalid updates = %v, want 0.5", got)
	}
}

func TestClassifyCounts(t *testing.T) {
	acct := &fake.CountingAccountant{}
	s := buffers.NewStrategy(acct, fake.FixedProbe(100000))
	s.Classify(8192)
	acct.Register(20000)
	s.Classify(8192)
	soft, weak := s.Counts()
	if soft != 1 || weak != 1 {
		t.Errorf("Counts() = (%d, %d), want (1, 1)", soft, weak)
	}
}
