package buffers_test

import (
	"errors"
	"testing"

	"github.com/momentics/localbuf/api"
	"github.com/momentics/localbuf/buffers"
	"github.com/momentics/localbuf/fake"
)

func TestSweepReclaimsWeakAlways(t *testing.T) {
	acct := &fake.CountingAccountant{}
	probe := fake.FixedProbe(1 << 30)
	recl := buffers.NewReclaimer(acct, probe, nil, 0)
	cache := buffers.NewCache(buffers.CacheConfig{
		Accountant: acct,
		Classifier: &fake.FixedClassifier{Strength: api.Weak},
		Reclaimer:  recl,
	})

	b1, _ := cache.GetBuffer()
	if got := recl.Sweep(false); got != 1 {
		t.Fatalf("Sweep(false) reclaimed %d weak refs, want 1", got)
	}

	// The slot detects the loss lazily and recreates.
	b2, _ := cache.GetBuffer()
	if b2 == b1 || b2.Generation() == b1.Generation() {
		t.Error("get after weak reclamation did not allocate a fresh buffer")
	}
}

func TestSweepReclaimsSoftOnlyUnderPressure(t *testing.T) {
	acct := &fake.CountingAccountant{}
	cache, recl := newSoftCache(t, acct)

	b1, _ := cache.GetBufferSize(9000, false)
	if acct.CurrentTotal() != 16384 {
		t.Fatalf("accounted bytes = %d, want 16384", acct.CurrentTotal())
	}

	if got := recl.Sweep(false); got != 0 {
		t.Fatalf("Sweep(false) reclaimed %d soft refs, want 0", got)
	}
	b2, _ := cache.GetBuffer()
	if b2 != b1 {
		t.Fatal("calm sweep evicted a soft buffer")
	}

	if got := recl.Sweep(true); got != 1 {
		t.Fatalf("Sweep(true) reclaimed %d, want 1", got)
	}
	if acct.CurrentTotal() != 0 {
		t.Errorf("accounted bytes after pressure sweep = %d, want 0", acct.CurrentTotal())
	}
	if acct.Releases.Load() != 1 {
		t.Errorf("releases = %d, want exactly 1", acct.Releases.Load())
	}

	// No double release on repeated sweeps.
	recl.Sweep(true)
	if acct.Releases.Load() != 1 {
		t.Errorf("releases after second sweep = %d, want 1", acct.Releases.Load())
	}
}

func TestReplacedRefReleasedExactlyOnce(t *testing.T) {
	acct := &fake.CountingAccountant{}
	cache, recl := newSoftCache(t, acct)

	// An 8192 soft buffer, then a growth replacing it with 16384.
	cache.GetBuffer()
	cache.GetBufferSize(9000, false)
	if acct.Releases.Load() != 1 {
		t.Fatalf("releases after replacement = %d, want 1", acct.Releases.Load())
	}
	if acct.CurrentTotal() != 16384 {
		t.Fatalf("total after replacement = %d, want 16384", acct.CurrentTotal())
	}

	// The dead ref drains from the pending set without firing again.
	recl.Sweep(true)
	if acct.Releases.Load() != 2 {
		t.Errorf("releases after sweep = %d, want 2 (old + live)", acct.Releases.Load())
	}
	if acct.CurrentTotal() != 0 {
		t.Errorf("total after sweep = %d, want 0", acct.CurrentTotal())
	}
	if got := recl.Stats().Tracked; got != 0 {
		t.Errorf("tracked refs after sweep = %d, want 0", got)
	}
}

func TestStrongRefsNeverTrackedOrReclaimed(t *testing.T) {
	acct := &fake.CountingAccountant{}
	probe := fake.FixedProbe(1 << 30)
	recl := buffers.NewReclaimer(acct, probe, nil, 0)
	cache := buffers.NewCache(buffers.CacheConfig{
		Accountant: acct,
		Classifier: &fake.FixedClassifier{Strength: api.Strong},
		Reclaimer:  recl,
	})

	b1, _ := cache.GetBuffer()
	if got := recl.Stats().Tracked; got != 0 {
		t.Fatalf("strong ref tracked, pending = %d", got)
	}
	recl.Sweep(true)
	b2, _ := cache.GetBuffer()
	if b2 != b1 {
		t.Error("strong buffer did not survive a pressure sweep")
	}
}

func TestUnderPressure(t *testing.T) {
	acct := &fake.CountingAccountant{}
	recl := buffers.NewReclaimer(acct, fake.FixedProbe(100000), nil, 0)

	if recl.UnderPressure() {
		t.Error("empty accountant reported pressure")
	}
	acct.Register(30000) // budget is 20000 at the default fraction
	if !recl.UnderPressure() {
		t.Error("accountant past budget reported no pressure")
	}
	acct.Release(30000)

	unknown := buffers.NewReclaimer(acct, fake.FixedProbe(0), nil, 0)
	if !unknown.UnderPressure() {
		t.Error("unknown machine memory should count as pressure")
	}
}

func TestReclaimerStartStop(t *testing.T) {
	acct := &fake.CountingAccountant{}
	recl := buffers.NewReclaimer(acct, fake.FixedProbe(1<<30), nil, 0)

	if err := recl.Start(); err != nil {
		t.Fatal(err)
	}
	if err := recl.Start(); !errors.Is(err, api.ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
	if err := recl.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := recl.Stop(); !errors.Is(err, api.ErrNotStarted) {
		t.Errorf("second Stop = %v, want ErrNotStarted", err)
	}
	// Restart works.
	if err := recl.Start(); err != nil {
		t.Fatal(err)
	}
	if err := recl.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestReclaimerStats(t *testing.T) {
	acct := &fake.CountingAccountant{}
	probe := fake.FixedProbe(1 << 30)
	recl := buffers.NewReclaimer(acct, probe, nil, 0)
	weakCache := buffers.NewCache(buffers.CacheConfig{
		Accountant: acct,
		Classifier: &fake.FixedClassifier{Strength: api.Weak},
		Reclaimer:  recl,
	})
	softCache := buffers.NewCache(buffers.CacheConfig{
		Accountant: acct,
		Classifier: buffers.NewStrategy(acct, probe),
		Reclaimer:  recl,
	})

	weakCache.GetBuffer()
	softCache.GetBuffer()
	recl.Sweep(false)
	recl.Sweep(true)

	stats := recl.Stats()
	if stats.Sweeps != 2 {
		t.Errorf("Sweeps = %d, want 2", stats.Sweeps)
	}
	if stats.WeakReclaimed != 1 {
		t.Errorf("WeakReclaimed = %d, want 1", stats.WeakReclaimed)
	}
	if stats.SoftReclaimed != 1 {
		t.Errorf("SoftReclaimed = %d, want 1", stats.SoftReclaimed)
	}
}
