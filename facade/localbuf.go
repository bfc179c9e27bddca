// File: facade/localbuf.go
// Unified facade layer for the localbuf library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Buffers struct, which aggregates the core
// components of the localbuf library behind a single facade: the
// process-wide accountant, the admission strategy, the reclaimer, and
// the control interfaces. The facade exposes methods to start/stop the
// background sweeper, mint per-worker caches, retune the soft budget at
// runtime, and snapshot accounting state.

package facade

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/momentics/localbuf/api"
	"github.com/momentics/localbuf/buffers"
	"github.com/momentics/localbuf/control"
)

// Config holds parameters immutable per run, except the soft budget
// fraction which can be retuned through the Control store.
type Config struct {
	Capped             bool            // Enforce the 64 KiB request ceiling on every cache
	SoftBudgetFraction float64         // Share of machine memory soft buffers may occupy
	HardLimitBytes     int64           // Per-growth headroom guard, 0 = unlimited
	SweepInterval      time.Duration   // Pause between background sweep passes
	EnableMetrics      bool            // Publish accounting counters into the metrics registry
	EnableDebug        bool            // Register debug probes
	MemoryProbe        api.MemoryProbe // nil = platform query; tests inject fixed totals
}

// DefaultConfig returns default configuration values. The two budget
// knobs honor environment overrides LOCALBUF_SOFT_FRACTION and
// LOCALBUF_HARD_LIMIT.
func DefaultConfig() *Config {
	cfg := &Config{
		Capped:             false,
		SoftBudgetFraction: buffers.SoftBudgetFraction,
		HardLimitBytes:     0,
		SweepInterval:      buffers.DefaultSweepInterval,
		EnableMetrics:      true,
		EnableDebug:        true,
	}
	if v := os.Getenv("LOCALBUF_SOFT_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			cfg.SoftBudgetFraction = f
		}
	}
	if v := os.Getenv("LOCALBUF_HARD_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.HardLimitBytes = n
		}
	}
	return cfg
}

// Buffers is the main facade type. One instance per process owns the
// shared accountant and reclaimer; workers obtain private caches from
// Cache().
type Buffers struct {
	accountant *buffers.MemoryAccountant
	strategy   *buffers.ReclamationStrategy
	reclaimer  *buffers.Reclaimer
	configs    *control.ConfigStore
	metrics    *control.MetricsRegistry
	probes     *control.DebugProbes

	config  *Config
	mu      sync.Mutex
	started bool
}

// New constructs Buffers with the given configuration. It wires the
// accountant, strategy and reclaimer together and exposes the soft
// budget fraction through the Control store for runtime retuning.
func New(cfg *Config) (*Buffers, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.SoftBudgetFraction <= 0 || cfg.SoftBudgetFraction > 1 {
		return nil, fmt.Errorf("%w: soft budget fraction %v outside (0, 1]",
			api.ErrInvalidArgument, cfg.SoftBudgetFraction)
	}

	b := &Buffers{
		accountant: buffers.NewAccountant(),
		configs:    control.NewConfigStore(),
		metrics:    control.NewMetricsRegistry(),
		probes:     control.NewDebugProbes(),
		config:     cfg,
	}
	b.strategy = buffers.NewStrategy(b.accountant, cfg.MemoryProbe)
	b.strategy.SetFraction(cfg.SoftBudgetFraction)
	b.reclaimer = buffers.NewReclaimer(b.accountant, cfg.MemoryProbe,
		b.strategy.Fraction, cfg.SweepInterval)

	// Runtime retuning: the strategy follows the config store, the
	// reclaimer reads the fraction through the strategy.
	b.configs.OnReload(func(snapshot map[string]any) {
		if f, ok := snapshot["soft_budget_fraction"].(float64); ok {
			b.strategy.SetFraction(f)
		}
	})
	b.configs.SetConfig(map[string]any{
		"soft_budget_fraction": cfg.SoftBudgetFraction,
		"sweep_interval":       cfg.SweepInterval,
		"capped":               cfg.Capped,
	})

	if cfg.EnableDebug {
		control.RegisterPlatformProbes(b.probes)
		b.probes.RegisterProbe("accountant.soft_bytes", func() any {
			return b.accountant.CurrentTotal()
		})
		b.probes.RegisterProbe("reclaimer.stats", func() any {
			return b.reclaimer.Stats()
		})
	}
	return b, nil
}

// Start launches the background sweeper. Subsequent calls to Start()
// have no effect.
func (b *Buffers) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	if err := b.reclaimer.Start(); err != nil {
		return err
	}
	b.started = true
	return nil
}

// Stop terminates the background sweeper. Calling Stop() on a
// non-started facade is a no-op.
func (b *Buffers) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return nil
	}
	if err := b.reclaimer.Stop(); err != nil {
		return err
	}
	b.started = false
	return nil
}

// Cache mints a private cache for one worker goroutine, sharing the
// facade's accountant, strategy and reclaimer.
func (b *Buffers) Cache() *buffers.Cache {
	return buffers.NewCache(buffers.CacheConfig{
		Accountant: b.accountant,
		Classifier: b.strategy,
		Reclaimer:  b.reclaimer,
		Capped:     b.config.Capped,
		HardLimit:  b.config.HardLimitBytes,
	})
}

// Accountant exposes the shared accountant.
func (b *Buffers) Accountant() api.Accountant { return b.accountant }

// Reclaimer exposes the shared reclaimer for manual sweeps.
func (b *Buffers) Reclaimer() *buffers.Reclaimer { return b.reclaimer }

// Control exposes the dynamic config store.
func (b *Buffers) Control() *control.ConfigStore { return b.configs }

// Probes exposes the debug probe registry.
func (b *Buffers) Probes() *control.DebugProbes { return b.probes }

// Metrics exposes the metrics registry after publishing the current
// accounting and sweep counters into it.
func (b *Buffers) Metrics() *control.MetricsRegistry {
	if b.config.EnableMetrics {
		stats := b.reclaimer.Stats()
		soft, weak := b.strategy.Counts()
		b.metrics.Set("accountant.soft_bytes", b.accountant.CurrentTotal())
		b.metrics.Set("strategy.soft_admissions", soft)
		b.metrics.Set("strategy.weak_admissions", weak)
		b.metrics.Set("reclaimer.sweeps", stats.Sweeps)
		b.metrics.Set("reclaimer.soft_reclaimed", stats.SoftReclaimed)
		b.metrics.Set("reclaimer.weak_reclaimed", stats.WeakReclaimed)
		b.metrics.Set("reclaimer.tracked", stats.Tracked)
	}
	return b.metrics
}
