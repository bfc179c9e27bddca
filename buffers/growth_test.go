package buffers_test

import (
	"testing"

	"github.com/momentics/localbuf/buffers"
)

func TestGrowBaseline(t *testing.T) {
	cases := []struct {
		current, minSize, want int
	}{
		{0, 0, 8192},
		{0, 1, 8192},
		{0, 8192, 8192},
		{0, 8193, 16384},
		{0, 9000, 16384},
		{8192, 9000, 16384},
		{16384, 5000, 16384},
		{16384, 70000, 131072},
		{0, 1 << 20, 1 << 20},
	}
	for _, c := range cases {
		got := buffers.Grow(c.current, c.minSize)
		if got != c.want {
			t.Errorf("Grow(%d, %d) = %d, want %d", c.current, c.minSize, got, c.want)
		}
	}
}

func TestGrowAlwaysPowerOfTwo(t *testing.T) {
	for min := 0; min < 1<<18; min += 911 {
		got := buffers.Grow(0, min)
		if got < buffers.BaselineCapacity || got < min {
			t.Fatalf("Grow(0, %d) = %d below requirements", min, got)
		}
		if got&(got-1) != 0 {
			t.Fatalf("Grow(0, %d) = %d not a power of two", min, got)
		}
	}
}

func TestGrowNeverShrinks(t *testing.T) {
	if got := buffers.Grow(65536, 100); got != 65536 {
		t.Errorf("Grow(65536, 100) = %d, want 65536", got)
	}
}
