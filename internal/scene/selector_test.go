package scene

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func idPool(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%02d", i)
	}
	return ids
}

func TestSelector_Pick(t *testing.T) {
	t.Run("empty candidates", func(t *testing.T) {
		s := NewSelector(0, testRNG())
		if got := s.Pick(nil); got != "" {
			t.Errorf("Pick(nil) = %q, want empty", got)
		}
	})

	t.Run("always picks from candidates", func(t *testing.T) {
		s := NewSelector(6, testRNG())
		pool := idPool(6)
		for i := 0; i < 50; i++ {
			if got := s.Pick(pool); !slices.Contains(pool, got) {
				t.Fatalf("pick %d: %q not in pool", i, got)
			}
		}
	})

	t.Run("never repeats an in-history id unless filter empties", func(t *testing.T) {
		s := NewSelector(10, testRNG())
		pool := idPool(10)

		for i := 0; i < 200; i++ {
			before := s.History()
			got := s.Pick(pool)
			// With capacity 5 over 10 items the filtered set is never
			// empty, so a history repeat is a real violation.
			if slices.Contains(before, got) {
				t.Fatalf("pick %d repeated %q from history %v", i, got, before)
			}
		}
	})

	t.Run("single-item pool never blocks", func(t *testing.T) {
		s := NewSelector(1, testRNG())
		pool := idPool(1)
		for i := 0; i < 5; i++ {
			if got := s.Pick(pool); got != "item-00" {
				t.Fatalf("pick %d = %q, want item-00", i, got)
			}
		}
	})
}

func TestSelector_HistoryCapacity(t *testing.T) {
	tests := []struct {
		poolSize int
		wantCap  int
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{10, 5},
		{11, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("pool %d", tt.poolSize), func(t *testing.T) {
			s := NewSelector(tt.poolSize, testRNG())
			pool := idPool(tt.poolSize)

			for i := 0; i < tt.poolSize*4; i++ {
				s.Pick(pool)
				if h := len(s.History()); h > tt.wantCap {
					t.Fatalf("after %d picks history length %d exceeds %d", i+1, h, tt.wantCap)
				}
			}
		})
	}
}

func TestSelector_TenItemScenario(t *testing.T) {
	// Pool of 10, capacity 5: the first five picks are all distinct, and
	// the 6th pick excludes the most recent five but may repeat the
	// first (it has been evicted by then... exactly on the 6th pick the
	// history holds picks 1-5, so the 6th excludes all of them; pick #1
	// becomes available again on the 7th).
	s := NewSelector(10, testRNG())
	pool := idPool(10)

	var picks []string
	for i := 0; i < 6; i++ {
		picks = append(picks, s.Pick(pool))
	}

	first5 := picks[:5]
	for i, a := range first5 {
		for _, b := range first5[i+1:] {
			if a == b {
				t.Fatalf("repeat %q within first five picks %v", a, first5)
			}
		}
	}

	if slices.Contains(first5, picks[5]) {
		t.Errorf("6th pick %q repeated one of the first five %v", picks[5], first5)
	}

	// After the 6th pick the history is picks 2-6; pick #1 is fair game.
	h := s.History()
	if len(h) != 5 {
		t.Fatalf("history length = %d, want 5", len(h))
	}
	if slices.Contains(h, picks[0]) {
		t.Errorf("history %v still holds evicted first pick %q", h, picks[0])
	}
	if !slices.Equal(h, picks[1:6]) {
		t.Errorf("history = %v, want picks 2-6 %v", h, picks[1:6])
	}
}

func TestSelector_UniformishOverFallback(t *testing.T) {
	// A 2-item pool has capacity 1, so every pick excludes only the
	// previous one: picks must strictly alternate.
	s := NewSelector(2, testRNG())
	pool := idPool(2)

	prev := s.Pick(pool)
	for i := 0; i < 20; i++ {
		got := s.Pick(pool)
		if got == prev {
			t.Fatalf("pick %d repeated %q with capacity-1 history", i, got)
		}
		prev = got
	}
}
