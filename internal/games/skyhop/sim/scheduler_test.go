package sim

import "testing"

func TestSchedulerRunsOnDueTick(t *testing.T) {
	s := NewScheduler(1.0 / 60.0)
	fired := -1
	s.After(0.2, 7, func() { fired = s.Tick() })

	for i := 0; i < 11; i++ {
		s.Advance()
	}
	if fired != -1 {
		t.Fatalf("action fired early at tick %d", fired)
	}
	s.Advance()
	if fired != 12 {
		t.Errorf("action fired at tick %d, expected 12", fired)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after firing", s.Len())
	}
}

func TestSchedulerTicksRounding(t *testing.T) {
	s := NewScheduler(1.0 / 60.0)
	tests := []struct {
		delay float64
		want  int
	}{
		{0, 1},
		{0.2, 12},
		{0.3, 18},
		{0.5, 30},
		{0.25, 15},
		{0.001, 1},
	}
	for _, tc := range tests {
		if got := s.Ticks(tc.delay); got != tc.want {
			t.Errorf("Ticks(%v) = %d, expected %d", tc.delay, got, tc.want)
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler(0.1)
	ran := false
	id := s.After(0.1, 1, func() { ran = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel() = false for a pending action")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should report nothing removed")
	}
	s.Advance()
	if ran {
		t.Error("cancelled action ran")
	}
}

func TestSchedulerCancelOwner(t *testing.T) {
	s := NewScheduler(0.1)
	var ran []EntityID
	s.After(0.1, 1, func() { ran = append(ran, 1) })
	s.After(0.2, 1, func() { ran = append(ran, 1) })
	s.After(0.1, 2, func() { ran = append(ran, 2) })

	if got := s.Pending(1); got != 2 {
		t.Errorf("Pending(1) = %d, expected 2", got)
	}
	if got := s.CancelOwner(1); got != 2 {
		t.Errorf("CancelOwner(1) = %d, expected 2", got)
	}
	s.Advance()
	s.Advance()
	if len(ran) != 1 || ran[0] != 2 {
		t.Errorf("ran = %v, expected only owner 2", ran)
	}
}

func TestSchedulerCancelDuringBatch(t *testing.T) {
	s := NewScheduler(0.1)
	secondRan := false
	s.After(0.1, 1, func() { s.CancelOwner(2) })
	s.After(0.1, 2, func() { secondRan = true })

	s.Advance()
	if secondRan {
		t.Error("action cancelled by an earlier action in the same tick still ran")
	}
}

func TestSchedulerChainedActions(t *testing.T) {
	s := NewScheduler(0.1)
	var ticks []int
	s.After(0.1, 1, func() {
		ticks = append(ticks, s.Tick())
		s.After(0.2, 1, func() { ticks = append(ticks, s.Tick()) })
	})

	for i := 0; i < 5; i++ {
		s.Advance()
	}
	if len(ticks) != 2 || ticks[0] != 1 || ticks[1] != 3 {
		t.Errorf("chained ticks = %v, expected [1 3]", ticks)
	}
}
