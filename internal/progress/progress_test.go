package progress

import "testing"

func TestPct(t *testing.T) {
	b := New("test", 4)

	if b.Pct() != 0 {
		t.Errorf("initial Pct = %v, want 0", b.Pct())
	}

	b.Increment("one")
	if b.Pct() != 25 {
		t.Errorf("Pct = %v, want 25", b.Pct())
	}

	b.Increment("two")
	b.Increment("three")
	b.Increment("four")
	if b.Pct() != 100 {
		t.Errorf("Pct = %v, want 100", b.Pct())
	}

	// Incrementing past the total clamps
	b.Increment("five")
	if b.Current != 4 {
		t.Errorf("Current = %d, want clamped 4", b.Current)
	}
}

func TestZeroTotal(t *testing.T) {
	b := New("empty", 0)
	if b.Pct() != 0 {
		t.Errorf("Pct with zero total = %v, want 0", b.Pct())
	}
	b.Increment("x")
	b.Finish("done")
}

func TestDisabledByEnv(t *testing.T) {
	t.Setenv("PIVOTKIT_NO_PROGRESS", "1")
	b := New("quiet", 10)
	if b.Enabled {
		t.Error("bar should be disabled by PIVOTKIT_NO_PROGRESS=1")
	}
}
