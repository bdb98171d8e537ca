package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRole(t *testing.T) {
	if got := Role(true); got != "leader" {
		t.Errorf("Role(true) = %q, want leader", got)
	}
	if got := Role(false); got != "member" {
		t.Errorf("Role(false) = %q, want member", got)
	}
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Admissions.WithLabelValues("NETFLIX", Role(true)).Inc()
	m.Outcomes.WithLabelValues("NETFLIX", "ROOM_CREATED").Inc()
	m.Cancellations.Inc()
	m.Conflicts.WithLabelValues("WAVVE").Inc()

	if n := testutil.CollectAndCount(reg); n != 4 {
		t.Errorf("collected %d series, want 4", n)
	}
	if v := testutil.ToFloat64(m.Cancellations); v != 1 {
		t.Errorf("cancellations = %v, want 1", v)
	}

	// A second registration on the same registry must panic.
	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	New(reg)
}
