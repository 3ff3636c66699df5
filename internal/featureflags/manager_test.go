package featureflags

import "testing"

func TestEnabledBooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		if !m.Enabled(name, 1) {
			t.Fatalf("expected flag %q enabled", name)
		}
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		if m.Enabled(name, 1) {
			t.Fatalf("expected flag %q disabled", name)
		}
	}
}

func TestEnabledPercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", 1) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", 1) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", 0) {
		t.Fatal("percentage rollout requires non-zero userID")
	}
}

func TestPercentageDistribution(t *testing.T) {
	m := NewManager("half=50%")

	enabled := 0
	for id := uint(1); id <= 1000; id++ {
		if m.Enabled("half", id) {
			enabled++
		}
	}
	if enabled < 400 || enabled > 600 {
		t.Fatalf("50%% rollout hit %d of 1000 users", enabled)
	}
}

func TestParseDropsMalformedPairs(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off,w=maybe,v=150%")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d: %#v", len(raw), raw)
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot(123)
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled("anything", 1) {
		t.Fatal("nil manager must evaluate flags as off")
	}
}
