package registry

import (
	"sort"
	"testing"
)

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestJoinCreatesRoom(t *testing.T) {
	r := New()

	res := r.Join("hearing-1", "A")
	if !res.Created {
		t.Error("first join should create the room")
	}
	if res.AlreadyMember {
		t.Error("first join should not report AlreadyMember")
	}
	if len(res.Peers) != 0 {
		t.Errorf("solo joiner should see no peers, got %v", res.Peers)
	}
	if r.RoomCount() != 1 {
		t.Errorf("RoomCount = %d, want 1", r.RoomCount())
	}
}

func TestJoinReturnsExistingPeers(t *testing.T) {
	r := New()
	r.Join("hearing-1", "A")
	r.Join("hearing-1", "B")

	res := r.Join("hearing-1", "C")
	if res.Created {
		t.Error("third join should not create the room")
	}
	if got, want := sorted(res.Peers), []string{"A", "B"}; !equal(got, want) {
		t.Errorf("Peers = %v, want %v", got, want)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	r := New()
	r.Join("hearing-1", "A")
	r.Join("hearing-1", "B")

	res := r.Join("hearing-1", "A")
	if !res.AlreadyMember {
		t.Error("re-join should report AlreadyMember")
	}
	if got, want := sorted(res.Peers), []string{"B"}; !equal(got, want) {
		t.Errorf("Peers = %v, want %v", got, want)
	}
	if got := sorted(r.Members("hearing-1")); !equal(got, []string{"A", "B"}) {
		t.Errorf("Members = %v, want [A B]", got)
	}
}

func TestLeave(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Registry)
		roomID    string
		connID    string
		wantLeft  bool
		wantEmpty bool
	}{
		{
			name:     "unknown room",
			setup:    func(r *Registry) {},
			roomID:   "nope",
			connID:   "A",
			wantLeft: false,
		},
		{
			name: "not a member",
			setup: func(r *Registry) {
				r.Join("hearing-1", "A")
			},
			roomID:   "hearing-1",
			connID:   "B",
			wantLeft: false,
		},
		{
			name: "leaves others behind",
			setup: func(r *Registry) {
				r.Join("hearing-1", "A")
				r.Join("hearing-1", "B")
			},
			roomID:    "hearing-1",
			connID:    "A",
			wantLeft:  true,
			wantEmpty: false,
		},
		{
			name: "last participant empties the room",
			setup: func(r *Registry) {
				r.Join("hearing-1", "A")
			},
			roomID:    "hearing-1",
			connID:    "A",
			wantLeft:  true,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			tt.setup(r)

			left, empty := r.Leave(tt.roomID, tt.connID)
			if left != tt.wantLeft || empty != tt.wantEmpty {
				t.Errorf("Leave = (%v, %v), want (%v, %v)", left, empty, tt.wantLeft, tt.wantEmpty)
			}
		})
	}
}

func TestEmptyRoomIsDeleted(t *testing.T) {
	r := New()
	r.Join("hearing-1", "A")
	r.Leave("hearing-1", "A")

	if r.RoomCount() != 0 {
		t.Fatalf("RoomCount = %d, want 0", r.RoomCount())
	}

	// A fresh join to the same ID starts over with no peers.
	res := r.Join("hearing-1", "B")
	if !res.Created {
		t.Error("join after deletion should create the room again")
	}
	if len(res.Peers) != 0 {
		t.Errorf("fresh room should have no peers, got %v", res.Peers)
	}
}

func TestDisconnectCleansAllRooms(t *testing.T) {
	r := New()
	r.Join("hearing-1", "A")
	r.Join("hearing-1", "B")
	r.Join("hearing-2", "A")
	r.Join("standby", "A")

	deps := r.Disconnect("A")
	if len(deps) != 3 {
		t.Fatalf("got %d departures, want 3", len(deps))
	}

	byRoom := make(map[string]bool, len(deps))
	for _, d := range deps {
		byRoom[d.RoomID] = d.Empty
	}
	if empty, ok := byRoom["hearing-1"]; !ok || empty {
		t.Errorf("hearing-1 departure = (%v, %v), want present and not empty", byRoom["hearing-1"], ok)
	}
	if empty, ok := byRoom["hearing-2"]; !ok || !empty {
		t.Errorf("hearing-2 departure = (%v, %v), want present and empty", byRoom["hearing-2"], ok)
	}
	if empty, ok := byRoom["standby"]; !ok || !empty {
		t.Errorf("standby departure = (%v, %v), want present and empty", byRoom["standby"], ok)
	}

	if r.RoomCount() != 1 {
		t.Errorf("RoomCount = %d, want 1", r.RoomCount())
	}
	if got := r.Members("hearing-1"); !equal(got, []string{"B"}) {
		t.Errorf("hearing-1 members = %v, want [B]", got)
	}

	// A second disconnect is a no-op.
	if deps := r.Disconnect("A"); deps != nil {
		t.Errorf("repeat disconnect returned %v, want nil", deps)
	}
}

func TestDisconnectScenario(t *testing.T) {
	// Three connections join "hearing-42" in order, then A disconnects.
	r := New()
	r.Join("hearing-42", "A")
	r.Join("hearing-42", "B")
	r.Join("hearing-42", "C")

	deps := r.Disconnect("A")
	if len(deps) != 1 {
		t.Fatalf("got %d departures, want 1", len(deps))
	}
	if deps[0].RoomID != "hearing-42" || deps[0].Empty {
		t.Errorf("departure = %+v, want hearing-42, not empty", deps[0])
	}
	if got := sorted(r.Members("hearing-42")); !equal(got, []string{"B", "C"}) {
		t.Errorf("remaining members = %v, want [B C]", got)
	}
}

func TestPeersExcludesCaller(t *testing.T) {
	r := New()
	r.Join("hearing-1", "A")
	r.Join("hearing-1", "B")
	r.Join("hearing-1", "C")

	if got := sorted(r.Peers("hearing-1", "B")); !equal(got, []string{"A", "C"}) {
		t.Errorf("Peers = %v, want [A C]", got)
	}
	if got := r.Peers("unknown", "A"); got != nil {
		t.Errorf("Peers of unknown room = %v, want nil", got)
	}
}
