package internal

import "testing"

func TestActiveEventIDs_LinearChain(t *testing.T) {
	events := []Event{
		CreateUserEvent("A", "", "first"),
		CreateAssistantEvent("B", "A", "Edit"),
		CreateUserEvent("C", "B", "second"),
		CreateAssistantEvent("D", "C", "Bash"),
	}

	active := ActiveEventIDs(events)
	for _, id := range []string{"A", "B", "C", "D"} {
		if !active[id] {
			t.Errorf("active set missing %s", id)
		}
	}
	if len(active) != 4 {
		t.Errorf("active set size = %d, want 4", len(active))
	}
}

func TestActiveEventIDs_ExcludesRewoundBranch(t *testing.T) {
	// B' is a sibling branch parented at A; the log's last identified event
	// D descends from B, so B' must be excluded.
	events := []Event{
		CreateUserEvent("A", "", "first"),
		CreateUserEvent("B'", "A", "abandoned"),
		CreateAssistantEvent("X", "B'", "Edit"),
		CreateUserEvent("B", "A", "retried"),
		CreateUserEvent("C", "B", "third"),
		CreateAssistantEvent("D", "C", "Bash"),
	}

	active := ActiveEventIDs(events)
	for _, id := range []string{"A", "B", "C", "D"} {
		if !active[id] {
			t.Errorf("active set missing %s", id)
		}
	}
	for _, id := range []string{"B'", "X"} {
		if active[id] {
			t.Errorf("active set contains rewound event %s", id)
		}
	}
}

func TestActiveEventIDs_HeadIsLastIdentifiedEvent(t *testing.T) {
	// Events without ids after the head must not shift the head.
	events := []Event{
		CreateUserEvent("A", "", "first"),
		CreateUserEvent("B", "A", "second"),
		CreateSnapshotEvent("m1", nil), // no uuid
	}

	active := ActiveEventIDs(events)
	if !active["A"] || !active["B"] || len(active) != 2 {
		t.Errorf("active set = %v, want {A, B}", active)
	}
}

func TestActiveEventIDs_NoIdentifiedEvents(t *testing.T) {
	events := []Event{
		CreateSnapshotEvent("m1", nil),
		CreateSnapshotEvent("m2", nil),
	}

	active := ActiveEventIDs(events)
	if len(active) != 0 {
		t.Errorf("active set size = %d, want 0", len(active))
	}
	// Empty set means "include everything" downstream.
	if !onActivePath(active, "anything") {
		t.Error("onActivePath() = false with empty set, want permissive true")
	}
}

func TestActiveEventIDs_CorruptParentCycle(t *testing.T) {
	events := []Event{
		CreateUserEvent("A", "B", "a"),
		CreateUserEvent("B", "A", "b"),
	}

	// Must terminate and include the walked ids.
	active := ActiveEventIDs(events)
	if !active["B"] || !active["A"] {
		t.Errorf("active set = %v, want both A and B", active)
	}
}

func TestOnActivePath(t *testing.T) {
	active := map[string]bool{"A": true}
	if !onActivePath(active, "A") {
		t.Error("onActivePath(A) = false, want true")
	}
	if onActivePath(active, "B") {
		t.Error("onActivePath(B) = true, want false")
	}
}
