package internal

// eventsByID builds a uuid lookup over all identified events.
func eventsByID(events []Event) map[string]*Event {
	byID := make(map[string]*Event, len(events))
	for i := range events {
		if events[i].UUID != "" {
			byID[events[i].UUID] = &events[i]
		}
	}
	return byID
}

// ActiveEventIDs determines the single live root-to-tail chain through the
// conversation tree. The transcript is an append-only log: a rewind appends a
// new branch parented at an earlier event, so the most recent identified
// event is the current head. Walking parentUuid links backward from it
// yields exactly the active path; sibling branches are left out.
//
// If no event carries a uuid the returned set is empty, which callers must
// treat as "include everything" rather than "include nothing".
func ActiveEventIDs(events []Event) map[string]bool {
	byID := eventsByID(events)

	var head *Event
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].UUID != "" {
			head = &events[i]
			break
		}
	}
	if head == nil {
		return map[string]bool{}
	}

	active := make(map[string]bool)
	for ev := head; ev != nil; {
		if active[ev.UUID] {
			// Cycle guard for corrupt parent links.
			break
		}
		active[ev.UUID] = true
		if ev.ParentUUID == "" {
			break
		}
		ev = byID[ev.ParentUUID]
	}
	return active
}

// onActivePath reports whether an event id belongs to the active path. An
// empty set means id tracking is absent from the log, in which case every
// event is considered active.
func onActivePath(active map[string]bool, id string) bool {
	if len(active) == 0 {
		return true
	}
	return active[id]
}
