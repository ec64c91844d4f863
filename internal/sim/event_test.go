package sim

import "testing"

func TestFeedDeliversInSubscriptionOrder(t *testing.T) {
	var f Feed
	var order []int

	f.Subscribe(func(Event) { order = append(order, 1) })
	f.Subscribe(func(Event) { order = append(order, 2) })
	f.Publish(Event{Kind: EventBlockPlaced})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected delivery order [1 2], got %v", order)
	}
}

func TestFeedIgnoresNilCallback(t *testing.T) {
	var f Feed
	f.Subscribe(nil)

	if f.ListenerCount() != 0 {
		t.Errorf("Expected 0 listeners, got %d", f.ListenerCount())
	}
	f.Publish(Event{Kind: EventBlockPlaced}) // Should not panic
}

func TestPublishStampsEventName(t *testing.T) {
	var f Feed
	var got Event
	f.Subscribe(func(ev Event) { got = ev })

	f.Publish(Event{Kind: EventBlockDestroyed, Tick: 7})

	if got.Name != "block_destroyed" {
		t.Errorf("Expected name \"block_destroyed\", got %q", got.Name)
	}
	if got.Tick != 7 {
		t.Errorf("Expected tick 7, got %d", got.Tick)
	}
}

func TestFeedAllowsReentrantPublish(t *testing.T) {
	var f Feed
	var kinds []EventKind

	f.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventBlockDestroyed {
			f.Publish(Event{Kind: EventQuestAdvanced})
		}
	})
	f.Publish(Event{Kind: EventBlockDestroyed})

	if len(kinds) != 2 || kinds[1] != EventQuestAdvanced {
		t.Errorf("Expected nested publish to be delivered, got %v", kinds)
	}
}

func TestEventKindNames(t *testing.T) {
	if EventBlockThud.String() != "block_thud" {
		t.Errorf("Expected \"block_thud\", got %q", EventBlockThud.String())
	}
	if EventKind(200).String() != "unknown" {
		t.Errorf("Expected \"unknown\" for out-of-range kind, got %q", EventKind(200).String())
	}
}
