package subject

import (
	"testing"

	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
)

func TestSetSubscribeDeliversSnapshotThenLive(t *testing.T) {
	s := NewSet[int](0)
	s.Add(1)
	s.Add(2)

	var received []changeset.DistinctChangeSet[int]
	s.Subscribe(reactive.Observer[changeset.DistinctChangeSet[int]]{
		OnNext: func(cs changeset.DistinctChangeSet[int]) { received = append(received, cs) },
	})

	if len(received) != 1 || received[0].Type() != changeset.TypeReset || received[0].Count() != 2 {
		t.Fatalf("snapshot = %+v", received)
	}

	s.Add(3)
	if len(received) != 2 || received[1].Count() != 1 {
		t.Fatalf("live change = %+v", received)
	}
}

func TestSetCollectionChangedTicksOncePerMutation(t *testing.T) {
	s := NewSet[int](0)
	ticks := 0
	s.Subscribe(reactive.Observer[changeset.DistinctChangeSet[int]]{})
	unsub := s.CollectionChanged().Subscribe(reactive.Observer[struct{}]{
		OnNext: func(struct{}) { ticks++ },
	})
	defer unsub.Dispose()

	s.Add(1)
	s.Add(2)
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}
}

func TestSetSuspendNotificationsCoalesces(t *testing.T) {
	s := NewSet[int](0)
	var received []changeset.DistinctChangeSet[int]
	s.Subscribe(reactive.Observer[changeset.DistinctChangeSet[int]]{
		OnNext: func(cs changeset.DistinctChangeSet[int]) { received = append(received, cs) },
	})
	received = nil

	handle := s.SuspendNotifications()
	s.Add(1)
	s.Add(2)
	s.Remove(1)
	if len(received) != 0 {
		t.Fatalf("expected no delivery while suspended, got %+v", received)
	}
	handle.Dispose()
	if len(received) != 1 || received[0].Count() != 3 {
		t.Fatalf("expected one coalesced batch of 3 changes, got %+v", received)
	}
	if received[0].Type() != changeset.TypeUpdate {
		t.Fatalf("Type() = %v, want Update", received[0].Type())
	}
}

func TestSetSubscribeDuringSuspensionDefersSnapshot(t *testing.T) {
	s := NewSet[int](0)
	s.Add(1)

	handle := s.SuspendNotifications()
	s.Add(2)

	var received []changeset.DistinctChangeSet[int]
	s.Subscribe(reactive.Observer[changeset.DistinctChangeSet[int]]{
		OnNext: func(cs changeset.DistinctChangeSet[int]) { received = append(received, cs) },
	})
	if len(received) != 0 {
		t.Fatalf("expected no delivery before resume, got %+v", received)
	}

	handle.Dispose()
	if len(received) != 1 || received[0].Count() != 2 {
		t.Fatalf("expected one deferred snapshot of 2 items, got %+v", received)
	}
}

func TestSetDisposeDisablesChangeCollectionAfterLastUnsubscribe(t *testing.T) {
	s := NewSet[int](0)
	sub := s.Subscribe(reactive.Observer[changeset.DistinctChangeSet[int]]{})
	sub.Dispose()
	if s.inner.IsChangeCollectionEnabled() {
		t.Fatal("change collection should be disabled once the last subscriber unsubscribes")
	}
	s.Add(1)
	if s.Snapshot()[0] != 1 {
		t.Fatal("Add should still mutate state once change collection is disabled")
	}
}
