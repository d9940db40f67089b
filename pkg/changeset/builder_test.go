package changeset

import "testing"

func TestDistinctBuilderClassifiesUpdate(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	if err := b.AddChange(NewDistinctAddition(1)); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChange(NewDistinctAddition(2)); err != nil {
		t.Fatal(err)
	}
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeUpdate {
		t.Fatalf("Type() = %v, want Update", cs.Type())
	}
	if cs.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", cs.Count())
	}
}

func TestDistinctBuilderClassifiesClear(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	b.AddChange(NewDistinctRemoval(1))
	b.AddChange(NewDistinctRemoval(2))
	b.OnSourceCleared()
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeClear {
		t.Fatalf("Type() = %v, want Clear", cs.Type())
	}
}

func TestDistinctBuilderClassifiesReset(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	b.AddChange(NewDistinctRemoval(1))
	b.AddChange(NewDistinctRemoval(2))
	b.OnSourceCleared()
	b.AddChange(NewDistinctAddition(3))
	b.AddChange(NewDistinctAddition(4))
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeReset {
		t.Fatalf("Type() = %v, want Reset", cs.Type())
	}
	if cs.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", cs.Count())
	}
}

func TestDistinctBuilderEmptyWhenNothingBuffered(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeUpdate || cs.Count() != 0 {
		t.Fatalf("empty build = %v/%d, want Update/0", cs.Type(), cs.Count())
	}
}

func TestDistinctBuilderResetsAfterBuild(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	b.AddChange(NewDistinctAddition(1))
	b.BuildAndClear(false)
	cs := b.BuildAndClear(false)
	if cs.Count() != 0 || cs.Type() != TypeUpdate {
		t.Fatalf("builder not reset after BuildAndClear: %v/%d", cs.Type(), cs.Count())
	}
}

func TestDistinctBuilderReuseBufferCopies(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](4)
	b.AddChange(NewDistinctAddition(1))
	cs := b.BuildAndClear(true)
	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", cs.Count())
	}
	// builder must still be usable after a reuseBuffer build
	b.AddChange(NewDistinctAddition(2))
	cs2 := b.BuildAndClear(false)
	if cs2.Count() != 1 {
		t.Fatalf("Count() after reuse = %d, want 1", cs2.Count())
	}
	if item, _ := cs.Changes()[0].Item(); item != 1 {
		t.Fatalf("first change set mutated by later use: got %d, want 1", item)
	}
}

func TestDistinctBuilderClearDropsClassification(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	b.AddChange(NewDistinctRemoval(1))
	b.OnSourceCleared()
	b.Clear()
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeUpdate || cs.Count() != 0 {
		t.Fatalf("Clear() did not reset builder: %v/%d", cs.Type(), cs.Count())
	}
}

func TestDistinctBuilderRejectsInvalidVariant(t *testing.T) {
	b := NewDistinctChangeSetBuilder[int](0)
	var zero DistinctChange[int]
	if err := b.AddChange(zero); err == nil {
		t.Fatal("expected error adding zero-value change")
	}
	if b.Count() != 0 {
		t.Fatalf("Count() = %d after rejected add, want 0", b.Count())
	}
}

func TestKeyedBuilderResetAfterClear(t *testing.T) {
	// Initial {a:1,b:2}; Reset({c:3,d:4}) -> one Reset change set.
	b := NewKeyedChangeSetBuilder[string, int](0)
	b.AddChange(NewKeyedRemoval("a", 1))
	b.AddChange(NewKeyedRemoval("b", 2))
	b.OnSourceCleared()
	b.AddChange(NewKeyedAddition("c", 3))
	b.AddChange(NewKeyedAddition("d", 4))
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeReset {
		t.Fatalf("Type() = %v, want Reset", cs.Type())
	}
	if cs.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", cs.Count())
	}
}

func TestSortedBuilderMovementNeverTriggersReset(t *testing.T) {
	b := NewSortedChangeSetBuilder[string](0)
	b.AddChange(NewSortedRemoval(0, "x"))
	b.OnSourceCleared()
	b.AddChange(NewSortedMovement(0, 0, "y"))
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeUpdate {
		t.Fatalf("Type() = %v, want Update (Movement must not synthesize Reset)", cs.Type())
	}
}

func TestSortedBuilderRangeRemovalDescendingIndices(t *testing.T) {
	// [10,20,30,40,50], RemoveRange(1,3) -> descending-index removals.
	b := NewSortedChangeSetBuilder[int](0)
	b.AddChange(NewSortedRemoval(3, 40))
	b.AddChange(NewSortedRemoval(2, 30))
	b.AddChange(NewSortedRemoval(1, 20))
	cs := b.BuildAndClear(false)
	if cs.Type() != TypeUpdate {
		t.Fatalf("Type() = %v, want Update", cs.Type())
	}
	idx0, _ := cs.Changes()[0].Index()
	idx2, _ := cs.Changes()[2].Index()
	if idx0 != 3 || idx2 != 1 {
		t.Fatalf("removal order not preserved: first index %d, last index %d", idx0, idx2)
	}
}
