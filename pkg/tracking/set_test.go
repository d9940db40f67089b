package tracking

import (
	"testing"

	"github.com/mnohosten/changetrack/pkg/changeset"
)

func TestSetAdditionsThenClearEmitsClearClassification(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)

	s.Add(1)
	s.Add(2)
	s.Add(1) // duplicate, no-op

	cs := s.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeUpdate || cs.Count() != 2 {
		t.Fatalf("first capture = %v/%d, want Update/2", cs.Type(), cs.Count())
	}
	if s.IsDirty() {
		t.Fatal("IsDirty() should be false right after capture")
	}

	s.Clear()
	cs2 := s.CaptureChangesAndClean()
	if cs2.Type() != changeset.TypeClear {
		t.Fatalf("clear capture type = %v, want Clear", cs2.Type())
	}
	seen := map[int]bool{}
	for _, c := range cs2.Changes() {
		if !c.IsRemoval() {
			t.Fatalf("clear batch contains a non-removal: %v", c.Reason())
		}
		item, _ := c.Item()
		seen[item] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("clear batch missing removals: %v", seen)
	}
}

func TestSetDuplicateAddIsNoop(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.Add(1)
	s.CaptureChangesAndClean()

	if s.Add(1) {
		t.Fatal("Add should report false for an existing element")
	}
	if s.IsDirty() {
		t.Fatal("duplicate Add must not mark the set dirty")
	}
	cs := s.CaptureChangesAndClean()
	if cs.Count() != 0 {
		t.Fatalf("expected no changes from a no-op add, got %d", cs.Count())
	}
}

func TestSetDisabledChangeCollectionStillMutatesButBuffersNothing(t *testing.T) {
	s := NewSet[int](0)
	// change collection left disabled (default)
	s.Add(1)
	s.Add(2)
	if !s.Contains(1) || !s.Contains(2) {
		t.Fatal("storage must mutate even when change collection is disabled")
	}
	if !s.IsDirty() {
		t.Fatal("dirty flag must still reflect mutations while disabled")
	}
	cs := s.CaptureChangesAndClean()
	if cs.Count() != 0 {
		t.Fatalf("disabled collection must capture empty change set, got %d changes", cs.Count())
	}
}

func TestSetDisablingDiscardsBufferedChanges(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.Add(1)
	s.SetChangeCollectionEnabled(false)
	s.SetChangeCollectionEnabled(true)
	cs := s.CaptureChangesAndClean()
	if cs.Count() != 0 {
		t.Fatalf("re-enabling must start a fresh empty buffer, got %d changes", cs.Count())
	}
}

func TestSetUnionExceptIntersectSymmetric(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.UnionWith([]int{1, 2, 3})
	cs := s.CaptureChangesAndClean()
	if cs.Count() != 3 {
		t.Fatalf("UnionWith: got %d changes, want 3", cs.Count())
	}

	s.ExceptWith([]int{2})
	cs = s.CaptureChangesAndClean()
	if cs.Count() != 1 || !cs.Changes()[0].IsRemoval() {
		t.Fatalf("ExceptWith: got %v", cs.Changes())
	}
	if s.Contains(2) {
		t.Fatal("ExceptWith should have removed 2")
	}

	s.IntersectWith([]int{1})
	cs = s.CaptureChangesAndClean()
	if cs.Count() != 1 || s.Contains(3) {
		t.Fatalf("IntersectWith failed to drop 3: count=%d", cs.Count())
	}

	s.SymmetricExceptWith([]int{1, 5})
	cs = s.CaptureChangesAndClean()
	if s.Contains(1) || !s.Contains(5) {
		t.Fatal("SymmetricExceptWith should toggle 1 out and 5 in")
	}
	if cs.Count() != 2 {
		t.Fatalf("SymmetricExceptWith: got %d changes, want 2", cs.Count())
	}
}

func TestSetResetYieldsResetClassification(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.UnionWith([]int{1, 2})
	s.CaptureChangesAndClean()

	s.Reset([]int{3, 4})
	cs := s.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeReset {
		t.Fatalf("Reset() classification = %v, want Reset", cs.Type())
	}
	if s.Contains(1) || s.Contains(2) || !s.Contains(3) || !s.Contains(4) {
		t.Fatal("Reset did not replace contents correctly")
	}
}

func TestSetExceptWithNoopAfterEmptyingRemoveStaysUpdate(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.Add(1)
	s.CaptureChangesAndClean()

	s.Remove(1) // empties the set via a single Remove, which must not signal Clear
	s.ExceptWith(nil)
	cs := s.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeUpdate {
		t.Fatalf("Type() = %v, want Update — ExceptWith removed nothing of its own", cs.Type())
	}
}

func TestSetIntersectWithNoopAfterEmptyingRemoveStaysUpdate(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.Add(1)
	s.CaptureChangesAndClean()

	s.Remove(1)
	s.IntersectWith(nil)
	cs := s.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeUpdate {
		t.Fatalf("Type() = %v, want Update — IntersectWith removed nothing of its own", cs.Type())
	}
}

func TestSetResetToEmptyYieldsClear(t *testing.T) {
	s := NewSet[int](0)
	s.SetChangeCollectionEnabled(true)
	s.UnionWith([]int{1, 2})
	s.CaptureChangesAndClean()

	s.Reset(nil)
	cs := s.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeClear {
		t.Fatalf("Reset(nil) classification = %v, want Clear", cs.Type())
	}
}
