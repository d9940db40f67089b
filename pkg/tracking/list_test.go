package tracking

import (
	"testing"

	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/collerrors"
)

func TestListRangeRemovalEmitsDescendingIndices(t *testing.T) {
	// [10,20,30,40,50], RemoveRange(1,3) ->
	// {Update, [Removal(3,40), Removal(2,30), Removal(1,20)]}.
	l := NewList[int](0, eqInt)
	l.SetChangeCollectionEnabled(true)
	l.AddRange([]int{10, 20, 30, 40, 50})
	l.CaptureChangesAndClean()

	if err := l.RemoveRange(1, 3); err != nil {
		t.Fatal(err)
	}
	cs := l.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeUpdate {
		t.Fatalf("Type() = %v, want Update", cs.Type())
	}
	if cs.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", cs.Count())
	}
	wantIdx := []int{3, 2, 1}
	wantItem := []int{40, 30, 20}
	for i, c := range cs.Changes() {
		idx, _ := c.Index()
		item, _ := c.PreviousItem()
		if idx != wantIdx[i] || item != wantItem[i] {
			t.Fatalf("change %d = (index=%d, item=%d), want (%d, %d)", i, idx, item, wantIdx[i], wantItem[i])
		}
	}
	remaining := l.Items()
	if len(remaining) != 2 || remaining[0] != 10 || remaining[1] != 50 {
		t.Fatalf("remaining = %v, want [10 50]", remaining)
	}
}

func TestListClearDescendingOrder(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.SetChangeCollectionEnabled(true)
	l.AddRange([]int{1, 2, 3})
	l.CaptureChangesAndClean()

	l.Clear()
	cs := l.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeClear {
		t.Fatalf("Type() = %v, want Clear", cs.Type())
	}
	idx0, _ := cs.Changes()[0].Index()
	idx2, _ := cs.Changes()[2].Index()
	if idx0 != 2 || idx2 != 0 {
		t.Fatalf("Clear order = [%d ... %d], want [2 ... 0]", idx0, idx2)
	}
}

func TestListSetNoopSuppression(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.SetChangeCollectionEnabled(true)
	l.Add(1)
	l.CaptureChangesAndClean()

	if err := l.Set(0, 1); err != nil {
		t.Fatal(err)
	}
	if l.IsDirty() {
		t.Fatal("no-op Set must not mark dirty")
	}
	cs := l.CaptureChangesAndClean()
	if cs.Count() != 0 {
		t.Fatalf("no-op Set emitted %d changes, want 0", cs.Count())
	}

	if err := l.Set(0, 2); err != nil {
		t.Fatal(err)
	}
	cs = l.CaptureChangesAndClean()
	if cs.Count() != 1 || cs.Changes()[0].Reason() != changeset.SortedChangeReasonReplacement {
		t.Fatalf("Set with new value: got %v", cs.Changes())
	}
}

func TestListRemoveAtEmptyingListStaysUpdate(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.SetChangeCollectionEnabled(true)
	l.Add(1)
	l.CaptureChangesAndClean()

	if err := l.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	cs := l.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeUpdate {
		t.Fatalf("Type() = %v, want Update — a single RemoveAt never signals OnSourceCleared", cs.Type())
	}
	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", cs.Count())
	}
}

func TestListSetAtCountAppends(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.Add(1)
	if err := l.Set(1, 2); err != nil {
		t.Fatal(err)
	}
	if l.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", l.Count())
	}
	v, _ := l.At(1)
	if v != 2 {
		t.Fatalf("At(1) = %d, want 2", v)
	}
}

func TestListMoveEmitsSingleMovement(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.SetChangeCollectionEnabled(true)
	l.AddRange([]int{1, 2, 3})
	l.CaptureChangesAndClean()

	if err := l.Move(0, 2); err != nil {
		t.Fatal(err)
	}
	cs := l.CaptureChangesAndClean()
	if cs.Count() != 1 {
		t.Fatalf("Move emitted %d changes, want 1", cs.Count())
	}
	c := cs.Changes()[0]
	if c.Reason() != changeset.SortedChangeReasonMovement {
		t.Fatalf("reason = %v, want Movement", c.Reason())
	}
	oldIdx, _ := c.PreviousIndex()
	newIdx, _ := c.Index()
	item, _ := c.Item()
	if oldIdx != 0 || newIdx != 2 || item != 1 {
		t.Fatalf("Movement(%d -> %d, item=%d), want (0 -> 2, item=1)", oldIdx, newIdx, item)
	}
	if got := l.Items(); got[0] != 2 || got[1] != 3 || got[2] != 1 {
		t.Fatalf("Items() = %v, want [2 3 1]", got)
	}
}

func TestListIndexOutOfRange(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.Add(1)
	if _, err := l.At(5); err != collerrors.ErrIndexOutOfRange {
		t.Fatalf("At(5) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := l.RemoveAt(5); err != collerrors.ErrIndexOutOfRange {
		t.Fatalf("RemoveAt(5) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestListRemoveRangeInvalidArgument(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.AddRange([]int{1, 2, 3})
	if err := l.RemoveRange(1, 10); err != collerrors.ErrInvalidArgument {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestListInsertShiftsElements(t *testing.T) {
	l := NewList[int](0, eqInt)
	l.AddRange([]int{1, 2, 4})
	if err := l.Insert(2, 3); err != nil {
		t.Fatal(err)
	}
	if got := l.Items(); got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Fatalf("Items() = %v, want [1 2 3 4]", got)
	}
}
