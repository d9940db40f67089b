package tracking

import (
	"testing"

	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/collerrors"
)

func eqInt(a, b int) bool { return a == b }

func TestDictionaryNoopReplaceSuppressed(t *testing.T) {
	// Replacing a key with an equal value must not register as a change.
	d := NewDictionary[string, int](0, eqInt)
	d.SetChangeCollectionEnabled(true)
	d.AddOrReplace("a", 1)
	d.CaptureChangesAndClean()

	d.AddOrReplace("a", 1)
	if d.IsDirty() {
		t.Fatal("no-op AddOrReplace must not mark dirty")
	}
	cs := d.CaptureChangesAndClean()
	if cs.Count() != 0 {
		t.Fatalf("no-op AddOrReplace emitted %d changes, want 0", cs.Count())
	}
}

func TestDictionaryAddOrReplaceEmitsReplacement(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	d.SetChangeCollectionEnabled(true)
	d.AddOrReplace("a", 1)
	d.CaptureChangesAndClean()

	d.AddOrReplace("a", 2)
	cs := d.CaptureChangesAndClean()
	if cs.Count() != 1 {
		t.Fatalf("got %d changes, want 1", cs.Count())
	}
	c := cs.Changes()[0]
	if c.Reason() != changeset.KeyedChangeReasonReplacement {
		t.Fatalf("reason = %v, want Replacement", c.Reason())
	}
	prev, _ := c.Previous()
	cur, _ := c.Current()
	if prev != 1 || cur != 2 {
		t.Fatalf("Replacement(%d -> %d), want (1 -> 2)", prev, cur)
	}
}

func TestDictionaryAddDuplicateKeyFails(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	if err := d.Add("a", 1); err != nil {
		t.Fatal(err)
	}
	if err := d.Add("a", 2); err == nil {
		t.Fatal("expected ErrDuplicateKey")
	} else if err != collerrors.ErrDuplicateKey {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}
	if v, _ := d.Get("a"); v != 1 {
		t.Fatalf("failed Add must leave state unchanged, got %d", v)
	}
}

func TestDictionaryResetAfterClearEmitsResetClassification(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	d.SetChangeCollectionEnabled(true)
	d.AddOrReplaceRange(map[string]int{"a": 1, "b": 2})
	d.CaptureChangesAndClean()

	d.Reset(map[string]int{"c": 3, "d": 4})
	cs := d.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeReset {
		t.Fatalf("Type() = %v, want Reset", cs.Type())
	}
	if cs.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", cs.Count())
	}
	if d.ContainsKey("a") || d.ContainsKey("b") {
		t.Fatal("Reset should drop old keys")
	}
	if v, _ := d.Get("c"); v != 3 {
		t.Fatal("Reset should add new keys")
	}
}

func TestDictionaryRemoveEmptiesToClear(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	d.SetChangeCollectionEnabled(true)
	d.Add("a", 1)
	d.CaptureChangesAndClean()

	d.Remove("a")
	cs := d.CaptureChangesAndClean()
	if cs.Type() != changeset.TypeClear {
		t.Fatalf("Type() = %v, want Clear", cs.Type())
	}
}

func TestDictionaryRemoveValueGatedByEquality(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	d.Add("a", 1)
	if d.RemoveValue("a", 2) {
		t.Fatal("RemoveValue must not delete on value mismatch")
	}
	if !d.ContainsKey("a") {
		t.Fatal("mismatched RemoveValue must leave entry intact")
	}
	if !d.RemoveValue("a", 1) {
		t.Fatal("RemoveValue should delete on matching value")
	}
}

func TestDictionaryRemoveRangeBestEffort(t *testing.T) {
	d := NewDictionary[string, int](0, eqInt)
	d.Add("a", 1)
	d.RemoveRange([]string{"a", "missing"})
	if d.ContainsKey("a") {
		t.Fatal("RemoveRange should have removed a")
	}
}
