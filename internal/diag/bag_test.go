package diag_test

import (
	"sync"
	"testing"

	"irkit/internal/diag"
)

func TestBag_AddRespectsCapacity(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.IRInfo, Message: "w"})
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want capacity 2", bag.Len())
	}
}

func TestBag_HasErrors(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.IRInfo})
	if bag.HasErrors() {
		t.Error("warnings alone are not errors")
	}
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.RwEraseHasUses})
	if !bag.HasErrors() {
		t.Error("bag with an error should report HasErrors")
	}
}

func TestBag_SortAndDedup(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.RwEraseHasUses, Ref: "m/r0/bb0/2"})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.ImmFrozenMutation, Ref: "m/r0/bb0/1"})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.RwEraseHasUses, Ref: "m/r0/bb0/2"})

	bag.Sort()
	bag.Dedup()

	if bag.Len() != 2 {
		t.Fatalf("Len after dedup = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Ref != "m/r0/bb0/1" {
		t.Error("sort should order by ref")
	}
}

func TestBag_Merge(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IRVerifyFailed})
	b := diag.NewBag(1)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.IRInfo})

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Len after merge = %d, want 2 (merge must grow capacity)", a.Len())
	}
}

func TestCode_String(t *testing.T) {
	if got := diag.RwUnsupportedOp.String(); got != "IR4003" {
		t.Errorf("RwUnsupportedOp = %q, want IR4003", got)
	}
	if got := diag.ImmFrozenMutation.String(); got != "IR2001" {
		t.Errorf("ImmFrozenMutation = %q, want IR2001", got)
	}
}

func TestBagReporter(t *testing.T) {
	bag := diag.NewBag(4)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.SnapUnknownKind, "op", "unknown kind")
	diag.ReportWarning(r, diag.IRInfo, "", "note")

	if bag.Len() != 2 || !bag.HasErrors() {
		t.Errorf("bag state: len=%d hasErrors=%v", bag.Len(), bag.HasErrors())
	}
	if bag.Items()[0].Ref != "op" {
		t.Error("ref not carried through reporter")
	}
}

func TestSyncReporter(t *testing.T) {
	bag := diag.NewBag(64)
	r := &diag.SyncReporter{Inner: diag.BagReporter{Bag: bag}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			diag.ReportError(r, diag.IRVerifyFailed, "m", "inconsistent")
		}()
	}
	wg.Wait()

	if bag.Len() != 8 {
		t.Errorf("Len = %d, want 8", bag.Len())
	}

	// A reporter without an inner discards silently.
	empty := &diag.SyncReporter{}
	empty.Report(diag.IRInfo, diag.SevInfo, "", "", nil)
}
