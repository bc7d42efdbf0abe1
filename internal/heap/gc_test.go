package heap

import "testing"

func TestAllocationAlignmentAndRegistration(t *testing.T) {
	h, _ := newTestHeap()
	obj := &leafThing{Header: NewHeader(FormatUInt32Array, 4)}
	h.Allocate(obj, 4, false)
	if obj.HeapHeader().Generation() != Hatchery {
		t.Errorf("freshly allocated object should be in Hatchery, got %s", obj.HeapHeader().Generation())
	}
}

func TestMinorCollectionPromotesRootedSurvivors(t *testing.T) {
	h, roots := newTestHeap()
	obj := &leafThing{Header: NewHeader(FormatUInt32Array, 1)}
	h.Allocate(obj, 1, true)

	local := NewLocal[*leafThing](roots, obj)
	defer local.Release()

	h.MinorCollect()

	if obj.HeapHeader().Generation() != Nursery {
		t.Errorf("rooted object should survive into Nursery, got %s", obj.HeapHeader().Generation())
	}
}

func TestMinorCollectionDropsUnrootedObjects(t *testing.T) {
	h, _ := newTestHeap()
	obj := &leafThing{Header: NewHeader(FormatUInt32Array, 1)}
	h.Allocate(obj, 1, true)

	h.MinorCollect()

	for _, t2 := range h.nursery.Things() {
		if t2 == Thing(obj) {
			t.Error("unrooted object should not survive a minor collection")
		}
	}
}

func TestScanReachesChildren(t *testing.T) {
	h, roots := newTestHeap()
	child := &leafThing{Header: NewHeader(FormatUInt32Array, 1)}
	parent := &edgeThing{Header: NewHeader(FormatFrame, 1), child: child}
	h.Allocate(child, 1, true)
	h.Allocate(parent, 1, true)

	local := NewLocal[*edgeThing](roots, parent)
	defer local.Release()

	h.MinorCollect()

	found := false
	for _, t2 := range h.nursery.Things() {
		if t2 == Thing(child) {
			found = true
		}
	}
	if !found {
		t.Error("child reachable only through parent's Scan should survive")
	}
}

func TestPromotionAfterConfiguredSurvivals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PromoteAfter = 2
	roots := NewRootChain()
	h := NewHeap(cfg, roots)

	obj := &leafThing{Header: NewHeader(FormatUInt32Array, 1)}
	h.Allocate(obj, 1, true)
	local := NewLocal[*leafThing](roots, obj)
	defer local.Release()

	h.MajorCollect() // hatchery -> nursery (survivals=1), not yet promoted
	if obj.HeapHeader().Generation() != Nursery {
		t.Fatalf("expected Nursery after first survival, got %s", obj.HeapHeader().Generation())
	}
	h.MajorCollect() // survivals=2 -> promoted to tenured
	if obj.HeapHeader().Generation() != Tenured {
		t.Errorf("expected Tenured after %d survivals, got %s", cfg.PromoteAfter, obj.HeapHeader().Generation())
	}
}

func TestWeakReferenceNulledOnCollection(t *testing.T) {
	h, _ := newTestHeap()
	obj := &leafThing{Header: NewHeader(FormatUInt32Array, 1)}
	h.Allocate(obj, 1, true)

	weak := NewWeak[*leafThing](h, obj)
	if weak.Get() != obj {
		t.Fatal("weak reference should resolve before any collection")
	}

	h.MinorCollect()

	var zero *leafThing
	if weak.Get() != zero {
		t.Error("weak reference should resolve to nil once its referent is unrooted and collected")
	}
}
