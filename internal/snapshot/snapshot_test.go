package snapshot_test

import (
	"errors"
	"path/filepath"
	"testing"

	"irkit/internal/attr"
	"irkit/internal/dialect"
	"irkit/internal/ir"
	"irkit/internal/snapshot"
)

func demoRegistry(t *testing.T) *ir.Registry {
	t.Helper()
	reg := ir.NewRegistry()
	if err := dialect.Register(reg); err != nil {
		t.Fatal(err)
	}
	return reg
}

// branchyModule builds a module whose entry block branches forward to a
// block with an argument, exercising successors and block-argument tables.
func branchyModule() *ir.Operation {
	entry := ir.NewBlock()
	dest := ir.NewBlock(attr.I64())

	c := dialect.NewConstantInt(7, 64)
	entry.PushBack(c)
	entry.PushBack(dialect.NewBranch(dest, c.Result(0)))
	dest.PushBack(dialect.NewAddI(dest.Arg(0), dest.Arg(0)))

	return ir.New(dialect.Module, nil, nil, nil, nil,
		[]*ir.Region{ir.NewRegion(entry, dest)})
}

func TestSnapshot_RoundTrip(t *testing.T) {
	reg := demoRegistry(t)
	module := branchyModule()
	before := ir.DumpString(module)

	data, err := snapshot.Encode(module)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := snapshot.Decode(data, reg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got := ir.DumpString(back); got != before {
		t.Errorf("round trip changed structure:\nbefore:\n%s\nafter:\n%s", before, got)
	}
	if err := ir.Verify(back); err != nil {
		t.Errorf("decoded module fails verification: %v", err)
	}
}

func TestSnapshot_UnknownKind(t *testing.T) {
	// A registry missing arith kinds cannot decode the snapshot.
	module := branchyModule()
	data, err := snapshot.Encode(module)
	if err != nil {
		t.Fatal(err)
	}

	bare := ir.NewRegistry()
	bare.MustRegister(dialect.Module)

	_, err = snapshot.Decode(data, bare)
	var unknown *snapshot.UnknownKindError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownKindError", err)
	}
	if unknown.Kind != "arith.constant" {
		t.Errorf("unknown kind = %q, want arith.constant", unknown.Kind)
	}
}

func TestSnapshot_EncodeRejectsDanglingOperand(t *testing.T) {
	// An operand defined outside the encoded subtree cannot be flattened.
	c := dialect.NewConstantInt(1, 64)
	add := dialect.NewAddI(c.Result(0), c.Result(0))
	m := dialect.NewModule()
	dialect.Body(m).PushBack(add) // c stays outside

	_, err := snapshot.Encode(m)
	var unresolved *snapshot.UnresolvedRefError
	if !errors.As(err, &unresolved) {
		t.Fatalf("err = %v, want UnresolvedRefError", err)
	}
}

func TestSnapshot_DigestIsContentAddressed(t *testing.T) {
	a1, err := snapshot.Encode(branchyModule())
	if err != nil {
		t.Fatal(err)
	}
	a2, err := snapshot.Encode(branchyModule())
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Sum(a1) != snapshot.Sum(a2) {
		t.Error("identical modules should produce identical digests")
	}

	other := dialect.NewModule()
	dialect.Body(other).PushBack(dialect.NewConstantInt(1, 64))
	b, err := snapshot.Encode(other)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Sum(a1) == snapshot.Sum(b) {
		t.Error("different modules should produce different digests")
	}
}

func TestDiskCache_PutGet(t *testing.T) {
	cache, err := snapshot.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	data, err := snapshot.Encode(branchyModule())
	if err != nil {
		t.Fatal(err)
	}
	key := snapshot.Sum(data)

	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("Get before Put = (ok=%v, err=%v), want miss", ok, err)
	}
	if err := cache.Put(key, data); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get after Put = (ok=%v, err=%v)", ok, err)
	}
	if string(got) != string(data) {
		t.Error("cache returned different bytes")
	}

	// The cached bytes decode like the originals.
	if _, err := snapshot.Decode(got, demoRegistry(t)); err != nil {
		t.Errorf("decode cached snapshot: %v", err)
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	cache, err := snapshot.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	data, err := snapshot.Encode(branchyModule())
	if err != nil {
		t.Fatal(err)
	}
	key := snapshot.Sum(data)
	if err := cache.Put(key, data); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("Get after DropAll = (ok=%v, err=%v), want miss", ok, err)
	}

	// The cache stays usable after a drop.
	if err := cache.Put(key, data); err != nil {
		t.Fatalf("put after drop: %v", err)
	}
	if _, ok, err := cache.Get(key); err != nil || !ok {
		t.Fatalf("Get after re-Put = (ok=%v, err=%v), want hit", ok, err)
	}
}
