// Package snapshot serializes a module to a compact binary form and back.
// Values and blocks are flattened to index tables; operation kinds travel by
// name and are resolved against a registry on decode, so a snapshot is only
// as portable as the kind set it was written under.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"irkit/internal/attr"
	"irkit/internal/ir"
)

// Increment when the record layout changes.
const schemaVersion uint16 = 1

// Digest identifies a snapshot by content.
type Digest [sha256.Size]byte

// Sum returns the content digest of encoded snapshot bytes.
func Sum(data []byte) Digest { return sha256.Sum256(data) }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

type attrRec struct {
	Kind  uint8
	Bits  uint16
	Int   int64
	Float float64
	Str   string
}

type entryRec struct {
	Name  string
	Value attrRec
}

type opRec struct {
	Kind     string
	Operands []int32
	Results  []attrRec
	Attrs    []entryRec
	Succs    []int32
	Regions  []regionRec
}

type regionRec struct {
	Blocks []blockRec
}

type blockRec struct {
	Args []attrRec
	Ops  []opRec
}

type moduleRec struct {
	Schema uint16
	Root   opRec
}

func attrToRec(a attr.Attribute) attrRec {
	return attrRec{Kind: uint8(a.Kind), Bits: a.Bits, Int: a.Int, Float: a.Float, Str: a.Str}
}

func recToAttr(r attrRec) attr.Attribute {
	return attr.Attribute{Kind: attr.Kind(r.Kind), Bits: r.Bits, Int: r.Int, Float: r.Float, Str: r.Str}
}

// Encode serializes the operation and everything nested in it. The graph
// must be self-contained: an operand defined outside the subtree is an
// unresolved-reference error.
func Encode(root *ir.Operation) ([]byte, error) {
	e := &encoder{
		values: make(map[ir.Value]int32),
		blocks: make(map[*ir.Block]int32),
	}
	rec, err := e.op(root)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(moduleRec{Schema: schemaVersion, Root: rec})
}

type encoder struct {
	values map[ir.Value]int32
	blocks map[*ir.Block]int32
}

func (e *encoder) defineValue(v ir.Value) error {
	id, err := safecast.Conv[int32](len(e.values))
	if err != nil {
		return err
	}
	e.values[v] = id
	return nil
}

func (e *encoder) defineBlock(b *ir.Block) error {
	id, err := safecast.Conv[int32](len(e.blocks))
	if err != nil {
		return err
	}
	e.blocks[b] = id
	return nil
}

// op encodes one operation. Table order is load-bearing: operands resolve
// against values defined so far, nested regions are encoded next, and the
// operation's own results are defined last. The decoder replays the same
// order.
func (e *encoder) op(op *ir.Operation) (opRec, error) {
	rec := opRec{Kind: op.Name()}

	for _, operand := range op.Operands() {
		id, ok := e.values[operand]
		if !ok {
			return opRec{}, &UnresolvedRefError{Kind: op.Name(), What: "value", Index: -1}
		}
		rec.Operands = append(rec.Operands, id)
	}

	for i, succ := range op.Successors() {
		id, ok := e.blocks[succ]
		if !ok {
			return opRec{}, &UnresolvedRefError{Kind: op.Name(), What: "block", Index: i}
		}
		rec.Succs = append(rec.Succs, id)
	}

	attrs := op.Attrs()
	for i := 0; i < attrs.Len(); i++ {
		ent := attrs.At(i)
		rec.Attrs = append(rec.Attrs, entryRec{Name: ent.Name, Value: attrToRec(ent.Value)})
	}

	for _, region := range op.Regions() {
		rr, err := e.region(region)
		if err != nil {
			return opRec{}, err
		}
		rec.Regions = append(rec.Regions, rr)
	}

	for _, res := range op.Results() {
		rec.Results = append(rec.Results, attrToRec(res.Type()))
		if err := e.defineValue(res); err != nil {
			return opRec{}, err
		}
	}
	return rec, nil
}

// region encodes in two phases, blocks and their arguments first, so that
// forward successor references resolve.
func (e *encoder) region(region *ir.Region) (regionRec, error) {
	rec := regionRec{Blocks: make([]blockRec, region.NumBlocks())}
	for i, b := range region.Blocks() {
		if err := e.defineBlock(b); err != nil {
			return regionRec{}, err
		}
		for _, a := range b.Args() {
			rec.Blocks[i].Args = append(rec.Blocks[i].Args, attrToRec(a.Type()))
			if err := e.defineValue(a); err != nil {
				return regionRec{}, err
			}
		}
	}
	for i, b := range region.Blocks() {
		for _, op := range b.Ops() {
			or, err := e.op(op)
			if err != nil {
				return regionRec{}, err
			}
			rec.Blocks[i].Ops = append(rec.Blocks[i].Ops, or)
		}
	}
	return rec, nil
}

// Decode rebuilds a module from snapshot bytes, resolving kind names
// through the registry. A kind the registry does not know fails with
// UnknownKindError; a dangling table index fails with UnresolvedRefError.
func Decode(data []byte, reg *ir.Registry) (*ir.Operation, error) {
	var rec moduleRec
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Schema != schemaVersion {
		return nil, &SchemaError{Got: rec.Schema, Want: schemaVersion}
	}
	d := &decoder{registry: reg}
	return d.op(rec.Root)
}

type decoder struct {
	registry *ir.Registry
	values   []ir.Value
	blocks   []*ir.Block
}

func (d *decoder) op(rec opRec) (*ir.Operation, error) {
	kind, ok := d.registry.Lookup(rec.Kind)
	if !ok {
		return nil, &UnknownKindError{Kind: rec.Kind}
	}

	operands := make([]ir.Value, len(rec.Operands))
	for i, id := range rec.Operands {
		if id < 0 || int(id) >= len(d.values) {
			return nil, &UnresolvedRefError{Kind: rec.Kind, What: "value", Index: int(id)}
		}
		operands[i] = d.values[id]
	}

	successors := make([]*ir.Block, len(rec.Succs))
	for i, id := range rec.Succs {
		if id < 0 || int(id) >= len(d.blocks) {
			return nil, &UnresolvedRefError{Kind: rec.Kind, What: "block", Index: int(id)}
		}
		successors[i] = d.blocks[id]
	}

	attrs := attr.NewDict()
	for _, ent := range rec.Attrs {
		attrs.Set(ent.Name, recToAttr(ent.Value))
	}

	regions := make([]*ir.Region, len(rec.Regions))
	for i, rr := range rec.Regions {
		region, err := d.region(rr)
		if err != nil {
			return nil, err
		}
		regions[i] = region
	}

	resultTypes := make([]attr.Attribute, len(rec.Results))
	for i, ar := range rec.Results {
		resultTypes[i] = recToAttr(ar)
	}

	op := ir.New(kind, operands, resultTypes, attrs, successors, regions)
	for _, res := range op.Results() {
		d.values = append(d.values, res)
	}
	return op, nil
}

func (d *decoder) region(rec regionRec) (*ir.Region, error) {
	blocks := make([]*ir.Block, len(rec.Blocks))
	for i, br := range rec.Blocks {
		argTypes := make([]attr.Attribute, len(br.Args))
		for j, ar := range br.Args {
			argTypes[j] = recToAttr(ar)
		}
		blocks[i] = ir.NewBlock(argTypes...)
		d.blocks = append(d.blocks, blocks[i])
		for _, a := range blocks[i].Args() {
			d.values = append(d.values, a)
		}
	}
	for i, br := range rec.Blocks {
		for _, or := range br.Ops {
			op, err := d.op(or)
			if err != nil {
				return nil, err
			}
			blocks[i].PushBack(op)
		}
	}
	return ir.NewRegion(blocks...), nil
}
