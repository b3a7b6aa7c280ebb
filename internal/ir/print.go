package ir

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a deterministic, human-readable rendering of the operation and
// everything nested in it. Values are numbered %0, %1, ... in definition
// order, blocks ^bb0, ^bb1, ... in print order. This is a debug printer, not
// a parseable syntax.
func Dump(w io.Writer, op *Operation) error {
	p := &printer{
		w:      w,
		names:  make(map[Value]string),
		blocks: make(map[*Block]string),
	}
	p.printOp(op, 0)
	return p.err
}

// DumpString is Dump into a string.
func DumpString(op *Operation) string {
	var sb strings.Builder
	_ = Dump(&sb, op)
	return sb.String()
}

type printer struct {
	w         io.Writer
	names     map[Value]string
	blocks    map[*Block]string
	nextVal   int
	nextBlock int
	err       error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) valueName(v Value) string {
	if name, ok := p.names[v]; ok {
		return name
	}
	name := fmt.Sprintf("%%%d", p.nextVal)
	p.nextVal++
	p.names[v] = name
	return name
}

func (p *printer) blockName(b *Block) string {
	if name, ok := p.blocks[b]; ok {
		return name
	}
	name := fmt.Sprintf("^bb%d", p.nextBlock)
	p.nextBlock++
	p.blocks[b] = name
	return name
}

func (p *printer) printOp(op *Operation, indent int) {
	pad := strings.Repeat("  ", indent)
	p.printf("%s", pad)

	if n := op.NumResults(); n > 0 {
		names := make([]string, n)
		for i, res := range op.Results() {
			names[i] = p.valueName(res)
		}
		p.printf("%s = ", strings.Join(names, ", "))
	}

	p.printf("%q(", op.Name())
	for i, v := range op.Operands() {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", p.valueName(v))
	}
	p.printf(")")

	if succs := op.Successors(); len(succs) > 0 {
		names := make([]string, len(succs))
		for i, s := range succs {
			names[i] = p.blockName(s)
		}
		p.printf("[%s]", strings.Join(names, ", "))
	}

	if op.Attrs().Len() > 0 {
		p.printf(" {")
		for i := 0; i < op.Attrs().Len(); i++ {
			e := op.Attrs().At(i)
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s = %s", e.Name, e.Value)
		}
		p.printf("}")
	}

	for _, region := range op.Regions() {
		p.printf(" ({\n")
		p.printRegion(region, indent+1)
		p.printf("%s})", pad)
	}

	p.printf(" : (")
	for i, v := range op.Operands() {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", v.Type())
	}
	p.printf(") -> (")
	for i, res := range op.Results() {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", res.Type())
	}
	p.printf(")\n")
}

func (p *printer) printRegion(region *Region, indent int) {
	// Pre-assign block names so forward successor references print stably.
	for _, b := range region.Blocks() {
		p.blockName(b)
	}
	pad := strings.Repeat("  ", indent)
	for _, b := range region.Blocks() {
		p.printf("%s%s", pad, p.blockName(b))
		if len(b.Args()) > 0 {
			p.printf("(")
			for i, arg := range b.Args() {
				if i > 0 {
					p.printf(", ")
				}
				p.printf("%s: %s", p.valueName(arg), arg.Type())
			}
			p.printf(")")
		}
		p.printf(":\n")
		for _, op := range b.Ops() {
			p.printOp(op, indent+1)
		}
	}
}
