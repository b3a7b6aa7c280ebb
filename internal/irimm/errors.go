package irimm

import "fmt"

// UnresolvedValueError reports an operand that was not found in the active
// value map during reconstruction. Reconstruction never substitutes a
// placeholder value.
type UnresolvedValueError struct {
	Op    string
	Value string
}

func (e *UnresolvedValueError) Error() string {
	return fmt.Sprintf("irimm: op %s references value %s before definition", e.Op, e.Value)
}

// UnresolvedBlockError reports a successor that was not found in the active
// block map during reconstruction.
type UnresolvedBlockError struct {
	Op    string
	Index int
}

func (e *UnresolvedBlockError) Error() string {
	return fmt.Sprintf("irimm: op %s references successor %d before definition", e.Op, e.Index)
}
