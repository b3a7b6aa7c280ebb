package snapshot

import (
	"fmt"

	"irkit/internal/diag"
)

// UnknownKindError reports a serialized operation whose kind is not present
// in the registry the decoder was given.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("snapshot: unknown operation kind %q", e.Kind)
}

// Diagnostic renders the error as a reportable diagnostic.
func (e *UnknownKindError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SnapUnknownKind,
		Message:  fmt.Sprintf("unknown operation kind %q", e.Kind),
	}
}

// UnresolvedRefError reports a serialized operand or successor index that
// points outside the tables built so far, which means the snapshot is
// corrupt or was produced by an incompatible encoder.
type UnresolvedRefError struct {
	Kind  string
	What  string // "value" or "block"
	Index int
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("snapshot: operation %q references undefined %s #%d", e.Kind, e.What, e.Index)
}

// Diagnostic renders the error as a reportable diagnostic.
func (e *UnresolvedRefError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SnapUnresolvedRef,
		Message:  e.Error(),
	}
}

// SchemaError reports a snapshot written under a different schema version.
type SchemaError struct {
	Got, Want uint16
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("snapshot: schema %d, decoder expects %d", e.Got, e.Want)
}
