package diag

// Note attaches secondary context to a diagnostic.
type Note struct {
	Ref string
	Msg string
}

// Diagnostic is one reported finding. Ref is a stable printable reference to
// the offending operation or value (a path, never a memory address), so
// output is reproducible across runs.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Ref      string
	Notes    []Note
}

// WithNote returns a copy of the diagnostic with an extra note appended.
func (d Diagnostic) WithNote(ref, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Ref: ref, Msg: msg})
	return d
}
