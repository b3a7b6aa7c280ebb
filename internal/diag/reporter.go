package diag

import "sync"

// Reporter is the minimal contract for receiving diagnostics from passes.
// Implementations: BagReporter (collects into a Bag), SyncReporter,
// NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, ref string, msg string, notes []Note)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, ref string, msg string) {
	if r != nil {
		r.Report(code, SevError, ref, msg, nil)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, ref string, msg string) {
	if r != nil {
		r.Report(code, SevWarning, ref, msg, nil)
	}
}

// BagReporter writes every report into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, ref string, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Ref: ref, Notes: notes,
	})
}

// SyncReporter serializes Report calls, for passes running concurrently
// over independent modules.
type SyncReporter struct {
	mu    sync.Mutex
	Inner Reporter
}

func (r *SyncReporter) Report(code Code, sev Severity, ref string, msg string, notes []Note) {
	if r.Inner == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Inner.Report(code, sev, ref, msg, notes)
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string, []Note) {}
