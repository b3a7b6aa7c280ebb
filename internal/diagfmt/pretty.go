package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"irkit/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	refColor  = color.New(color.FgWhite, color.Faint)
)

// Pretty renders diagnostics one per line:
//
//	<SEV> <CODE>: <message>  (at <ref>)
//
// followed by indented notes. Callers wanting a stable order should
// bag.Sort() first.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		sev := d.Severity.String()
		if opts.Color {
			switch {
			case d.Severity >= diag.SevError:
				sev = errColor.Sprint(sev)
			case d.Severity == diag.SevWarning:
				sev = warnColor.Sprint(sev)
			default:
				sev = infoColor.Sprint(sev)
			}
		}
		fmt.Fprintf(w, "%s %s: %s", sev, d.Code, d.Message)
		if d.Ref != "" {
			ref := "(at " + d.Ref + ")"
			if opts.Color {
				ref = refColor.Sprint(ref)
			}
			fmt.Fprintf(w, "  %s", ref)
		}
		fmt.Fprintln(w)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "    note: %s", n.Msg)
			if n.Ref != "" {
				fmt.Fprintf(w, "  (at %s)", n.Ref)
			}
			fmt.Fprintln(w)
		}
	}
}
