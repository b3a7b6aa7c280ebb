package diagfmt

import (
	"encoding/json"
	"io"

	"irkit/internal/diag"
)

type jsonNote struct {
	Ref string `json:"ref,omitempty"`
	Msg string `json:"msg"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Ref      string     `json:"ref,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON renders the bag as an indented JSON array, machine-readable
// counterpart of Pretty.
func JSON(w io.Writer, bag *diag.Bag) error {
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Ref:      d.Ref,
		}
		for _, n := range d.Notes {
			jd.Notes = append(jd.Notes, jsonNote{Ref: n.Ref, Msg: n.Msg})
		}
		out = append(out, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
