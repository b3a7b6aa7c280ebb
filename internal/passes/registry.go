package passes

import "irkit/internal/pipeline"

// ByName resolves a pass by its manifest name.
func ByName(name string) (pipeline.Pass, bool) {
	switch name {
	case "constfold":
		return ConstFold(), true
	case "dce":
		return DCE(), true
	}
	return pipeline.Pass{}, false
}

// Names lists every pass a manifest may name.
func Names() []string {
	return []string{"constfold", "dce"}
}
