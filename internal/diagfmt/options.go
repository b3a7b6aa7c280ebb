package diagfmt

// PrettyOpts controls human-readable diagnostic rendering.
type PrettyOpts struct {
	// Color enables ANSI colors for severities and refs.
	Color bool
}
