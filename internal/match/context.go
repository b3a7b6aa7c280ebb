package match

// Context holds the variable bindings accumulated during one match attempt.
type Context struct {
	bindings map[string]any
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{bindings: make(map[string]any, 8)}
}

// bind establishes a binding, or when the name is already bound succeeds
// only if the new value equals the existing one. This unification-by-
// equality rule is what makes two query branches naming the same variable
// consistent. Operations and values compare by identity, attributes
// structurally.
func (c *Context) bind(name string, val any) bool {
	if old, ok := c.bindings[name]; ok {
		return old == val
	}
	c.bindings[name] = val
	return true
}

// lookup returns the current binding for a name.
func (c *Context) lookup(name string) (any, bool) {
	v, ok := c.bindings[name]
	return v, ok
}

// Bindings is the result of a successful match: every declared variable
// bound, keyed by variable name.
type Bindings map[string]any
