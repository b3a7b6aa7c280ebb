package attr

import "errors"

// ErrFrozen is the panic value for any mutation of a frozen dictionary.
var ErrFrozen = errors.New("attr: frozen dict modified")

// Entry is one name/value pair of a Dict.
type Entry struct {
	Name  string
	Value Attribute
}

// Dict is an ordered attribute dictionary keyed by name. Insertion order is
// preserved and significant for printing. A Dict can be frozen, after which
// any mutation panics with ErrFrozen.
type Dict struct {
	entries []Entry
	frozen  bool
}

// NewDict returns an empty dictionary.
func NewDict() *Dict { return &Dict{} }

// DictOf builds a dictionary from entries in order.
func DictOf(entries ...Entry) *Dict {
	d := &Dict{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		d.Set(e.Name, e.Value)
	}
	return d
}

// Set inserts or updates a named attribute, preserving first-insertion order.
func (d *Dict) Set(name string, v Attribute) {
	if d.frozen {
		panic(ErrFrozen)
	}
	for i := range d.entries {
		if d.entries[i].Name == name {
			d.entries[i].Value = v
			return
		}
	}
	d.entries = append(d.entries, Entry{Name: name, Value: v})
}

// Delete removes a named attribute if present.
func (d *Dict) Delete(name string) {
	if d.frozen {
		panic(ErrFrozen)
	}
	for i := range d.entries {
		if d.entries[i].Name == name {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return
		}
	}
}

// Get returns the named attribute and whether it was present.
func (d *Dict) Get(name string) (Attribute, bool) {
	if d == nil {
		return Attribute{}, false
	}
	for i := range d.entries {
		if d.entries[i].Name == name {
			return d.entries[i].Value, true
		}
	}
	return Attribute{}, false
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// At returns the i-th entry in insertion order.
func (d *Dict) At(i int) Entry { return d.entries[i] }

// Freeze seals the dictionary against further mutation.
func (d *Dict) Freeze() { d.frozen = true }

// Frozen reports whether the dictionary is sealed.
func (d *Dict) Frozen() bool { return d != nil && d.frozen }

// Clone returns an unfrozen copy of the dictionary.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return NewDict()
	}
	out := &Dict{entries: make([]Entry, len(d.entries))}
	copy(out.entries, d.entries)
	return out
}

// Equal reports structural equality: same entries in the same order.
func (d *Dict) Equal(other *Dict) bool {
	if d.Len() != other.Len() {
		return false
	}
	for i := range d.entries {
		if d.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
