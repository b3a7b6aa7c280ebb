package attr

import "fmt"

// Kind discriminates attribute payloads.
type Kind uint8

const (
	// KindInvalid is the zero attribute; it never appears in well-formed IR.
	KindInvalid Kind = iota
	// KindUnit is a payload-free marker attribute.
	KindUnit
	// KindBool is a boolean value.
	KindBool
	// KindInt is an integer value tagged with a bit width.
	KindInt
	// KindFloat is a 64-bit float value.
	KindFloat
	// KindString is a string value.
	KindString
	// KindIntegerType is the type of KindInt values (iN).
	KindIntegerType
	// KindFloatType is the type of KindFloat values (f64).
	KindFloatType
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIntegerType:
		return "integer-type"
	case KindFloatType:
		return "float-type"
	}
	return "invalid"
}

// Attribute is an immutable tagged value attached to operations or used as a
// value's type. Equality is structural: two attributes compare equal with ==
// exactly when kind and payload agree.
type Attribute struct {
	Kind  Kind
	Bits  uint16
	Int   int64
	Float float64
	Str   string
}

// Unit returns the marker attribute.
func Unit() Attribute { return Attribute{Kind: KindUnit} }

// Bool returns a boolean attribute.
func Bool(v bool) Attribute {
	a := Attribute{Kind: KindBool}
	if v {
		a.Int = 1
	}
	return a
}

// Int returns an integer attribute of the given width.
func Int(v int64, bits uint16) Attribute {
	return Attribute{Kind: KindInt, Int: v, Bits: bits}
}

// Float returns a 64-bit float attribute.
func Float(v float64) Attribute { return Attribute{Kind: KindFloat, Float: v} }

// String returns a string attribute.
func String(s string) Attribute { return Attribute{Kind: KindString, Str: s} }

// IntegerType returns the iN type attribute.
func IntegerType(bits uint16) Attribute {
	return Attribute{Kind: KindIntegerType, Bits: bits}
}

// FloatType returns the f64 type attribute.
func FloatType() Attribute { return Attribute{Kind: KindFloatType} }

// I64 is the most common result type in tests and demos.
func I64() Attribute { return IntegerType(64) }

// Valid reports whether the attribute carries a real payload.
func (a Attribute) Valid() bool { return a.Kind != KindInvalid }

// Type returns the type attribute of a value attribute. Type attributes and
// markers return themselves.
func (a Attribute) Type() Attribute {
	switch a.Kind {
	case KindInt:
		return IntegerType(a.Bits)
	case KindFloat:
		return FloatType()
	}
	return a
}

// AsInt returns the integer payload or an explicit kind-mismatch error.
func (a Attribute) AsInt() (int64, error) {
	if a.Kind != KindInt {
		return 0, fmt.Errorf("attr: expected int, got %s", a.Kind)
	}
	return a.Int, nil
}

// AsBool returns the boolean payload or an explicit kind-mismatch error.
func (a Attribute) AsBool() (bool, error) {
	if a.Kind != KindBool {
		return false, fmt.Errorf("attr: expected bool, got %s", a.Kind)
	}
	return a.Int != 0, nil
}

// AsFloat returns the float payload or an explicit kind-mismatch error.
func (a Attribute) AsFloat() (float64, error) {
	if a.Kind != KindFloat {
		return 0, fmt.Errorf("attr: expected float, got %s", a.Kind)
	}
	return a.Float, nil
}

// AsString returns the string payload or an explicit kind-mismatch error.
func (a Attribute) AsString() (string, error) {
	if a.Kind != KindString {
		return "", fmt.Errorf("attr: expected string, got %s", a.Kind)
	}
	return a.Str, nil
}

func (a Attribute) String() string {
	switch a.Kind {
	case KindUnit:
		return "unit"
	case KindBool:
		if a.Int != 0 {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d : i%d", a.Int, a.Bits)
	case KindFloat:
		return fmt.Sprintf("%g : f64", a.Float)
	case KindString:
		return fmt.Sprintf("%q", a.Str)
	case KindIntegerType:
		return fmt.Sprintf("i%d", a.Bits)
	case KindFloatType:
		return "f64"
	}
	return "<invalid>"
}
