package spec

// OptionSpec describes one named option component.
type OptionSpec struct {
	PrimaryName string
	Aliases     []string
	Description string

	MinLen   int
	ExtraLen *int // nil means unbounded

	AllowBinding bool // --name=value
	AllowBoolean bool // usable with no arguments
	IsHidden     bool
	IsRequired   bool

	// AllowNegation opts this boolean option into --no-name recognition.
	// Only meaningful when PrimaryName starts with "--" and the option is
	// boolean-shaped.
	AllowNegation bool

	// AllowBatching opts this boolean option into single-character alias
	// batch expansion (-xyz). Only meaningful when at least one of
	// PrimaryName/Aliases is a single dash-letter alias.
	AllowBatching bool
}

// Boolean returns a zero-argument option with IsRequired set. IsRequired
// only affects how String renders it; whether a parse must include the
// option is decided by CommandSpec.RequiredOptions.
func Boolean(name string) OptionSpec {
	return OptionSpec{
		PrimaryName:  name,
		MinLen:       0,
		ExtraLen:     intPtr(0),
		AllowBoolean: true,
		IsRequired:   true,
	}
}

// Parametrized returns a single-argument option.
func Parametrized(name string) OptionSpec {
	return OptionSpec{
		PrimaryName: name,
		MinLen:      1,
		ExtraLen:    intPtr(0),
		IsRequired:  true,
	}
}

// AcceptsArguments reports whether this option ever captures a value.
func (o OptionSpec) AcceptsArguments() bool {
	return o.MinLen > 0 || o.ExtraLen == nil || *o.ExtraLen != 0
}

// Arity reports the fixed number of arguments this option captures, and
// whether that number is fixed (false when ExtraLen is unbounded).
func (o OptionSpec) Arity() (n int, fixed bool) {
	if o.ExtraLen == nil {
		return 0, false
	}
	return o.MinLen + *o.ExtraLen, true
}

// String renders the option the way a usage line would.
func (o OptionSpec) String() string {
	open, close := "[", "]"
	if o.IsRequired {
		open, close = "<", ">"
	}

	s := open + o.PrimaryName
	for _, alias := range o.Aliases {
		s += "," + alias
	}

	if o.MinLen > 0 || o.ExtraLen == nil || *o.ExtraLen != 0 {
		s += " " + formatRange("arg", o.MinLen, o.ExtraLen)
	}

	return s + close
}
