package spec

import "errors"

// BuildError sentinels, returned by Validate when a CommandSpec's
// component declaration order violates one of the compiler's shape
// invariants. Callers MUST use errors.Is to branch on these.
var (
	ErrMultipleRestParameters                     = errors.New("spec: commands can only define a single rest parameter")
	ErrOptionalParametersAfterRest                = errors.New("spec: optional parameters aren't allowed after a rest parameter")
	ErrOptionalParametersAfterTrailingPositionals = errors.New("spec: optional parameters aren't allowed after trailing positionals")
	ErrRestAfterTrailingPositionals               = errors.New("spec: rest parameters aren't allowed after trailing positionals")
	ErrArityTooHighForNonBindingOption            = errors.New("spec: option arity is too high for a non-binding option")
)

// Validate checks the component declaration order against the shape
// invariants the command compiler relies on. It does not mutate c.
func (c *CommandSpec) Validate() error {
	sawRest := false
	sawOptional := false
	sawTrailing := false

	for _, comp := range c.Components {
		if comp.Kind != ComponentPositional {
			continue
		}
		p := comp.Positional
		if p.Kind != PositionalDynamic {
			continue
		}

		isRest := p.ExtraLen == nil
		isOptional := p.MinLen == 0 && !isRest

		if isRest {
			if sawRest {
				return ErrMultipleRestParameters
			}
			if sawTrailing {
				return ErrRestAfterTrailingPositionals
			}
			sawRest = true
		} else if isOptional {
			if sawRest {
				return ErrOptionalParametersAfterRest
			}
			if sawTrailing {
				return ErrOptionalParametersAfterTrailingPositionals
			}
			sawOptional = true
		} else if sawRest || sawOptional {
			sawTrailing = true
		}
	}

	for _, comp := range c.Components {
		if comp.Kind != ComponentOption {
			continue
		}
		o := comp.Option
		if n, fixed := o.Arity(); fixed && n > 1 && !o.AllowBinding {
			return ErrArityTooHighForNonBindingOption
		}
	}

	return nil
}
