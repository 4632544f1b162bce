// Package mode declares the host-managed variables that implement modal key
// sequences, together with their legal values.
//
// The host keeps these variables for its whole lifetime; the generator only
// names them. Declaring them here lets the check package prove that every
// value a fragment can set is both reachable and escapable.
package mode

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
)

// Kind describes how a variable moves between values.
type Kind int

const (
	// Momentary variables are set on key-down and reset on key-up of the same key.
	Momentary Kind = iota
	// Toggle variables stay active until an explicit exit fragment fires.
	Toggle
	// Sequence variables step through a menu: every fragment guarded on an
	// active value must move the variable (to the next step or back to inactive).
	Sequence
)

func (k Kind) String() string {
	switch k {
	case Momentary:
		return "momentary"
	case Toggle:
		return "toggle"
	case Sequence:
		return "sequence"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Var is one host variable.
type Var struct {
	Name     string
	Kind     Kind
	Inactive karabiner.Value
	Active   []karabiner.Value
}

// IsInactive reports whether v is the inactive sentinel.
func (v Var) IsInactive(val karabiner.Value) bool {
	return val == v.Inactive
}

// Legal reports whether val is the sentinel or one of the active values.
func (v Var) Legal(val karabiner.Value) bool {
	return v.IsInactive(val) || slices.Contains(v.Active, val)
}

// Is returns the guard "variable equals val".
func (v Var) Is(val karabiner.Value) karabiner.Condition {
	return karabiner.Condition{Type: karabiner.VariableIf, Name: v.Name, Value: val.Ptr()}
}

// IsOff returns the guard "variable is inactive".
func (v Var) IsOff() karabiner.Condition {
	return v.Is(v.Inactive)
}

// IsOn returns the guard "variable is anything but inactive".
func (v Var) IsOn() karabiner.Condition {
	return karabiner.Condition{Type: karabiner.VariableUnless, Name: v.Name, Value: v.Inactive.Ptr()}
}

// Set returns the event assigning val.
func (v Var) Set(val karabiner.Value) karabiner.ToEvent {
	return karabiner.ToEvent{SetVariable: &karabiner.SetVariable{Name: v.Name, Value: val.Ptr()}}
}

// Reset returns the event assigning the inactive sentinel.
func (v Var) Reset() karabiner.ToEvent {
	return v.Set(v.Inactive)
}

// Unset returns the event removing the variable, which the host reads as the
// inactive sentinel.
func (v Var) Unset() karabiner.ToEvent {
	return karabiner.ToEvent{SetVariable: &karabiner.SetVariable{Name: v.Name, Type: karabiner.UnsetType}}
}

// Flag declares a 0/1 variable.
func Flag(name string, kind Kind) Var {
	return Var{Name: name, Kind: kind, Inactive: karabiner.Int(0), Active: []karabiner.Value{karabiner.Int(1)}}
}

// Registry is the set of declared variables.
type Registry struct {
	vars map[string]Var
}

// ErrDuplicateVar is returned when a name is declared twice.
var ErrDuplicateVar = errors.New("variable declared twice")

// NewRegistry returns a registry holding vars.
func NewRegistry(vars ...Var) (*Registry, error) {
	r := &Registry{vars: map[string]Var{}}
	for _, v := range vars {
		if err := r.Add(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add declares v.
func (r *Registry) Add(v Var) error {
	if _, ok := r.vars[v.Name]; ok {
		return errors.Wrapf(ErrDuplicateVar, "%q", v.Name)
	}
	if slices.Contains(v.Active, v.Inactive) {
		return errors.Newf("variable %q lists its inactive value %v as active", v.Name, v.Inactive)
	}
	r.vars[v.Name] = v
	return nil
}

// Lookup returns the variable called name.
func (r *Registry) Lookup(name string) (Var, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// Vars returns the declared variables sorted by name.
func (r *Registry) Vars() []Var {
	out := make([]Var, 0, len(r.vars))
	for _, v := range r.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
