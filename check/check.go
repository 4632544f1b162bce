// Package check verifies a generated rule list before it is written: every
// variable is declared and only takes legal values, every mode can be
// entered and left, terminal fragments reset their sequence and no two
// fragments fight over one trigger.
package check

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/rule"
)

// ErrFindings marks the error returned by Report.Err.
var ErrFindings = errors.New("rule check failed")

// Severity of a finding.
type Severity int

const (
	// Warning findings are logged.
	Warning Severity = iota
	// Error findings stop generation.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding codes.
const (
	UnknownVariable      = "unknown-variable"
	IllegalValue         = "illegal-value"
	UnknownKey           = "unknown-key"
	UnreachableMode      = "unreachable-mode"
	InescapableMode      = "inescapable-mode"
	TerminalMissingReset = "terminal-missing-reset"
	DuplicateBinding     = "duplicate-binding"
	ShadowedBinding      = "shadowed-binding"
)

// Location points at one manipulator.
type Location struct {
	Rule    string
	Index   int
	Trigger string
}

func (l Location) String() string {
	if l.Rule == "" {
		return ""
	}
	return fmt.Sprintf("%s #%d (%s)", l.Rule, l.Index, l.Trigger)
}

// Finding is one problem.
type Finding struct {
	Severity Severity
	Code     string
	Message  string
	Location Location
}

func (f Finding) String() string {
	if loc := f.Location.String(); loc != "" {
		return fmt.Sprintf("%s: %s: %s: %s", f.Severity, f.Code, loc, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Code, f.Message)
}

// Report collects the findings of one Run.
type Report struct {
	Findings []Finding
}

// Errors returns the error findings.
func (r Report) Errors() []Finding { return r.filter(Error) }

// Warnings returns the warning findings.
func (r Report) Warnings() []Finding { return r.filter(Warning) }

func (r Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Err returns nil when there are no error findings. Otherwise every error
// finding is combined into one error that matches ErrFindings.
func (r Report) Err() error {
	var err error
	errs := r.Errors()
	for _, f := range errs {
		err = multierr.Append(err, errors.New(f.String()))
	}
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, "%d error finding(s)", len(errs)), ErrFindings)
}

type fragment struct {
	loc Location
	m   karabiner.Manipulator
}

type checker struct {
	reg    *mode.Registry
	frags  []fragment
	report Report
}

// Run checks rules against the declared variables.
func Run(rules []karabiner.Rule, reg *mode.Registry) Report {
	c := &checker{reg: reg}
	for _, r := range rules {
		for i, m := range r.Manipulators {
			c.frags = append(c.frags, fragment{loc: Location{Rule: r.Description, Index: i, Trigger: rule.Trigger(m)}, m: m})
		}
	}
	c.declarations()
	c.keys()
	c.reachability()
	c.escapability()
	c.terminalResets()
	c.bindings()
	return c.report
}

func (c *checker) add(s Severity, code string, loc Location, format string, args ...any) {
	c.report.Findings = append(c.report.Findings, Finding{Severity: s, Code: code, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// events returns every event list of m that can mutate state.
func events(m karabiner.Manipulator) [][]karabiner.ToEvent {
	out := [][]karabiner.ToEvent{m.To, m.ToIfAlone, m.ToIfHeldDown, m.ToAfterKeyUp}
	if d := m.ToDelayedAction; d != nil {
		out = append(out, d.ToIfInvoked, d.ToIfCanceled)
	}
	if o := m.From.SimultaneousOptions; o != nil {
		out = append(out, o.ToAfterKeyUp)
	}
	return out
}

func isVarCond(cond karabiner.Condition) bool {
	return cond.Type == karabiner.VariableIf || cond.Type == karabiner.VariableUnless
}

func (c *checker) declarations() {
	for _, f := range c.frags {
		for _, cond := range f.m.Conditions {
			if !isVarCond(cond) {
				continue
			}
			c.checkValue(f.loc, cond.Name, cond.Value, "guard")
		}
		for _, evs := range events(f.m) {
			for _, ev := range evs {
				if sv := ev.SetVariable; sv != nil {
					if sv.Type == karabiner.UnsetType {
						c.checkValue(f.loc, sv.Name, nil, "unset")
						continue
					}
					c.checkValue(f.loc, sv.Name, sv.Value, "assignment")
				}
			}
		}
	}
}

func (c *checker) checkValue(loc Location, name string, val *karabiner.Value, what string) {
	v, ok := c.reg.Lookup(name)
	if !ok {
		c.add(Error, UnknownVariable, loc, "%s of undeclared variable %q", what, name)
		return
	}
	if val == nil {
		if what != "unset" {
			c.add(Error, IllegalValue, loc, "%s of %q has no value", what, name)
		}
		return
	}
	if !v.Legal(*val) {
		c.add(Error, IllegalValue, loc, "%s of %q uses %v, legal values are %v and %v", what, name, *val, v.Inactive, v.Active)
	}
}

func (c *checker) keys() {
	check := func(loc Location, code string) {
		if code == "" {
			return
		}
		if canon, err := karabiner.KeyCode(code); err != nil || canon != code {
			c.add(Error, UnknownKey, loc, "%q is not a key code", code)
		}
	}
	for _, f := range c.frags {
		check(f.loc, f.m.From.KeyCode)
		check(f.loc, f.m.From.ConsumerKeyCode)
		for _, k := range f.m.From.Simultaneous {
			check(f.loc, k.KeyCode)
		}
		for _, evs := range events(f.m) {
			for _, ev := range evs {
				check(f.loc, ev.KeyCode)
				check(f.loc, ev.ConsumerKeyCode)
			}
		}
	}
}

type assignment struct {
	v   mode.Var
	val karabiner.Value
	at  fragment
}

// assignments returns, in order of first appearance, every active value some
// fragment assigns to a declared variable.
func (c *checker) assignments() []assignment {
	var out []assignment
	seen := map[string]bool{}
	for _, f := range c.frags {
		for _, evs := range events(f.m) {
			for _, ev := range evs {
				sv := ev.SetVariable
				if sv == nil || sv.Value == nil || sv.Type == karabiner.UnsetType {
					continue
				}
				v, ok := c.reg.Lookup(sv.Name)
				if !ok || v.IsInactive(*sv.Value) {
					continue
				}
				k := sv.Name + "=" + sv.Value.String()
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, assignment{v: v, val: *sv.Value, at: f})
			}
		}
	}
	return out
}

// admits reports whether every guard of conds on name holds when the
// variable is val. A variable the guards never mention is unconstrained.
func admits(conds []karabiner.Condition, name string, val karabiner.Value) bool {
	for _, cond := range conds {
		if !isVarCond(cond) || cond.Name != name || cond.Value == nil {
			continue
		}
		eq := *cond.Value == val
		if (cond.Type == karabiner.VariableIf && !eq) || (cond.Type == karabiner.VariableUnless && eq) {
			return false
		}
	}
	return true
}

func mentions(conds []karabiner.Condition, name string) bool {
	return slices.ContainsFunc(conds, func(cond karabiner.Condition) bool {
		return isVarCond(cond) && cond.Name == name
	})
}

func (c *checker) reachability() {
	for _, a := range c.assignments() {
		reachable := slices.ContainsFunc(c.frags, func(f fragment) bool {
			return mentions(f.m.Conditions, a.v.Name) && admits(f.m.Conditions, a.v.Name, a.val)
		})
		if !reachable {
			c.add(Error, UnreachableMode, a.at.loc, "%s is set to %v but no fragment is guarded on that value", a.v.Name, a.val)
		}
	}
}

func resets(evs []karabiner.ToEvent, v mode.Var) bool {
	return slices.ContainsFunc(evs, func(ev karabiner.ToEvent) bool {
		sv := ev.SetVariable
		if sv == nil || sv.Name != v.Name {
			return false
		}
		return sv.Type == karabiner.UnsetType || sv.Value != nil && v.IsInactive(*sv.Value)
	})
}

func sets(evs []karabiner.ToEvent, v mode.Var, val karabiner.Value) bool {
	return slices.ContainsFunc(evs, func(ev karabiner.ToEvent) bool {
		sv := ev.SetVariable
		return sv != nil && sv.Name == v.Name && sv.Value != nil && *sv.Value == val
	})
}

// needsOnlyInactive reports whether every variable guard of conds other than
// on name can hold with that variable inactive.
func (c *checker) needsOnlyInactive(conds []karabiner.Condition, name string) bool {
	for _, cond := range conds {
		if !isVarCond(cond) || cond.Name == name {
			continue
		}
		other, ok := c.reg.Lookup(cond.Name)
		if !ok || !admits([]karabiner.Condition{cond}, cond.Name, other.Inactive) {
			return false
		}
	}
	return true
}

func (c *checker) escapability() {
	for _, a := range c.assignments() {
		escapable := slices.ContainsFunc(c.frags, func(f fragment) bool {
			m := f.m
			if a.v.Kind == mode.Momentary && sets(m.To, a.v, a.val) && resets(m.ToAfterKeyUp, a.v) {
				return true
			}
			if !admits(m.Conditions, a.v.Name, a.val) || !c.needsOnlyInactive(m.Conditions, a.v.Name) {
				return false
			}
			if resets(m.To, a.v) || resets(m.ToAfterKeyUp, a.v) {
				return true
			}
			return m.ToDelayedAction != nil && resets(m.ToDelayedAction.ToIfInvoked, a.v)
		})
		if !escapable {
			c.add(Error, InescapableMode, a.at.loc, "%s=%v has no way back to %v without entering another mode", a.v.Name, a.val, a.v.Inactive)
		}
	}
}

func (c *checker) terminalResets() {
	for _, f := range c.frags {
		for _, cond := range f.m.Conditions {
			if !isVarCond(cond) {
				continue
			}
			v, ok := c.reg.Lookup(cond.Name)
			if !ok || v.Kind != mode.Sequence {
				continue
			}
			active := slices.ContainsFunc(v.Active, func(val karabiner.Value) bool {
				return admits([]karabiner.Condition{cond}, v.Name, val)
			})
			if !active {
				continue
			}
			assigned := slices.ContainsFunc(f.m.To, func(ev karabiner.ToEvent) bool {
				return ev.SetVariable != nil && ev.SetVariable.Name == v.Name
			})
			if !assigned {
				c.add(Error, TerminalMissingReset, f.loc, "fragment guarded on active %s does not move it", v.Name)
			}
		}
	}
}

// triggerKey identifies what the user presses. Optional modifiers are left
// out: they widen a match without changing it.
func triggerKey(m karabiner.Manipulator) string {
	var keys []string
	if len(m.From.Simultaneous) > 0 {
		for _, k := range m.From.Simultaneous {
			keys = append(keys, k.KeyCode)
		}
		sort.Strings(keys)
	} else {
		keys = []string{m.From.KeyCode + m.From.ConsumerKeyCode}
	}
	var mods []string
	if m.From.Modifiers != nil {
		mods = slices.Clone(m.From.Modifiers.Mandatory)
		sort.Strings(mods)
	}
	return strings.Join(mods, "+") + "|" + strings.Join(keys, "+")
}

func condKey(cond karabiner.Condition) string {
	var val string
	if cond.Value != nil {
		val = cond.Value.String()
	}
	ids := slices.Clone(cond.BundleIdentifiers)
	sort.Strings(ids)
	return cond.Type + " " + cond.Name + " " + val + " " + strings.Join(ids, ",")
}

func guardKey(conds []karabiner.Condition) string {
	keys := make([]string, 0, len(conds))
	for _, cond := range conds {
		keys = append(keys, condKey(cond))
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// disjoint reports whether no state satisfies both a and b.
func disjoint(a, b []karabiner.Condition) bool {
	for _, x := range a {
		for _, y := range b {
			switch {
			case isVarCond(x) && isVarCond(y):
				if x.Name != y.Name || x.Value == nil || y.Value == nil {
					continue
				}
				eq := *x.Value == *y.Value
				if x.Type == y.Type && x.Type == karabiner.VariableIf && !eq {
					return true
				}
				if x.Type != y.Type && eq {
					return true
				}
			case isAppCond(x) && isAppCond(y):
				sameSet := slices.Equal(sorted(x.BundleIdentifiers), sorted(y.BundleIdentifiers))
				if x.Type != y.Type && sameSet {
					return true
				}
				if x.Type == y.Type && x.Type == karabiner.FrontmostApplicationIf && !intersects(x.BundleIdentifiers, y.BundleIdentifiers) {
					return true
				}
			}
		}
	}
	return false
}

func isAppCond(cond karabiner.Condition) bool {
	return cond.Type == karabiner.FrontmostApplicationIf || cond.Type == karabiner.FrontmostApplicationUnless
}

func sorted(s []string) []string {
	s = slices.Clone(s)
	sort.Strings(s)
	return s
}

func intersects(a, b []string) bool {
	return slices.ContainsFunc(a, func(s string) bool { return slices.Contains(b, s) })
}

func (c *checker) bindings() {
	first := map[string]fragment{}
	for _, f := range c.frags {
		k := triggerKey(f.m) + "#" + guardKey(f.m.Conditions)
		if prev, ok := first[k]; ok {
			c.add(Error, DuplicateBinding, f.loc, "same trigger and guards as %s; the host only fires the first", prev.loc)
			continue
		}
		first[k] = f
	}

	for i, f := range c.frags {
		for _, prev := range c.frags[:i] {
			if prev.loc.Rule != f.loc.Rule || triggerKey(prev.m) != triggerKey(f.m) {
				continue
			}
			if guardKey(prev.m.Conditions) == guardKey(f.m.Conditions) || disjoint(prev.m.Conditions, f.m.Conditions) {
				continue
			}
			c.add(Warning, ShadowedBinding, f.loc, "%s matches first whenever both guards hold", prev.loc)
			break
		}
	}
}
