// Package rule builds Karabiner manipulators and rules from a small chainable
// DSL. Builders are pure: they only produce data.
//
//	r, err := rule.New("Leader Key").Manipulators(
//		rule.WithCondition(leader.IsOff())(
//			rule.MapSimultaneous([]string{"l", ";"}, 250).Set(leader, karabiner.Int(1)),
//		),
//	).Build()
package rule

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
)

var (
	// ErrEmptyTrigger is returned for a manipulator without a usable from event.
	ErrEmptyTrigger = errors.New("empty trigger")
	// ErrNoEvents is returned for a manipulator that produces nothing.
	ErrNoEvents = errors.New("manipulator has no events")
)

// Item is anything that expands into manipulators: a Builder or a group made
// by WithCondition.
type Item interface {
	manipulators(outer []karabiner.Condition) ([]karabiner.Manipulator, error)
}

// Builder accumulates one manipulator. The first error sticks and is
// reported by Build.
type Builder struct {
	m   karabiner.Manipulator
	err error
}

// Map starts a manipulator triggered by key with the given mandatory modifiers.
func Map(key string, mandatory ...string) *Builder {
	b := &Builder{m: karabiner.Manipulator{Type: karabiner.BasicType}}
	if key == "" {
		b.err = ErrEmptyTrigger
		return b
	}
	code, err := karabiner.KeyCode(key)
	if err != nil {
		b.err = err
		return b
	}
	if karabiner.IsConsumerKey(code) {
		b.m.From.ConsumerKeyCode = code
	} else {
		b.m.From.KeyCode = code
	}
	if len(mandatory) > 0 {
		mods, err := karabiner.Modifiers(mandatory...)
		if err != nil {
			b.err = errors.Wrapf(err, "from %q", key)
			return b
		}
		if len(mods) > 0 {
			b.m.From.Modifiers = &karabiner.FromModifiers{Mandatory: mods}
		}
	}
	return b
}

// MapSimultaneous starts a manipulator triggered by pressing keys together
// within threshold milliseconds. A zero threshold uses the profile default.
func MapSimultaneous(keys []string, threshold int) *Builder {
	b := &Builder{m: karabiner.Manipulator{Type: karabiner.BasicType}}
	if len(keys) < 2 {
		b.err = errors.Wrapf(ErrEmptyTrigger, "simultaneous trigger needs two keys, got %d", len(keys))
		return b
	}
	for _, k := range keys {
		code, err := karabiner.KeyCode(k)
		if err != nil {
			b.err = err
			return b
		}
		b.m.From.Simultaneous = append(b.m.From.Simultaneous, karabiner.SimultaneousKey{KeyCode: code})
	}
	if threshold > 0 {
		b.params().SimultaneousThresholdMilliseconds = threshold
	}
	return b
}

func (b *Builder) params() *karabiner.Parameters {
	if b.m.Parameters == nil {
		b.m.Parameters = &karabiner.Parameters{}
	}
	return b.m.Parameters
}

// Optional allows extra modifiers to be held without breaking the match.
func (b *Builder) Optional(mods ...string) *Builder {
	if b.err != nil {
		return b
	}
	m, err := karabiner.Modifiers(mods...)
	if err != nil {
		b.err = err
		return b
	}
	if b.m.From.Modifiers == nil {
		b.m.From.Modifiers = &karabiner.FromModifiers{}
	}
	b.m.From.Modifiers.Optional = append(b.m.From.Modifiers.Optional, m...)
	return b
}

// Description sets the manipulator description.
func (b *Builder) Description(s string) *Builder {
	b.m.Description = s
	return b
}

// To appends events fired on key-down.
func (b *Builder) To(events ...karabiner.ToEvent) *Builder {
	b.m.To = append(b.m.To, events...)
	return b
}

// ToKey appends a key-press event.
func (b *Builder) ToKey(key string, mods ...string) *Builder {
	if b.err != nil {
		return b
	}
	ev, err := Key(key, mods...)
	if err != nil {
		b.err = err
		return b
	}
	return b.To(ev)
}

// ToApp appends an application launch.
func (b *Builder) ToApp(name string) *Builder { return b.To(App(name)) }

// ToShell appends a shell command.
func (b *Builder) ToShell(cmd string) *Builder { return b.To(Shell(cmd)) }

// ToPaste appends a text paste.
func (b *Builder) ToPaste(text string) *Builder { return b.To(Paste(text)) }

// Set appends an assignment of val to v.
func (b *Builder) Set(v mode.Var, val karabiner.Value) *Builder { return b.To(v.Set(val)) }

// Reset appends an assignment of v's inactive sentinel.
func (b *Builder) Reset(v mode.Var) *Builder { return b.To(v.Reset()) }

// Unset appends the removal of v.
func (b *Builder) Unset(v mode.Var) *Builder { return b.To(v.Unset()) }

// Notify appends a notification.
func (b *Builder) Notify(id, text string) *Builder { return b.To(Notify(id, text)) }

// ClearNotification appends the removal of a notification.
func (b *Builder) ClearNotification(id string) *Builder { return b.To(ClearNotification(id)) }

// ToIfAlone sets the events fired when the key is tapped alone.
func (b *Builder) ToIfAlone(events ...karabiner.ToEvent) *Builder {
	b.m.ToIfAlone = append(b.m.ToIfAlone, events...)
	return b
}

// ToAfterKeyUp sets the events fired on key-up.
func (b *Builder) ToAfterKeyUp(events ...karabiner.ToEvent) *Builder {
	b.m.ToAfterKeyUp = append(b.m.ToAfterKeyUp, events...)
	return b
}

// ToDelayedAction fires invoked when no other key follows within delayMs,
// canceled otherwise.
func (b *Builder) ToDelayedAction(delayMs int, invoked, canceled []karabiner.ToEvent) *Builder {
	b.m.ToDelayedAction = &karabiner.DelayedAction{ToIfInvoked: invoked, ToIfCanceled: canceled}
	if delayMs > 0 {
		b.params().ToDelayedActionDelayMilliseconds = delayMs
	}
	return b
}

// Condition appends guards.
func (b *Builder) Condition(conds ...karabiner.Condition) *Builder {
	b.m.Conditions = append(b.m.Conditions, conds...)
	return b
}

// Build returns the manipulator.
func (b *Builder) Build() (karabiner.Manipulator, error) {
	ms, err := b.manipulators(nil)
	if err != nil {
		return karabiner.Manipulator{}, err
	}
	return ms[0], nil
}

func (b *Builder) manipulators(outer []karabiner.Condition) ([]karabiner.Manipulator, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.m.To) == 0 && len(b.m.ToIfAlone) == 0 && len(b.m.ToAfterKeyUp) == 0 && b.m.ToDelayedAction == nil {
		return nil, errors.Wrapf(ErrNoEvents, "from %s", trigger(b.m.From))
	}
	m := b.m
	m.Conditions = append(slices.Clone(outer), b.m.Conditions...)
	if len(m.Conditions) == 0 {
		m.Conditions = nil
	}
	m.To = slices.Clone(b.m.To)
	if m.Parameters != nil {
		p := *m.Parameters
		m.Parameters = &p
	}
	return []karabiner.Manipulator{m}, nil
}

type group struct {
	conds []karabiner.Condition
	items []Item
}

func (g group) manipulators(outer []karabiner.Condition) ([]karabiner.Manipulator, error) {
	conds := append(slices.Clone(outer), g.conds...)
	var out []karabiner.Manipulator
	for _, it := range g.items {
		ms, err := it.manipulators(conds)
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	return out, nil
}

// WithCondition guards every item with conds. Groups nest; outer guards come
// first in the emitted condition list.
func WithCondition(conds ...karabiner.Condition) func(items ...Item) Item {
	return func(items ...Item) Item {
		return group{conds: conds, items: items}
	}
}

// RuleBuilder accumulates a described rule.
type RuleBuilder struct {
	description string
	conds       []karabiner.Condition
	items       []Item
}

// New starts a rule whose manipulators all carry conds.
func New(description string, conds ...karabiner.Condition) *RuleBuilder {
	return &RuleBuilder{description: description, conds: conds}
}

// Manipulators appends items in order. Order is significant: the host uses
// the first matching manipulator.
func (r *RuleBuilder) Manipulators(items ...Item) *RuleBuilder {
	r.items = append(r.items, items...)
	return r
}

// Build expands the rule.
func (r *RuleBuilder) Build() (karabiner.Rule, error) {
	ms, err := group{conds: r.conds, items: r.items}.manipulators(nil)
	if err != nil {
		return karabiner.Rule{}, errors.Wrapf(err, "rule %q", r.description)
	}
	if ms == nil {
		ms = []karabiner.Manipulator{}
	}
	return karabiner.Rule{Description: r.description, Manipulators: ms}, nil
}

// IfApp guards on the frontmost application's bundle identifier matching
// one of patterns.
func IfApp(patterns ...string) karabiner.Condition {
	return karabiner.Condition{Type: karabiner.FrontmostApplicationIf, BundleIdentifiers: patterns}
}

// IfVar guards on v holding val.
func IfVar(v mode.Var, val karabiner.Value) karabiner.Condition {
	return v.Is(val)
}

// Unless negates an app or variable guard.
func Unless(c karabiner.Condition) karabiner.Condition {
	switch c.Type {
	case karabiner.FrontmostApplicationIf:
		c.Type = karabiner.FrontmostApplicationUnless
	case karabiner.FrontmostApplicationUnless:
		c.Type = karabiner.FrontmostApplicationIf
	case karabiner.VariableIf:
		c.Type = karabiner.VariableUnless
	case karabiner.VariableUnless:
		c.Type = karabiner.VariableIf
	}
	return c
}

// Trigger renders the from event of m for messages, e.g. "command+h" or "j+k".
func Trigger(m karabiner.Manipulator) string {
	return trigger(m.From)
}

func trigger(f karabiner.From) string {
	var keys []string
	switch {
	case len(f.Simultaneous) > 0:
		for _, k := range f.Simultaneous {
			keys = append(keys, k.KeyCode)
		}
	case f.ConsumerKeyCode != "":
		keys = []string{f.ConsumerKeyCode}
	default:
		keys = []string{f.KeyCode}
	}
	s := ""
	if f.Modifiers != nil {
		for _, m := range f.Modifiers.Mandatory {
			s += m + "+"
		}
	}
	for i, k := range keys {
		if i > 0 {
			s += "+"
		}
		s += k
	}
	return s
}
