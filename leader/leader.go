// Package leader builds the leader-key state machine: a chord enters the
// leader, a category key selects a menu and an action key fires one action
// and leaves the leader again.
//
// The machine lives in a single host variable. Its inactive value is 0, the
// chord sets 1 and each category sets its tag:
//
//	0 --chord--> 1 --category--> tag --action--> 0
//	any active value --escape--> 0
package leader

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/rule"
)

// ErrDuplicateBinding is returned when two entries of one menu share a key.
var ErrDuplicateBinding = errors.New("duplicate binding")

// Config describes a leader.
type Config struct {
	// Var is the host variable. Build it with NewVar.
	Var mode.Var
	// Keys is the entry chord.
	Keys []string
	// Threshold is the chord window in milliseconds.
	Threshold int
	// Escape leaves the leader from any active state.
	Escape string
	// Timeout leaves the leader when no key follows the chord or a category
	// within this many milliseconds. Zero disables it.
	Timeout int
	// NotificationID is shared by every menu notification.
	NotificationID string
	Categories     []Category
}

// Category is one entry of the first menu. A category either opens a second
// menu of Actions under Tag, or performs Immediate events and exits.
type Category struct {
	Key       string
	Name      string
	Tag       string
	Actions   []Action
	Immediate []karabiner.ToEvent
}

// Action is one entry of a category menu.
type Action struct {
	Key         string
	Modifiers   []string
	Description string
	// MenuKey replaces the rendered key in the menu, e.g. "⇧N" for a family of
	// hidden siblings. The menu adds the parentheses.
	MenuKey string
	// Hidden actions are bound but not listed.
	Hidden bool
	Events []karabiner.ToEvent
}

// NewVar declares the leader variable with one active value per category tag.
func NewVar(name string, cats []Category) mode.Var {
	v := mode.Var{Name: name, Kind: mode.Sequence, Inactive: karabiner.Int(0), Active: []karabiner.Value{karabiner.Int(1)}}
	for _, c := range cats {
		if c.Tag != "" {
			v.Active = append(v.Active, karabiner.String(c.Tag))
		}
	}
	return v
}

// Exit returns the events that leave the leader.
func (c Config) Exit() []karabiner.ToEvent {
	return []karabiner.ToEvent{c.Var.Reset(), rule.ClearNotification(c.NotificationID)}
}

// MenuText is the notification shown after the chord.
func (c Config) MenuText() string {
	parts := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		parts = append(parts, cat.label())
	}
	return strings.Join(parts, " ")
}

func (cat Category) label() string {
	name := cat.Name
	k := strings.ToUpper(cat.Key)
	if strings.HasPrefix(strings.ToUpper(name), k) {
		return "(" + name[:len(cat.Key)] + ")" + name[len(cat.Key):]
	}
	return "(" + k + ")" + name
}

// MenuText is the notification shown once the category is selected.
func (cat Category) MenuText() string {
	var parts []string
	for _, a := range cat.Actions {
		if a.Hidden {
			continue
		}
		parts = append(parts, "("+a.Label()+")"+a.Description)
	}
	return strings.Join(parts, " ")
}

// Label renders the action's key for menus.
func (a Action) Label() string {
	if a.MenuKey != "" {
		return a.MenuKey
	}
	code, err := karabiner.KeyCode(a.Key)
	if err != nil {
		return strings.ToUpper(a.Key)
	}
	var b strings.Builder
	mods, _ := karabiner.Modifiers(a.Modifiers...)
	for _, m := range mods {
		b.WriteString(glyph(m))
	}
	b.WriteString(karabiner.Label(code))
	return b.String()
}

func glyph(mod string) string {
	switch strings.TrimPrefix(strings.TrimPrefix(mod, "left_"), "right_") {
	case "command":
		return "⌘"
	case "option":
		return "⌥"
	case "control":
		return "⌃"
	case "shift":
		return "⇧"
	}
	return mod + "+"
}

// Build returns the leader rule. Fragments are emitted in a fixed order:
// entry chord, escape, category selection, then one action set per category.
func Build(c Config) (karabiner.Rule, error) {
	if err := c.validate(); err != nil {
		return karabiner.Rule{}, err
	}
	v := c.Var

	entry := rule.MapSimultaneous(c.Keys, c.Threshold).
		Set(v, karabiner.Int(1)).
		Notify(c.NotificationID, c.MenuText())
	c.withTimeout(entry)

	var selects []rule.Item
	for _, cat := range c.Categories {
		b := rule.Map(cat.Key)
		if len(cat.Immediate) > 0 {
			b.To(cat.Immediate...).To(c.Exit()...)
		} else {
			b.Set(v, karabiner.String(cat.Tag)).Notify(c.NotificationID, cat.MenuText())
			c.withTimeout(b)
		}
		selects = append(selects, b)
	}

	r := rule.New("Leader Key").Manipulators(
		rule.WithCondition(v.IsOff())(entry),
		rule.WithCondition(v.IsOn())(rule.Map(c.Escape).To(c.Exit()...)),
		rule.WithCondition(v.Is(karabiner.Int(1)))(selects...),
	)
	for _, cat := range c.Categories {
		if len(cat.Actions) == 0 {
			continue
		}
		var actions []rule.Item
		for _, a := range cat.Actions {
			actions = append(actions, rule.Map(a.Key, a.Modifiers...).To(a.Events...).To(c.Exit()...))
		}
		r.Manipulators(rule.WithCondition(v.Is(karabiner.String(cat.Tag)))(actions...))
	}
	return r.Build()
}

func (c Config) withTimeout(b *rule.Builder) {
	if c.Timeout > 0 {
		b.ToDelayedAction(c.Timeout, c.Exit(), nil)
	}
}

func (c Config) validate() error {
	if c.Escape == "" {
		return errors.WithHint(errors.New("leader has no escape key"), "set Escape, usually \"escape\"")
	}
	if c.NotificationID == "" {
		return errors.New("leader has no notification id")
	}
	escape, err := karabiner.KeyCode(c.Escape)
	if err != nil {
		return errors.Wrap(err, "leader escape")
	}
	catKeys := map[string]string{}
	tags := map[string]string{}
	for _, cat := range c.Categories {
		if prev, ok := catKeys[cat.Key]; ok {
			return errors.WithHintf(errors.Wrapf(ErrDuplicateBinding, "categories %q and %q both use %q", prev, cat.Name, cat.Key),
				"pick another category key")
		}
		catKeys[cat.Key] = cat.Name
		if code, err := karabiner.KeyCode(cat.Key); err == nil && code == escape {
			return errors.Wrapf(ErrDuplicateBinding, "category %q uses the escape key", cat.Name)
		}
		switch {
		case len(cat.Immediate) > 0 && len(cat.Actions) > 0:
			return errors.Newf("category %q has both immediate events and actions", cat.Name)
		case len(cat.Immediate) == 0 && len(cat.Actions) == 0:
			return errors.Newf("category %q has nothing to do", cat.Name)
		case len(cat.Actions) > 0 && cat.Tag == "":
			return errors.Newf("category %q has actions but no tag", cat.Name)
		}
		if cat.Tag != "" {
			if prev, ok := tags[cat.Tag]; ok {
				return errors.Wrapf(ErrDuplicateBinding, "categories %q and %q share tag %q", prev, cat.Name, cat.Tag)
			}
			tags[cat.Tag] = cat.Name
			if !c.Var.Legal(karabiner.String(cat.Tag)) {
				return errors.WithHint(errors.Newf("tag %q is not a value of %s", cat.Tag, c.Var.Name),
					"declare the variable with leader.NewVar")
			}
		}
		if err := cat.checkActions(escape); err != nil {
			return err
		}
	}
	return nil
}

func (cat Category) checkActions(escape string) error {
	seen := map[string]string{}
	for _, a := range cat.Actions {
		code, err := karabiner.KeyCode(a.Key)
		if err != nil {
			return errors.Wrapf(err, "category %q action %q", cat.Name, a.Description)
		}
		mods, err := karabiner.Modifiers(a.Modifiers...)
		if err != nil {
			return errors.Wrapf(err, "category %q action %q", cat.Name, a.Description)
		}
		if code == escape && len(mods) == 0 {
			return errors.Wrapf(ErrDuplicateBinding, "category %q action %q uses the escape key", cat.Name, a.Description)
		}
		k := fmt.Sprint(mods, code)
		if prev, ok := seen[k]; ok {
			return errors.WithHint(
				errors.Wrapf(ErrDuplicateBinding, "category %q: %q and %q share %s", cat.Name, prev, a.Description, a.Label()),
				"the host only ever fires the first of them")
		}
		seen[k] = a.Description
	}
	return nil
}
