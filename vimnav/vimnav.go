// Package vimnav builds vim-style navigation for a single application: a
// chord toggles the mode, plain keys move, and a prefix key opens a one-shot
// jump menu.
package vimnav

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/rule"
)

var (
	// ErrPrefixConflict is returned when a motion is bound to the bare prefix
	// key. The prefix entry would always win and the motion could never fire.
	ErrPrefixConflict = errors.New("motion bound to the prefix key")
	// ErrDuplicateBinding is returned when two jumps or two motions share a
	// trigger, or one of them takes the escape key.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// Motion maps one trigger to one key press.
type Motion struct {
	Key         string
	Modifiers   []string
	To          string
	ToModifiers []string
	Description string
}

// Config describes the navigation mode of one application.
type Config struct {
	// Name labels the rules, e.g. "Finder".
	Name string
	// App is the bundle identifier pattern the mode is bound to.
	App string

	ToggleVar mode.Var
	PrefixVar mode.Var

	ToggleKeys []string
	Threshold  int
	PrefixKey  string
	Escape     string

	NotificationID   string
	NotificationText string

	// Jumps fire after the prefix key and reset the prefix.
	Jumps []Motion
	// Motions fire while the mode is on and the prefix is inactive.
	Motions []Motion

	// GlobalExit puts the toggle exit in its own unguarded rule so the mode
	// can be left from any application.
	GlobalExit bool
}

// Vars returns the host variables the mode uses.
func (c Config) Vars() []mode.Var {
	return []mode.Var{c.ToggleVar, c.PrefixVar}
}

// Build returns the application rule followed, with GlobalExit, by the exit
// rule. Within the application rule the toggle chord comes first, then the
// prefix entry, the jumps with the prefix escape, and finally the motions.
func Build(c Config) ([]karabiner.Rule, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	on := karabiner.Int(1)
	toggle, prefix := c.ToggleVar, c.PrefixVar

	jumps := make([]rule.Item, 0, len(c.Jumps)+1)
	for _, j := range c.Jumps {
		jumps = append(jumps, j.builder().Reset(prefix))
	}
	jumps = append(jumps, rule.Map(c.Escape).Reset(prefix))

	motions := make([]rule.Item, 0, len(c.Motions))
	for _, m := range c.Motions {
		motions = append(motions, m.builder())
	}

	exit := rule.WithCondition(toggle.Is(on))(
		rule.WithCondition(prefix.IsOff())(
			rule.Map(c.Escape).Reset(toggle).ClearNotification(c.NotificationID),
		),
	)

	app := rule.New(c.Name+" Vim Navigation", rule.IfApp(c.App)).Manipulators(
		rule.WithCondition(toggle.IsOff())(
			rule.MapSimultaneous(c.ToggleKeys, c.Threshold).
				Set(toggle, on).
				Notify(c.NotificationID, c.NotificationText),
		),
		rule.WithCondition(prefix.IsOff())(rule.Map(c.PrefixKey).Set(prefix, on)),
		rule.WithCondition(prefix.Is(on))(jumps...),
		rule.WithCondition(toggle.Is(on))(
			rule.WithCondition(prefix.IsOff())(motions...),
		),
	)
	if !c.GlobalExit {
		app.Manipulators(exit)
	}
	r, err := app.Build()
	if err != nil {
		return nil, err
	}
	rules := []karabiner.Rule{r}
	if c.GlobalExit {
		g, err := rule.New(c.Name + " Vim Mode Exit (Global)").Manipulators(exit).Build()
		if err != nil {
			return nil, err
		}
		rules = append(rules, g)
	}
	return rules, nil
}

func (m Motion) builder() *rule.Builder {
	return rule.Map(m.Key, m.Modifiers...).Description(m.Description).ToKey(m.To, m.ToModifiers...)
}

// trigger returns a comparable form of key+mods and, for an unmodified key,
// its canonical code.
func trigger(key string, mods []string) (id, bare string, err error) {
	code, err := karabiner.KeyCode(key)
	if err != nil {
		return "", "", err
	}
	m, err := karabiner.Modifiers(mods...)
	if err != nil {
		return "", "", err
	}
	if len(m) == 0 {
		bare = code
	}
	return strings.Join(append(m, code), "+"), bare, nil
}

func (c Config) validate() error {
	if c.ToggleVar.Name == "" || c.PrefixVar.Name == "" || c.ToggleVar.Name == c.PrefixVar.Name {
		return errors.Newf("%s: toggle and prefix need two distinct variables", c.Name)
	}
	prefix, err := karabiner.KeyCode(c.PrefixKey)
	if err != nil {
		return errors.Wrapf(err, "%s prefix key", c.Name)
	}
	escape, err := karabiner.KeyCode(c.Escape)
	if err != nil {
		return errors.Wrapf(err, "%s escape key", c.Name)
	}
	if prefix == escape {
		return errors.Wrapf(ErrDuplicateBinding, "%s: prefix and escape are both %q", c.Name, prefix)
	}

	seen := map[string]string{}
	for _, j := range c.Jumps {
		t, bare, err := trigger(j.Key, j.Modifiers)
		if err != nil {
			return errors.Wrapf(err, "%s jump %q", c.Name, j.Description)
		}
		if bare == escape {
			return errors.Wrapf(ErrDuplicateBinding, "%s jump %q takes the escape key", c.Name, j.Description)
		}
		if prev, ok := seen[t]; ok {
			return errors.Wrapf(ErrDuplicateBinding, "%s jumps %q and %q", c.Name, prev, j.Description)
		}
		seen[t] = j.Description
	}

	seen = map[string]string{}
	for _, m := range c.Motions {
		t, bare, err := trigger(m.Key, m.Modifiers)
		if err != nil {
			return errors.Wrapf(err, "%s motion %q", c.Name, m.Description)
		}
		if bare == prefix {
			return errors.WithHintf(errors.Wrapf(ErrPrefixConflict, "%s motion %q", c.Name, m.Description),
				"bind it with a modifier, e.g. shift+%s, or move it to the jumps", c.PrefixKey)
		}
		if bare == escape {
			return errors.Wrapf(ErrDuplicateBinding, "%s motion %q takes the escape key", c.Name, m.Description)
		}
		if prev, ok := seen[t]; ok {
			return errors.Wrapf(ErrDuplicateBinding, "%s motions %q and %q", c.Name, prev, m.Description)
		}
		seen[t] = m.Description
	}
	return nil
}
