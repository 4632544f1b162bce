// Package layers builds the stateless and momentary remaps that sit around
// the leader: caps lock, per-application shortcuts and the hyper sublayers.
package layers

import (
	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/rule"
	"github.com/karagen/karagen/tables"
)

// CapsLock selects what caps lock turns into.
type CapsLock string

const (
	// CapsControl makes caps lock a control key, or hyper in Lexicon.
	CapsControl CapsLock = "control"
	// CapsHyper makes caps lock the four-modifier hyper key.
	CapsHyper CapsLock = "hyper"
	// CapsNone leaves caps lock alone.
	CapsNone CapsLock = "none"
)

// ErrCapsLock is returned for an unknown caps lock mode.
var ErrCapsLock = errors.New("unknown caps lock mode")

// ParseCapsLock validates s.
func ParseCapsLock(s string) (CapsLock, error) {
	switch c := CapsLock(s); c {
	case CapsControl, CapsHyper, CapsNone:
		return c, nil
	}
	return "", errors.WithHint(errors.Wrapf(ErrCapsLock, "%q", s), "use control, hyper or none")
}

// HyperVar is held while caps lock is down in hyper mode.
var HyperVar = mode.Flag("hyper", mode.Momentary)

// CapsLockToControl sends left control everywhere except Lexicon, where caps
// lock becomes hyper. Tapped alone it still toggles caps lock.
func CapsLockToControl() (karabiner.Rule, error) {
	lexicon := rule.IfApp(tables.Lexicon.BundleID)
	alone := rule.MustKey("caps_lock")
	return rule.New("Caps Lock → Control").Manipulators(
		rule.Map("caps_lock").To(rule.Hyper()).ToIfAlone(alone).Condition(lexicon),
		rule.Map("caps_lock").ToKey("left_control").ToIfAlone(alone).Condition(rule.Unless(lexicon)),
	).Build()
}

// CapsLockToHyper turns caps lock into hyper and, tapped alone, escape. With
// track set the hyper variable follows the key so sublayers can guard on it.
func CapsLockToHyper(track bool) (karabiner.Rule, error) {
	b := rule.Map("caps_lock").Optional("any").Description("Caps Lock -> Hyper Key")
	if track {
		b.Set(HyperVar, karabiner.Int(1)).ToAfterKeyUp(HyperVar.Reset())
	}
	b.To(rule.Hyper()).ToIfAlone(rule.MustKey("escape"))
	return rule.New("Hyper Key (⌃⌥⇧⌘)").Manipulators(b).Build()
}

// LexiconVim maps command+hjkl to arrows in Lexicon.
func LexiconVim() (karabiner.Rule, error) {
	arrows := [][2]string{{"j", "down_arrow"}, {"k", "up_arrow"}, {"h", "left_arrow"}, {"l", "right_arrow"}}
	items := make([]rule.Item, 0, len(arrows))
	for _, a := range arrows {
		items = append(items, rule.Map(a[0], "command").Optional("any").ToKey(a[1]))
	}
	return rule.New("Remap Command+JKHL to Arrows for Lexicon App", rule.IfApp(tables.Lexicon.BundleID)).
		Manipulators(items...).Build()
}

// CodeEditors translates hyper+key to control+key for vim bindings in
// editors and terminals.
func CodeEditors() (karabiner.Rule, error) {
	keys := []string{"d", "u", "h", "j", "k", "l", "a"}
	items := make([]rule.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, rule.Map(k, rule.HyperModifiers...).ToKey(k, "control"))
	}
	return rule.New("Code Editor Vim Navigation", rule.IfApp(tables.BundleIDs(tables.CodeEditors...)...)).
		Manipulators(items...).Build()
}

// BrowserNavigation adds history, tab and window-switcher shortcuts to
// browsers.
func BrowserNavigation() (karabiner.Rule, error) {
	return rule.New("Browser Navigation", rule.IfApp(tables.BundleIDs(tables.Browsers...)...)).Manipulators(
		// history
		rule.Map("h", "control", "option").ToKey("[", "⌘"),
		rule.Map("l", "control", "option").Optional("command").ToKey("]", "⌘"),
		// tabs
		rule.Map("h", "control").ToKey("[", "⌘⇧"),
		rule.Map("l", "control").ToKey("]", "⌘⇧"),
		// switcher
		rule.Map("h", "⌘⌥⌃").ToKey("⇥", "⌃⇧"),
		rule.Map("l", "⌘⌥⌃").ToKey("⇥", "⌃"),
	).Build()
}
